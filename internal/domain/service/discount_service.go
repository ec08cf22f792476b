package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/devstore/sales-api/internal/domain/entity"
	"github.com/devstore/sales-api/internal/domain/repository"
)

// SaleDiscountService resolves the discount percentage for a quantity from the
// configured discount rules. It is stateless and safe for concurrent use.
//
// When constructed without a rule repository it falls back to the built-in
// default tiers (1-3: 0%, 4-9: 10%, 10-20: 20%), which match the seeded rules.
// The [1, 20] quantity ceiling is enforced here regardless of configuration.
type SaleDiscountService struct {
	ruleRepo repository.DiscountRuleRepository
}

// NewSaleDiscountService creates a discount service backed by the rule store.
func NewSaleDiscountService(ruleRepo repository.DiscountRuleRepository) *SaleDiscountService {
	return &SaleDiscountService{ruleRepo: ruleRepo}
}

// NewDefaultDiscountService creates a discount service using only the built-in
// default tiers. Used in tests and environments without a rule store.
func NewDefaultDiscountService() *SaleDiscountService {
	return &SaleDiscountService{}
}

// IsQuantityValid reports whether the quantity is allowed by business rules.
func (s *SaleDiscountService) IsQuantityValid(quantity int) bool {
	return entity.IsQuantityValid(quantity)
}

// ResolveDiscountPercentage maps the quantity to a discount percentage.
// When several active rules cover the quantity, the one with the highest
// minimum quantity wins: the highest volume tier takes precedence, tiers do
// not stack. No matching rule means no discount, not an error.
func (s *SaleDiscountService) ResolveDiscountPercentage(ctx context.Context, quantity int) (decimal.Decimal, error) {
	if !s.IsQuantityValid(quantity) {
		return decimal.Zero, fmt.Errorf("quantity %d: %w", quantity, entity.ErrQuantityOutOfRange)
	}

	if s.ruleRepo == nil {
		return defaultTierPercentage(quantity), nil
	}

	rule, err := s.ruleRepo.GetApplicableRule(ctx, quantity)
	if err != nil {
		return decimal.Zero, fmt.Errorf("look up discount rule: %w", err)
	}
	if rule == nil {
		return decimal.Zero, nil
	}
	return rule.DiscountPercentage, nil
}

// ComputeDiscountAmount returns quantity * unitPrice * percentage / 100.
func (s *SaleDiscountService) ComputeDiscountAmount(ctx context.Context, quantity int, unitPrice decimal.Decimal) (decimal.Decimal, error) {
	percentage, err := s.ResolveDiscountPercentage(ctx, quantity)
	if err != nil {
		return decimal.Zero, err
	}

	subtotal := decimal.NewFromInt(int64(quantity)).Mul(unitPrice)
	return subtotal.Mul(percentage).Div(decimal.NewFromInt(100)), nil
}

// ComputeTotalAmount returns the line total after discount.
func (s *SaleDiscountService) ComputeTotalAmount(ctx context.Context, quantity int, unitPrice decimal.Decimal) (decimal.Decimal, error) {
	discount, err := s.ComputeDiscountAmount(ctx, quantity, unitPrice)
	if err != nil {
		return decimal.Zero, err
	}

	subtotal := decimal.NewFromInt(int64(quantity)).Mul(unitPrice)
	return subtotal.Sub(discount), nil
}

func defaultTierPercentage(quantity int) decimal.Decimal {
	switch {
	case quantity >= entity.MinQuantityForHighDiscount:
		return entity.HighDiscountPercentage
	case quantity >= entity.MinQuantityForDiscount:
		return entity.LowDiscountPercentage
	}
	return decimal.Zero
}
