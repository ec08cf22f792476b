package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/devstore/sales-api/internal/domain/entity"
	"github.com/devstore/sales-api/internal/domain/repository"
	"github.com/devstore/sales-api/pkg/apperror"
)

// DiscountRuleService handles discount rule management
type DiscountRuleService struct {
	ruleRepo repository.DiscountRuleRepository
}

// NewDiscountRuleService creates a new discount rule service
func NewDiscountRuleService(ruleRepo repository.DiscountRuleRepository) *DiscountRuleService {
	return &DiscountRuleService{ruleRepo: ruleRepo}
}

// CreateRuleInput represents the create discount rule input
type CreateRuleInput struct {
	MinQuantity        int
	MaxQuantity        int
	DiscountPercentage decimal.Decimal
}

// CreateRule creates a new discount rule
func (s *DiscountRuleService) CreateRule(ctx context.Context, input *CreateRuleInput) (*entity.DiscountRule, error) {
	rule := entity.NewDiscountRule(input.MinQuantity, input.MaxQuantity, input.DiscountPercentage)

	if violations := rule.Validate(); len(violations) > 0 {
		return nil, apperror.NewValidationError(toFieldErrors(violations))
	}

	if err := s.ruleRepo.Create(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

// GetRule retrieves a discount rule by ID
func (s *DiscountRuleService) GetRule(ctx context.Context, id uuid.UUID) (*entity.DiscountRule, error) {
	rule, err := s.ruleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, apperror.NewNotFoundError("Discount rule")
	}
	return rule, nil
}

// ListRules lists all discount rules, active or not
func (s *DiscountRuleService) ListRules(ctx context.Context) ([]entity.DiscountRule, error) {
	return s.ruleRepo.List(ctx)
}

// UpdateRuleInput represents the update discount rule input
type UpdateRuleInput struct {
	MinQuantity        int
	MaxQuantity        int
	DiscountPercentage decimal.Decimal
	IsActive           bool
}

// UpdateRule updates an existing discount rule
func (s *DiscountRuleService) UpdateRule(ctx context.Context, id uuid.UUID, input *UpdateRuleInput) (*entity.DiscountRule, error) {
	rule, err := s.GetRule(ctx, id)
	if err != nil {
		return nil, err
	}

	rule.Update(input.MinQuantity, input.MaxQuantity, input.DiscountPercentage)
	if input.IsActive {
		rule.Activate()
	} else {
		rule.Deactivate()
	}

	if violations := rule.Validate(); len(violations) > 0 {
		return nil, apperror.NewValidationError(toFieldErrors(violations))
	}

	if err := s.ruleRepo.Update(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}
