package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/devstore/sales-api/internal/domain/entity"
)

// DiscountRuleRepository defines the interface for discount rule data operations
type DiscountRuleRepository interface {
	// GetActiveRules returns all active rules ordered by minimum quantity
	// descending, best discount first.
	GetActiveRules(ctx context.Context) ([]entity.DiscountRule, error)
	// GetApplicableRule returns the active rule covering the quantity with the
	// highest minimum quantity, or nil when no rule applies.
	GetApplicableRule(ctx context.Context, quantity int) (*entity.DiscountRule, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.DiscountRule, error)
	Create(ctx context.Context, rule *entity.DiscountRule) error
	Update(ctx context.Context, rule *entity.DiscountRule) error
	List(ctx context.Context) ([]entity.DiscountRule, error)
}
