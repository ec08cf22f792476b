package request

import "github.com/shopspring/decimal"

// CreateDiscountRuleRequest represents a discount rule creation request
type CreateDiscountRuleRequest struct {
	MinQuantity        int             `json:"min_quantity" binding:"required,min=1"`
	MaxQuantity        int             `json:"max_quantity" binding:"required,min=1"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage" binding:"required"`
}

// UpdateDiscountRuleRequest represents a discount rule update request
type UpdateDiscountRuleRequest struct {
	MinQuantity        int             `json:"min_quantity" binding:"required,min=1"`
	MaxQuantity        int             `json:"max_quantity" binding:"required,min=1"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage" binding:"required"`
	IsActive           bool            `json:"is_active"`
}
