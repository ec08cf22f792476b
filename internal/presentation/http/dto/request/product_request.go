package request

import "github.com/shopspring/decimal"

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	Title       string          `json:"title" binding:"required,min=2,max=255"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Description string          `json:"description"`
	Category    string          `json:"category" binding:"omitempty,max=100"`
	Image       string          `json:"image" binding:"omitempty,max=500"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	Title       string          `json:"title" binding:"required,min=2,max=255"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Description string          `json:"description"`
	Category    string          `json:"category" binding:"omitempty,max=100"`
	Image       string          `json:"image" binding:"omitempty,max=500"`
}
