package request

import "time"

// CartItemRequest represents one product entry in a cart request
type CartItemRequest struct {
	ProductID int `json:"product_id" binding:"required"`
	Quantity  int `json:"quantity" binding:"required,min=1"`
}

// CreateCartRequest represents a cart creation request
type CreateCartRequest struct {
	UserID int               `json:"user_id" binding:"required"`
	Date   time.Time         `json:"date" binding:"required"`
	Items  []CartItemRequest `json:"items" binding:"required,dive"`
}

// UpdateCartRequest represents a cart replacement request
type UpdateCartRequest struct {
	UserID int               `json:"user_id" binding:"required"`
	Date   time.Time         `json:"date" binding:"required"`
	Items  []CartItemRequest `json:"items" binding:"required,dive"`
}
