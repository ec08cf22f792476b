package request

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest represents one item line in a sale request
type SaleItemRequest struct {
	ProductID          int             `json:"product_id" binding:"required"`
	ProductDescription string          `json:"product_description" binding:"required,max=500"`
	Quantity           int             `json:"quantity" binding:"required,min=1,max=20"`
	UnitPrice          decimal.Decimal `json:"unit_price" binding:"required"`
}

// CreateSaleRequest represents a sale creation request
type CreateSaleRequest struct {
	SaleNumber        string            `json:"sale_number" binding:"required,max=100"`
	SaleDate          time.Time         `json:"sale_date" binding:"required"`
	CustomerID        int               `json:"customer_id" binding:"required"`
	CustomerName      string            `json:"customer_name" binding:"required,max=200"`
	BranchID          int               `json:"branch_id" binding:"required"`
	BranchDescription string            `json:"branch_description" binding:"required,max=200"`
	Items             []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateSaleRequest represents a full sale replacement request
type UpdateSaleRequest struct {
	SaleNumber        string            `json:"sale_number" binding:"required,max=100"`
	SaleDate          time.Time         `json:"sale_date" binding:"required"`
	CustomerID        int               `json:"customer_id" binding:"required"`
	CustomerName      string            `json:"customer_name" binding:"required,max=200"`
	BranchID          int               `json:"branch_id" binding:"required"`
	BranchDescription string            `json:"branch_description" binding:"required,max=200"`
	Items             []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateSaleItemRequest changes an item's quantity
type UpdateSaleItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1,max=20"`
}

// SaleFilterRequest represents sale filter parameters
type SaleFilterRequest struct {
	Search     string `form:"search"`
	Status     string `form:"status"`
	CustomerID string `form:"customer_id"`
	BranchID   string `form:"branch_id"`
	StartDate  string `form:"start_date"`
	EndDate    string `form:"end_date"`
	SortBy     string `form:"sort_by"`
	SortOrder  string `form:"sort_order"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}
