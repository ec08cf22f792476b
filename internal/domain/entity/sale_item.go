package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SaleItem represents a priced line within a sale. Product information is
// denormalized from the external product domain (External Identities pattern).
type SaleItem struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	SaleID             uuid.UUID       `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID          int             `gorm:"not null" json:"product_id"`
	ProductDescription string          `gorm:"size:500;not null" json:"product_description"`
	Quantity           int             `gorm:"not null" json:"quantity"`
	UnitPrice          decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"unit_price"`
	DiscountPercentage decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"discount_percentage"`
	DiscountAmount     decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"discount_amount"`
	TotalAmount        decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total_amount"`
	IsCancelled        bool            `gorm:"default:false" json:"is_cancelled"`
	CancelledAt        *time.Time      `json:"cancelled_at,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// NewSaleItem creates an unpriced sale item. The discount must be applied via
// ApplyDiscount before the item's amounts are meaningful.
func NewSaleItem(productID int, productDescription string, quantity int, unitPrice decimal.Decimal) *SaleItem {
	return &SaleItem{
		ID:                 uuid.New(),
		ProductID:          productID,
		ProductDescription: productDescription,
		Quantity:           quantity,
		UnitPrice:          unitPrice,
		DiscountPercentage: decimal.Zero,
		DiscountAmount:     decimal.Zero,
		TotalAmount:        decimal.NewFromInt(int64(quantity)).Mul(unitPrice),
	}
}

// BeforeCreate generates a UUID before creating a new sale item
func (i *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}

// Subtotal returns quantity * unit price before any discount.
func (i *SaleItem) Subtotal() decimal.Decimal {
	return decimal.NewFromInt(int64(i.Quantity)).Mul(i.UnitPrice)
}

// ApplyDiscount sets the discount percentage and recalculates the derived
// amounts. It is the only way the percentage may be set.
func (i *SaleItem) ApplyDiscount(percentage decimal.Decimal) error {
	if i.IsCancelled {
		return ErrItemCancelled
	}
	if percentage.IsNegative() || percentage.GreaterThan(decimal.NewFromInt(100)) {
		return ErrDiscountOutOfRange
	}

	subtotal := i.Subtotal()
	i.DiscountPercentage = percentage
	i.DiscountAmount = subtotal.Mul(percentage).Div(decimal.NewFromInt(100))
	i.TotalAmount = subtotal.Sub(i.DiscountAmount)
	return nil
}

// UpdateQuantity changes the quantity and re-applies the discount resolved for
// the new quantity. A stale percentage is never kept across a quantity change.
func (i *SaleItem) UpdateQuantity(quantity int, discountPercentage decimal.Decimal) error {
	if i.IsCancelled {
		return ErrItemCancelled
	}
	if !IsQuantityValid(quantity) {
		return ErrQuantityOutOfRange
	}

	i.Quantity = quantity
	return i.ApplyDiscount(discountPercentage)
}

// Cancel marks the item as cancelled. Cancellation is terminal: all further
// mutation of the item fails.
func (i *SaleItem) Cancel() error {
	if i.IsCancelled {
		return ErrItemAlreadyCancelled
	}

	now := time.Now().UTC()
	i.IsCancelled = true
	i.CancelledAt = &now
	return nil
}

// Validate checks the item's invariants and returns the violations found.
func (i *SaleItem) Validate() []ValidationError {
	var errs []ValidationError

	if i.ProductID <= 0 {
		errs = append(errs, ValidationError{Field: "product_id", Message: "Product ID must be greater than zero."})
	}
	if i.ProductDescription == "" {
		errs = append(errs, ValidationError{Field: "product_description", Message: "Product description cannot be empty."})
	} else if len(i.ProductDescription) > 500 {
		errs = append(errs, ValidationError{Field: "product_description", Message: "Product description cannot be longer than 500 characters."})
	}
	if i.Quantity <= 0 {
		errs = append(errs, ValidationError{Field: "quantity", Message: "Quantity must be greater than zero."})
	}
	if i.Quantity > MaxQuantityAllowed {
		errs = append(errs, ValidationError{Field: "quantity", Message: "It's not possible to sell above 20 identical items."})
	}
	if !i.UnitPrice.IsPositive() {
		errs = append(errs, ValidationError{Field: "unit_price", Message: "Unit price must be greater than zero."})
	}
	if i.DiscountPercentage.IsNegative() || i.DiscountPercentage.GreaterThan(decimal.NewFromInt(100)) {
		errs = append(errs, ValidationError{Field: "discount_percentage", Message: "Discount percentage must be between 0 and 100."})
	}
	if i.DiscountAmount.IsNegative() {
		errs = append(errs, ValidationError{Field: "discount_amount", Message: "Discount amount cannot be negative."})
	}
	if i.TotalAmount.IsNegative() {
		errs = append(errs, ValidationError{Field: "total_amount", Message: "Total amount cannot be negative."})
	}
	if i.DiscountAmount.GreaterThan(i.Subtotal()) {
		errs = append(errs, ValidationError{Field: "discount_amount", Message: "Discount amount cannot exceed the subtotal."})
	}
	if i.CancelledAt != nil && !i.IsCancelled {
		errs = append(errs, ValidationError{Field: "cancelled_at", Message: "Cancelled date can only be set when the item is cancelled."})
	}

	return errs
}
