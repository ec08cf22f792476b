package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/devstore/sales-api/internal/domain/enum"
)

// DiscountResolver maps a quantity to a discount percentage. The aggregate
// consults it on every operation that creates or re-prices an item, so a
// changed quantity can never keep a percentage resolved for a different one.
type DiscountResolver interface {
	ResolveDiscountPercentage(ctx context.Context, quantity int) (decimal.Decimal, error)
}

// Sale is the aggregate root for one sales transaction. Customer and branch
// references are denormalized external identities; items are owned by the sale
// and cannot outlive it. TotalAmount is derived and is recalculated after every
// item mutation, so the sum invariant holds whenever a mutating method returns.
//
// The aggregate performs no I/O. Persistence and event publication happen in
// the application layer after a successful mutation. Concurrent mutation of
// the same sale is serialized by optimistic locking on Version at save time.
type Sale struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	SaleNumber        string          `gorm:"size:100;uniqueIndex;not null" json:"sale_number"`
	SaleDate          time.Time       `gorm:"not null" json:"sale_date"`
	CustomerID        int             `gorm:"not null" json:"customer_id"`
	CustomerName      string          `gorm:"size:200;not null" json:"customer_name"`
	BranchID          int             `gorm:"not null" json:"branch_id"`
	BranchDescription string          `gorm:"size:200;not null" json:"branch_description"`
	TotalAmount       decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total_amount"`
	Status            enum.SaleStatus `gorm:"default:1" json:"status"`
	CancelledAt       *time.Time      `json:"cancelled_at,omitempty"`
	Version           int64           `gorm:"default:0" json:"-"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`

	// Relationships
	Items []SaleItem `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"items"`
}

// NewSale creates an active sale with no items.
func NewSale(saleNumber string, saleDate time.Time, customerID int, customerName string, branchID int, branchDescription string) *Sale {
	now := time.Now().UTC()
	if saleDate.IsZero() {
		saleDate = now
	}
	return &Sale{
		ID:                uuid.New(),
		SaleNumber:        saleNumber,
		SaleDate:          saleDate,
		CustomerID:        customerID,
		CustomerName:      customerName,
		BranchID:          branchID,
		BranchDescription: branchDescription,
		TotalAmount:       decimal.Zero,
		Status:            enum.SaleStatusActive,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// AddItem prices a new item through the resolver and appends it to the sale.
// Items are not merged by product id; that is the caller's choice to make
// before invoking.
func (s *Sale) AddItem(ctx context.Context, resolver DiscountResolver, productID int, productDescription string, quantity int, unitPrice decimal.Decimal) (*SaleItem, error) {
	if s.Status == enum.SaleStatusCancelled {
		return nil, ErrSaleCancelled
	}

	// Resolve before mutating anything so a failure leaves the sale untouched.
	percentage, err := resolver.ResolveDiscountPercentage(ctx, quantity)
	if err != nil {
		return nil, err
	}

	item := NewSaleItem(productID, productDescription, quantity, unitPrice)
	item.SaleID = s.ID
	if err := item.ApplyDiscount(percentage); err != nil {
		return nil, err
	}

	s.Items = append(s.Items, *item)
	s.CalculateTotalAmount()
	s.UpdatedAt = time.Now().UTC()
	return &s.Items[len(s.Items)-1], nil
}

// UpdateItem changes an item's quantity and re-prices it through the resolver.
func (s *Sale) UpdateItem(ctx context.Context, resolver DiscountResolver, itemID uuid.UUID, quantity int) error {
	if s.Status == enum.SaleStatusCancelled {
		return ErrSaleCancelled
	}

	item := s.findItem(itemID)
	if item == nil {
		return ErrItemNotFound
	}
	if item.IsCancelled {
		return ErrItemCancelled
	}

	percentage, err := resolver.ResolveDiscountPercentage(ctx, quantity)
	if err != nil {
		return err
	}

	if err := item.UpdateQuantity(quantity, percentage); err != nil {
		return err
	}

	s.CalculateTotalAmount()
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// RemoveItem deletes an item from the sale. Cancelled items stay on the sale
// for audit and cannot be removed.
func (s *Sale) RemoveItem(itemID uuid.UUID) error {
	if s.Status == enum.SaleStatusCancelled {
		return ErrSaleCancelled
	}

	for idx := range s.Items {
		if s.Items[idx].ID != itemID {
			continue
		}
		if s.Items[idx].IsCancelled {
			return ErrItemCancelled
		}
		s.Items = append(s.Items[:idx], s.Items[idx+1:]...)
		s.CalculateTotalAmount()
		s.UpdatedAt = time.Now().UTC()
		return nil
	}

	return ErrItemNotFound
}

// CancelItem cancels a single item and excludes it from the sale total.
// Returns the cancelled item so the caller can publish an event for it.
func (s *Sale) CancelItem(itemID uuid.UUID) (*SaleItem, error) {
	if s.Status == enum.SaleStatusCancelled {
		return nil, ErrSaleCancelled
	}

	item := s.findItem(itemID)
	if item == nil {
		return nil, ErrItemNotFound
	}

	if err := item.Cancel(); err != nil {
		return nil, err
	}

	s.CalculateTotalAmount()
	s.UpdatedAt = time.Now().UTC()
	return item, nil
}

// Cancel cancels the whole sale. Items keep their own cancellation flags and
// the total stays as last calculated; cancelling freezes edits, it does not
// rewrite history.
func (s *Sale) Cancel() error {
	if s.Status == enum.SaleStatusCancelled {
		return ErrSaleAlreadyCancelled
	}

	now := time.Now().UTC()
	s.Status = enum.SaleStatusCancelled
	s.CancelledAt = &now
	s.UpdatedAt = now
	return nil
}

// CalculateTotalAmount recalculates the sale total as the sum of all
// non-cancelled item totals. Idempotent.
func (s *Sale) CalculateTotalAmount() {
	total := decimal.Zero
	for idx := range s.Items {
		if s.Items[idx].IsCancelled {
			continue
		}
		total = total.Add(s.Items[idx].TotalAmount)
	}
	s.TotalAmount = total
}

func (s *Sale) findItem(itemID uuid.UUID) *SaleItem {
	for idx := range s.Items {
		if s.Items[idx].ID == itemID {
			return &s.Items[idx]
		}
	}
	return nil
}

// Validate checks the sale's invariants without failing fast and returns every
// violation found, including those of its items.
func (s *Sale) Validate() []ValidationError {
	var errs []ValidationError

	if s.SaleNumber == "" {
		errs = append(errs, ValidationError{Field: "sale_number", Message: "Sale number cannot be empty."})
	} else if len(s.SaleNumber) > 100 {
		errs = append(errs, ValidationError{Field: "sale_number", Message: "Sale number cannot be longer than 100 characters."})
	}
	if s.SaleDate.IsZero() {
		errs = append(errs, ValidationError{Field: "sale_date", Message: "Sale date cannot be empty."})
	}
	if s.CustomerID <= 0 {
		errs = append(errs, ValidationError{Field: "customer_id", Message: "Customer ID must be greater than zero."})
	}
	if s.CustomerName == "" {
		errs = append(errs, ValidationError{Field: "customer_name", Message: "Customer name cannot be empty."})
	} else if len(s.CustomerName) > 200 {
		errs = append(errs, ValidationError{Field: "customer_name", Message: "Customer name cannot be longer than 200 characters."})
	}
	if s.BranchID <= 0 {
		errs = append(errs, ValidationError{Field: "branch_id", Message: "Branch ID must be greater than zero."})
	}
	if s.BranchDescription == "" {
		errs = append(errs, ValidationError{Field: "branch_description", Message: "Branch description cannot be empty."})
	} else if len(s.BranchDescription) > 200 {
		errs = append(errs, ValidationError{Field: "branch_description", Message: "Branch description cannot be longer than 200 characters."})
	}
	if s.TotalAmount.IsNegative() {
		errs = append(errs, ValidationError{Field: "total_amount", Message: "Total amount cannot be negative."})
	}
	if s.Status == enum.SaleStatusUnknown {
		errs = append(errs, ValidationError{Field: "status", Message: "Sale status cannot be Unknown."})
	}
	if len(s.Items) == 0 {
		errs = append(errs, ValidationError{Field: "items", Message: "Sale must have at least one item."})
	}
	if (s.CancelledAt != nil) != (s.Status == enum.SaleStatusCancelled) {
		errs = append(errs, ValidationError{Field: "cancelled_at", Message: "Cancelled date must be set exactly when status is Cancelled."})
	}

	for idx := range s.Items {
		errs = append(errs, s.Items[idx].Validate()...)
	}

	return errs
}
