package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DiscountRule maps a contiguous quantity range to a discount percentage.
// Rules live in the database and may overlap; the resolver breaks ties by
// picking the rule with the highest MinQuantity.
type DiscountRule struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	MinQuantity        int             `gorm:"not null" json:"min_quantity"`
	MaxQuantity        int             `gorm:"not null" json:"max_quantity"`
	DiscountPercentage decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"discount_percentage"`
	IsActive           bool            `gorm:"default:true" json:"is_active"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// NewDiscountRule creates an active rule for the given quantity range.
func NewDiscountRule(minQuantity, maxQuantity int, discountPercentage decimal.Decimal) *DiscountRule {
	return &DiscountRule{
		ID:                 uuid.New(),
		MinQuantity:        minQuantity,
		MaxQuantity:        maxQuantity,
		DiscountPercentage: discountPercentage,
		IsActive:           true,
		CreatedAt:          time.Now().UTC(),
	}
}

// BeforeCreate generates a UUID before creating a new discount rule
func (r *DiscountRule) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the DiscountRule model
func (DiscountRule) TableName() string {
	return "discount_rules"
}

// AppliesTo reports whether this rule covers the given quantity.
func (r *DiscountRule) AppliesTo(quantity int) bool {
	return r.IsActive && quantity >= r.MinQuantity && quantity <= r.MaxQuantity
}

// Activate enables the rule.
func (r *DiscountRule) Activate() {
	r.IsActive = true
	r.UpdatedAt = time.Now().UTC()
}

// Deactivate disables the rule without deleting it.
func (r *DiscountRule) Deactivate() {
	r.IsActive = false
	r.UpdatedAt = time.Now().UTC()
}

// Update changes the rule's range and percentage.
func (r *DiscountRule) Update(minQuantity, maxQuantity int, discountPercentage decimal.Decimal) {
	r.MinQuantity = minQuantity
	r.MaxQuantity = maxQuantity
	r.DiscountPercentage = discountPercentage
	r.UpdatedAt = time.Now().UTC()
}

// Validate checks the rule's invariants and returns the violations found.
func (r *DiscountRule) Validate() []ValidationError {
	var errs []ValidationError

	if r.MinQuantity <= 0 {
		errs = append(errs, ValidationError{Field: "min_quantity", Message: "Minimum quantity must be greater than zero."})
	}
	if r.MaxQuantity <= 0 {
		errs = append(errs, ValidationError{Field: "max_quantity", Message: "Maximum quantity must be greater than zero."})
	}
	if r.MaxQuantity < r.MinQuantity {
		errs = append(errs, ValidationError{Field: "max_quantity", Message: "Maximum quantity must be greater than or equal to minimum quantity."})
	}
	if r.MinQuantity > MaxQuantityAllowed {
		errs = append(errs, ValidationError{Field: "min_quantity", Message: "Minimum quantity cannot exceed 20."})
	}
	if r.MaxQuantity > MaxQuantityAllowed {
		errs = append(errs, ValidationError{Field: "max_quantity", Message: "Maximum quantity cannot exceed 20."})
	}
	if r.DiscountPercentage.IsNegative() || r.DiscountPercentage.GreaterThan(decimal.NewFromInt(100)) {
		errs = append(errs, ValidationError{Field: "discount_percentage", Message: "Discount percentage must be between 0 and 100."})
	}

	return errs
}
