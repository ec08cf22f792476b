package entity

import "github.com/shopspring/decimal"

// Quantity bounds and default discount tiers. MaxQuantityAllowed is a hard
// system-wide ceiling, enforced regardless of what discount rules are configured.
const (
	MinQuantity                = 1
	MaxQuantityAllowed         = 20
	MinQuantityForDiscount     = 4
	MinQuantityForHighDiscount = 10
)

var (
	// LowDiscountPercentage applies to 4-9 identical items.
	LowDiscountPercentage = decimal.NewFromInt(10)
	// HighDiscountPercentage applies to 10-20 identical items.
	HighDiscountPercentage = decimal.NewFromInt(20)
)

// IsQuantityValid reports whether quantity is inside the allowed [1, 20] range.
func IsQuantityValid(quantity int) bool {
	return quantity >= MinQuantity && quantity <= MaxQuantityAllowed
}
