package entity

import "errors"

// Sentinel errors for sale business-rule violations. The application layer maps
// these onto HTTP error responses via pkg/apperror.
var (
	// ErrSaleCancelled is returned when mutating a sale that has been cancelled.
	ErrSaleCancelled = errors.New("sale is cancelled")
	// ErrSaleAlreadyCancelled is returned when cancelling a sale twice.
	ErrSaleAlreadyCancelled = errors.New("sale is already cancelled")
	// ErrItemNotFound is returned when the referenced item does not belong to the sale.
	ErrItemNotFound = errors.New("sale item not found")
	// ErrItemCancelled is returned when mutating or removing a cancelled item.
	ErrItemCancelled = errors.New("sale item is cancelled")
	// ErrItemAlreadyCancelled is returned when cancelling an item twice.
	ErrItemAlreadyCancelled = errors.New("sale item is already cancelled")
	// ErrQuantityOutOfRange is returned for quantities outside [1, 20].
	// The quantity is never clamped.
	ErrQuantityOutOfRange = errors.New("it's not possible to sell above 20 identical items")
	// ErrDiscountOutOfRange is returned for discount percentages outside [0, 100].
	ErrDiscountOutOfRange = errors.New("discount percentage must be between 0 and 100")

	// ErrSaleNotFound is returned by repositories when no sale matches the given id.
	ErrSaleNotFound = errors.New("sale not found")
	// ErrDuplicateSaleNumber is returned when creating a sale whose number is taken.
	ErrDuplicateSaleNumber = errors.New("sale number already exists")
	// ErrVersionConflict signals that a concurrent writer persisted a newer version.
	ErrVersionConflict = errors.New("sale version conflict")
)

// IsVersionConflict reports whether err is a concurrent-write conflict.
func IsVersionConflict(err error) bool {
	return errors.Is(err, ErrVersionConflict)
}
