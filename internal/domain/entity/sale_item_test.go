package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devstore/sales-api/internal/domain/entity"
)

func TestNewSaleItemStartsUndiscounted(t *testing.T) {
	item := entity.NewSaleItem(1, "Widget", 5, decimal.NewFromInt(100))

	assert.True(t, item.DiscountPercentage.IsZero())
	assert.True(t, item.DiscountAmount.IsZero())
	assert.True(t, item.Subtotal().Equal(decimal.NewFromInt(500)))
	assert.True(t, item.TotalAmount.Equal(decimal.NewFromInt(500)))
}

func TestApplyDiscount(t *testing.T) {
	t.Run("recalculates derived amounts", func(t *testing.T) {
		item := entity.NewSaleItem(1, "Widget", 5, decimal.NewFromInt(100))

		require.NoError(t, item.ApplyDiscount(decimal.NewFromInt(10)))
		assert.True(t, item.DiscountAmount.Equal(decimal.NewFromInt(50)))
		assert.True(t, item.TotalAmount.Equal(decimal.NewFromInt(450)))
	})

	t.Run("fractional percentages keep precision", func(t *testing.T) {
		item := entity.NewSaleItem(1, "Widget", 3, decimal.RequireFromString("19.99"))

		require.NoError(t, item.ApplyDiscount(decimal.RequireFromString("12.5")))
		// 3 * 19.99 = 59.97; 12.5% of that is 7.49625
		assert.True(t, item.DiscountAmount.Equal(decimal.RequireFromString("7.49625")))
		assert.True(t, item.TotalAmount.Equal(decimal.RequireFromString("52.47375")))
	})

	t.Run("rejects out-of-range percentage", func(t *testing.T) {
		item := entity.NewSaleItem(1, "Widget", 5, decimal.NewFromInt(100))

		assert.ErrorIs(t, item.ApplyDiscount(decimal.NewFromInt(-1)), entity.ErrDiscountOutOfRange)
		assert.ErrorIs(t, item.ApplyDiscount(decimal.NewFromInt(101)), entity.ErrDiscountOutOfRange)
		assert.True(t, item.TotalAmount.Equal(decimal.NewFromInt(500)), "failed apply must not change amounts")
	})

	t.Run("rejects cancelled item", func(t *testing.T) {
		item := entity.NewSaleItem(1, "Widget", 5, decimal.NewFromInt(100))
		require.NoError(t, item.Cancel())

		assert.ErrorIs(t, item.ApplyDiscount(decimal.NewFromInt(10)), entity.ErrItemCancelled)
	})
}

func TestUpdateQuantity(t *testing.T) {
	t.Run("replaces quantity and discount together", func(t *testing.T) {
		item := entity.NewSaleItem(1, "Widget", 4, decimal.NewFromInt(10))
		require.NoError(t, item.ApplyDiscount(decimal.NewFromInt(10)))

		require.NoError(t, item.UpdateQuantity(12, decimal.NewFromInt(20)))
		assert.Equal(t, 12, item.Quantity)
		assert.True(t, item.DiscountPercentage.Equal(decimal.NewFromInt(20)))
		assert.True(t, item.TotalAmount.Equal(decimal.NewFromInt(96)))
	})

	t.Run("rejects quantity outside bounds", func(t *testing.T) {
		item := entity.NewSaleItem(1, "Widget", 4, decimal.NewFromInt(10))

		assert.ErrorIs(t, item.UpdateQuantity(0, decimal.Zero), entity.ErrQuantityOutOfRange)
		assert.ErrorIs(t, item.UpdateQuantity(21, decimal.Zero), entity.ErrQuantityOutOfRange)
		assert.Equal(t, 4, item.Quantity)
	})
}

func TestSaleItemCancelIsTerminal(t *testing.T) {
	item := entity.NewSaleItem(1, "Widget", 5, decimal.NewFromInt(100))

	require.NoError(t, item.Cancel())
	assert.True(t, item.IsCancelled)
	require.NotNil(t, item.CancelledAt)

	assert.ErrorIs(t, item.Cancel(), entity.ErrItemAlreadyCancelled)
	assert.ErrorIs(t, item.UpdateQuantity(3, decimal.Zero), entity.ErrItemCancelled)
}

func TestSaleItemValidate(t *testing.T) {
	t.Run("valid item has no violations", func(t *testing.T) {
		item := entity.NewSaleItem(1, "Widget", 5, decimal.NewFromInt(100))
		assert.Empty(t, item.Validate())
	})

	t.Run("quantity above limit", func(t *testing.T) {
		item := entity.NewSaleItem(1, "Widget", 5, decimal.NewFromInt(100))
		item.Quantity = 25

		violations := item.Validate()
		require.Len(t, violations, 1)
		assert.Equal(t, "quantity", violations[0].Field)
		assert.Equal(t, "It's not possible to sell above 20 identical items.", violations[0].Message)
	})

	t.Run("non-positive unit price", func(t *testing.T) {
		item := entity.NewSaleItem(1, "Widget", 5, decimal.Zero)

		violations := item.Validate()
		require.Len(t, violations, 1)
		assert.Equal(t, "unit_price", violations[0].Field)
	})

	t.Run("discount above subtotal", func(t *testing.T) {
		item := entity.NewSaleItem(1, "Widget", 5, decimal.NewFromInt(100))
		item.DiscountAmount = decimal.NewFromInt(600)

		violations := item.Validate()
		require.Len(t, violations, 1)
		assert.Equal(t, "discount_amount", violations[0].Field)
	})
}

func TestDiscountRule(t *testing.T) {
	t.Run("applies inside range", func(t *testing.T) {
		rule := entity.NewDiscountRule(4, 9, decimal.NewFromInt(10))

		assert.False(t, rule.AppliesTo(3))
		assert.True(t, rule.AppliesTo(4))
		assert.True(t, rule.AppliesTo(9))
		assert.False(t, rule.AppliesTo(10))
	})

	t.Run("inactive rule never applies", func(t *testing.T) {
		rule := entity.NewDiscountRule(4, 9, decimal.NewFromInt(10))
		rule.Deactivate()

		assert.False(t, rule.AppliesTo(5))

		rule.Activate()
		assert.True(t, rule.AppliesTo(5))
	})

	t.Run("validate rejects inverted and oversized ranges", func(t *testing.T) {
		rule := entity.NewDiscountRule(9, 4, decimal.NewFromInt(10))
		violations := rule.Validate()
		require.Len(t, violations, 1)
		assert.Equal(t, "max_quantity", violations[0].Field)

		rule = entity.NewDiscountRule(4, 30, decimal.NewFromInt(10))
		violations = rule.Validate()
		require.Len(t, violations, 1)
		assert.Equal(t, "max_quantity", violations[0].Field)

		rule = entity.NewDiscountRule(4, 9, decimal.NewFromInt(150))
		violations = rule.Validate()
		require.Len(t, violations, 1)
		assert.Equal(t, "discount_percentage", violations[0].Field)
	})
}
