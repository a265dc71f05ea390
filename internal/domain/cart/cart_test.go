package cart

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/sangkips/tillpoint/internal/domain/entity"
	"github.com/sangkips/tillpoint/internal/domain/enum"
	"github.com/sangkips/tillpoint/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

func newCart() *Cart {
	return New(entity.Session{ID: "s1", CashierID: 1, CashierName: "Admin", Role: enum.RoleAdmin}, func() time.Time { return fixedNow })
}

func qty(v float64) *float64 { return &v }

func product(id uint, price, stock float64, unit string) *entity.Product {
	return &entity.Product{ID: id, Barcode: "B" + string(rune('0'+id)), Name: "P", SellingPrice: price, Stock: stock, Unit: unit}
}

func TestStepSize(t *testing.T) {
	cases := map[string]float64{
		"kg":       0.25,
		"KG":       0.25,
		"Kilogram": 0.25,
		"g":        0.25,
		"liter":    0.25,
		"500ml":    0.25,
		"pcs":      1,
		"box":      1,
		"":         1,
	}
	for unit, want := range cases {
		assert.Equal(t, want, StepSize(unit), unit)
	}
}

func TestAddItemUsesStep(t *testing.T) {
	c := newCart()
	require.NoError(t, c.AddItem(product(1, 4, 10, "kg"), nil))
	require.NoError(t, c.AddItem(product(1, 4, 10, "kg"), nil))

	line, ok := c.Line(1)
	require.True(t, ok)
	assert.Equal(t, 0.5, line.Quantity)
	assert.InDelta(t, 2.0, line.Total, 1e-9)

	require.NoError(t, c.AddItem(product(2, 3, 10, "pcs"), nil))
	line, _ = c.Line(2)
	assert.Equal(t, 1.0, line.Quantity)
	assert.Len(t, c.Items(), 2)
}

func TestAddItemSuppliedQuantity(t *testing.T) {
	c := newCart()
	require.NoError(t, c.AddItem(product(1, 2, 10, "pcs"), qty(3)))
	require.NoError(t, c.AddItem(product(1, 2, 10, "pcs"), qty(2)))
	line, _ := c.Line(1)
	assert.Equal(t, 5.0, line.Quantity)

	err := c.AddItem(product(1, 2, 10, "pcs"), qty(-1))
	assert.True(t, errors.Is(err, apperror.ErrValidation))
}

func TestAddItemOutOfStockLeavesCartUnchanged(t *testing.T) {
	c := newCart()
	err := c.AddItem(product(1, 2, 0, "pcs"), nil)
	assert.True(t, errors.Is(err, apperror.ErrInsufficientStock))
	assert.True(t, c.IsEmpty())
}

func TestAddExistingBeyondStock(t *testing.T) {
	c := newCart()
	p := product(1, 2, 2, "pcs")
	require.NoError(t, c.AddItem(p, nil))
	require.NoError(t, c.AddItem(p, nil))

	err := c.AddItem(p, nil)
	assert.True(t, errors.Is(err, apperror.ErrInsufficientStock))
	line, _ := c.Line(1)
	assert.Equal(t, 2.0, line.Quantity)
}

func TestAddItemSnapshotsEffectivePrice(t *testing.T) {
	yesterday := fixedNow.AddDate(0, 0, -1)
	tomorrow := fixedNow.AddDate(0, 0, 1)
	p := product(1, 10, 5, "pcs")
	p.DiscountPercent = 20
	p.DiscountStartDate = &yesterday
	p.DiscountEndDate = &tomorrow

	c := newCart()
	require.NoError(t, c.AddItem(p, nil))
	line, _ := c.Line(1)
	assert.InDelta(t, 8.0, line.Price, 1e-9)

	// later catalog edits do not reprice the line
	p.DiscountEndDate = &yesterday
	require.NoError(t, c.AddItem(p, nil))
	line, _ = c.Line(1)
	assert.InDelta(t, 8.0, line.Price, 1e-9)
	assert.InDelta(t, 16.0, line.Total, 1e-9)

	expired := product(2, 10, 5, "pcs")
	expired.DiscountPercent = 20
	expired.DiscountStartDate = &yesterday
	expired.DiscountEndDate = &yesterday
	require.NoError(t, c.AddItem(expired, nil))
	line, _ = c.Line(2)
	assert.Equal(t, 10.0, line.Price)
}

func TestUpdateQuantityClampsAndIsIdempotent(t *testing.T) {
	c := newCart()
	require.NoError(t, c.AddItem(product(1, 2.5, 10, "pcs"), nil))

	require.NoError(t, c.UpdateQuantity(1, 3))
	first, _ := c.Line(1)
	require.NoError(t, c.UpdateQuantity(1, 3))
	second, _ := c.Line(1)
	assert.Equal(t, first, second)
	assert.InDelta(t, 7.5, second.Total, 1e-9)

	for _, bad := range []float64{-2, math.NaN(), math.Inf(1), math.Inf(-1)} {
		require.NoError(t, c.UpdateQuantity(1, bad))
		line, _ := c.Line(1)
		assert.Equal(t, 0.0, line.Quantity)
		assert.Equal(t, 0.0, line.Total)
	}

	assert.True(t, errors.Is(c.UpdateQuantity(99, 1), apperror.ErrNotFound))
}

func TestLineAmountDiscountNeverNegative(t *testing.T) {
	c := newCart()
	require.NoError(t, c.AddItem(product(1, 2, 10, "pcs"), qty(2)))

	for _, amount := range []float64{0, 1, 4, 50} {
		require.NoError(t, c.UpdateItemDiscount(1, entity.AmountDiscount(amount)))
		line, _ := c.Line(1)
		assert.Equal(t, math.Max(0, 4-math.Min(amount, 4)), line.Total)
	}

	require.NoError(t, c.UpdateItemDiscount(1, entity.PercentDiscount(25)))
	line, _ := c.Line(1)
	assert.InDelta(t, 3.0, line.Total, 1e-9)

	// discount survives quantity changes
	require.NoError(t, c.UpdateQuantity(1, 4))
	line, _ = c.Line(1)
	assert.InDelta(t, 6.0, line.Total, 1e-9)
}

func TestDiscountValidation(t *testing.T) {
	c := newCart()
	require.NoError(t, c.AddItem(product(1, 2, 10, "pcs"), nil))

	assert.True(t, errors.Is(c.UpdateItemDiscount(1, entity.PercentDiscount(101)), apperror.ErrValidation))
	assert.True(t, errors.Is(c.UpdateItemDiscount(1, entity.AmountDiscount(-1)), apperror.ErrValidation))
	assert.True(t, errors.Is(c.SetOrderDiscount(entity.PercentDiscount(-5)), apperror.ErrValidation))
	assert.True(t, errors.Is(c.UpdateItemDiscount(7, entity.PercentDiscount(5)), apperror.ErrNotFound))
}

func TestTotalsRoundTripExample(t *testing.T) {
	c := newCart()
	require.NoError(t, c.AddItem(product(1, 2.5, 10, "pcs"), qty(4)))
	require.NoError(t, c.AddItem(product(2, 1.8, 10, "pcs"), qty(2)))

	totals := c.Totals(10)
	assert.InDelta(t, 13.6, totals.Subtotal, 1e-9)
	assert.Equal(t, 0.0, totals.Discount)
	assert.InDelta(t, 1.36, totals.Tax, 1e-9)
	assert.InDelta(t, 14.96, totals.Total, 1e-9)
}

func TestTotalsDiscountBeforeTax(t *testing.T) {
	c := newCart()
	require.NoError(t, c.AddItem(product(1, 10, 10, "pcs"), qty(3)))
	require.NoError(t, c.AddItem(product(2, 5, 10, "pcs"), qty(1)))
	require.NoError(t, c.UpdateItemDiscount(2, entity.AmountDiscount(1)))

	discounts := []entity.LineDiscount{
		entity.NoDiscount(),
		entity.PercentDiscount(10),
		entity.AmountDiscount(4),
		entity.AmountDiscount(1000),
	}
	for _, rate := range []float64{0, 8, 15} {
		for _, d := range discounts {
			require.NoError(t, c.SetOrderDiscount(d))
			totals := c.Totals(rate)
			assert.InDelta(t, 34.0, totals.Subtotal, 1e-9)
			assert.InDelta(t, (totals.Subtotal-totals.Discount)*rate/100, totals.Tax, 1e-9)
			assert.InDelta(t, totals.Subtotal-totals.Discount+totals.Tax, totals.Total, 1e-9)
			assert.GreaterOrEqual(t, totals.Total, 0.0)
		}
	}

	require.NoError(t, c.SetOrderDiscount(entity.PercentDiscount(10)))
	totals := c.Totals(10)
	assert.InDelta(t, 3.4, totals.Discount, 1e-9)
	assert.InDelta(t, 3.06, totals.Tax, 1e-9)
	assert.InDelta(t, 33.66, totals.Total, 1e-9)
}

func TestRemoveAndClear(t *testing.T) {
	c := newCart()
	require.NoError(t, c.AddItem(product(1, 2, 10, "pcs"), nil))
	require.NoError(t, c.AddItem(product(2, 2, 10, "pcs"), nil))
	require.NoError(t, c.AddItem(product(3, 2, 10, "pcs"), nil))

	require.NoError(t, c.RemoveItem(2))
	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, uint(1), items[0].ProductID)
	assert.Equal(t, uint(3), items[1].ProductID)
	assert.True(t, errors.Is(c.RemoveItem(2), apperror.ErrNotFound))

	require.NoError(t, c.SetOrderDiscount(entity.AmountDiscount(1)))
	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.True(t, c.OrderDiscount().IsZero())
	assert.Equal(t, "Admin", c.Session().CashierName)
}

func TestItemsReturnsCopy(t *testing.T) {
	c := newCart()
	require.NoError(t, c.AddItem(product(1, 2, 10, "pcs"), nil))
	items := c.Items()
	items[0].Quantity = 99
	line, _ := c.Line(1)
	assert.Equal(t, 1.0, line.Quantity)
}
