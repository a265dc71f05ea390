package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ptr(t time.Time) *time.Time { return &t }

func TestEffectivePriceDiscountWindow(t *testing.T) {
	now := time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)

	p := Product{SellingPrice: 5, DiscountPercent: 20, DiscountStartDate: ptr(yesterday), DiscountEndDate: ptr(tomorrow)}
	assert.True(t, p.IsDiscountActive(now))
	assert.InDelta(t, 4.0, p.EffectivePrice(now), 1e-9)

	p.DiscountEndDate = ptr(yesterday)
	assert.False(t, p.IsDiscountActive(now))
	assert.Equal(t, 5.0, p.EffectivePrice(now))
}

func TestDiscountWindowEdges(t *testing.T) {
	now := time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)

	open := Product{SellingPrice: 10, DiscountPercent: 10}
	assert.True(t, open.IsDiscountActive(now))

	boundary := Product{SellingPrice: 10, DiscountPercent: 10, DiscountStartDate: ptr(now), DiscountEndDate: ptr(now)}
	assert.True(t, boundary.IsDiscountActive(now))

	notYet := Product{SellingPrice: 10, DiscountPercent: 10, DiscountStartDate: ptr(now.Add(time.Minute))}
	assert.False(t, notYet.IsDiscountActive(now))

	zero := Product{SellingPrice: 10}
	assert.False(t, zero.IsDiscountActive(now))
}

func TestLineDiscountApply(t *testing.T) {
	assert.Equal(t, 0.0, NoDiscount().Apply(10))
	assert.InDelta(t, 1.5, PercentDiscount(15).Apply(10), 1e-9)
	assert.Equal(t, 3.0, AmountDiscount(3).Apply(10))
	assert.Equal(t, 10.0, AmountDiscount(25).Apply(10))

	d := AmountDiscount(4)
	assert.Equal(t, 0.0, d.Percent())
	assert.Equal(t, 4.0, d.Amount())
}

func TestSaleItemRecompute(t *testing.T) {
	item := SaleItem{Price: 2.5, Quantity: 4, Discount: AmountDiscount(100)}
	item.Recompute()
	assert.Equal(t, 0.0, item.Total)

	item.Discount = PercentDiscount(10)
	item.Recompute()
	assert.InDelta(t, 9.0, item.Total, 1e-9)
}
