package entity

import (
	"math"
	"time"

	"github.com/sangkips/tillpoint/internal/domain/enum"
)

// LineDiscount is a tagged discount: none, a percentage, or a fixed amount.
// Only the value for the active type is kept.
type LineDiscount struct {
	Type  enum.DiscountType `json:"type"`
	Value float64           `json:"value"`
}

func NoDiscount() LineDiscount {
	return LineDiscount{Type: enum.DiscountNone}
}

func PercentDiscount(pct float64) LineDiscount {
	return LineDiscount{Type: enum.DiscountPercent, Value: pct}
}

func AmountDiscount(amount float64) LineDiscount {
	return LineDiscount{Type: enum.DiscountAmount, Value: amount}
}

// Apply returns the amount taken off subtotal. Amount discounts are capped at
// subtotal so a total never goes negative.
func (d LineDiscount) Apply(subtotal float64) float64 {
	switch d.Type {
	case enum.DiscountPercent:
		return subtotal * d.Value / 100
	case enum.DiscountAmount:
		return math.Min(d.Value, subtotal)
	}
	return 0
}

// IsZero reports whether the discount takes nothing off.
func (d LineDiscount) IsZero() bool {
	return d.Type == enum.DiscountNone || d.Value <= 0
}

// Percent is the percentage value, or 0 when the discount is not a percentage.
func (d LineDiscount) Percent() float64 {
	if d.Type == enum.DiscountPercent {
		return d.Value
	}
	return 0
}

// Amount is the fixed amount, or 0 when the discount is not an amount.
func (d LineDiscount) Amount() float64 {
	if d.Type == enum.DiscountAmount {
		return d.Value
	}
	return 0
}

// SaleItem is a line snapshot. Barcode, name, unit and price are copied from
// the product at add time and never follow later catalog edits.
type SaleItem struct {
	ProductID uint         `json:"product_id"`
	Barcode   string       `json:"barcode"`
	Name      string       `json:"name"`
	Unit      string       `json:"unit,omitempty"`
	Price     float64      `json:"price"`
	Quantity  float64      `json:"quantity"`
	Total     float64      `json:"total"`
	Discount  LineDiscount `json:"discount"`
}

// Subtotal is quantity times price before the line discount.
func (i *SaleItem) Subtotal() float64 {
	return i.Quantity * i.Price
}

// DiscountValue is the currency amount the line discount takes off.
func (i *SaleItem) DiscountValue() float64 {
	return i.Discount.Apply(i.Subtotal())
}

// Recompute refreshes Total from quantity, price and discount.
func (i *SaleItem) Recompute() {
	subtotal := i.Subtotal()
	i.Total = subtotal - i.Discount.Apply(subtotal)
}

// Sale is a committed transaction. It is only mutated afterwards to record prints.
type Sale struct {
	ID            uint               `gorm:"primaryKey" json:"id"`
	Items         []SaleItem         `gorm:"serializer:json;type:text;not null" json:"items"`
	Subtotal      float64            `gorm:"not null" json:"subtotal"`
	Tax           float64            `gorm:"not null" json:"tax"`
	Discount      float64            `gorm:"not null;default:0" json:"discount"`
	Total         float64            `gorm:"not null" json:"total"`
	PaymentMethod enum.PaymentMethod `gorm:"not null;default:0" json:"payment_method"`
	AmountPaid    float64            `gorm:"not null" json:"amount_paid"`
	Change        float64            `gorm:"column:change_due;not null;default:0" json:"change"`
	CustomerID    *uint              `gorm:"index" json:"customer_id,omitempty"`
	CustomerName  string             `gorm:"size:255" json:"customer_name,omitempty"`
	Cashier       string             `gorm:"size:100;not null;index" json:"cashier"`
	Timestamp     time.Time          `gorm:"not null;index" json:"timestamp"`
	PrintCount    int                `gorm:"not null;default:0" json:"print_count"`
	PrintHistory  []time.Time        `gorm:"serializer:json;type:text;not null" json:"print_history"`
	CreatedAt     time.Time          `json:"created_at"`
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// ItemCount sums line quantities.
func (s *Sale) ItemCount() float64 {
	var n float64
	for _, item := range s.Items {
		n += item.Quantity
	}
	return n
}

// CostOfGoods prices the items at the given unit costs; unknown products count as zero.
func (s *Sale) CostOfGoods(costs map[uint]float64) float64 {
	var cost float64
	for _, item := range s.Items {
		cost += costs[item.ProductID] * item.Quantity
	}
	return cost
}
