// Package cart holds the in-memory checkout state for one cashier session.
// A Cart is not safe for concurrent use; the owner serializes access.
package cart

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/sangkips/tillpoint/internal/domain/entity"
	"github.com/sangkips/tillpoint/internal/domain/enum"
	"github.com/sangkips/tillpoint/pkg/apperror"
)

const (
	// FractionalStep is the default increment for weighed and measured goods.
	FractionalStep = 0.25
	// UnitStep is the default increment for everything else.
	UnitStep = 1.0
)

var fractionalUnits = []string{"kg", "g", "l", "ml", "liter", "litre", "kilogram", "gram"}

// StepSize returns the default quantity increment for a unit. Matching is a
// case-insensitive substring test, so "Kilograms" and "500ml" both count.
func StepSize(unit string) float64 {
	u := strings.ToLower(unit)
	if u == "" {
		return UnitStep
	}
	for _, pattern := range fractionalUnits {
		if strings.Contains(u, pattern) {
			return FractionalStep
		}
	}
	return UnitStep
}

// Totals is the order summary. Tax is always charged on Subtotal - Discount.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// ComputeTotals sums line totals, takes the order discount off, then adds tax.
func ComputeTotals(items []entity.SaleItem, orderDiscount entity.LineDiscount, taxRate float64) Totals {
	var subtotal float64
	for _, item := range items {
		subtotal += item.Total
	}
	discount := orderDiscount.Apply(subtotal)
	taxable := subtotal - discount
	tax := taxable * taxRate / 100
	return Totals{
		Subtotal: subtotal,
		Discount: discount,
		Tax:      tax,
		Total:    taxable + tax,
	}
}

// Cart is an ordered list of lines plus an order-level discount.
type Cart struct {
	session       entity.Session
	now           func() time.Time
	items         []entity.SaleItem
	orderDiscount entity.LineDiscount
}

// New returns an empty cart owned by session. A nil clock means time.Now.
func New(session entity.Session, clock func() time.Time) *Cart {
	if clock == nil {
		clock = time.Now
	}
	return &Cart{
		session:       session,
		now:           clock,
		orderDiscount: entity.NoDiscount(),
	}
}

func (c *Cart) Session() entity.Session {
	return c.session
}

// Items returns a copy of the lines in the order they were added.
func (c *Cart) Items() []entity.SaleItem {
	out := make([]entity.SaleItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

func (c *Cart) OrderDiscount() entity.LineDiscount {
	return c.orderDiscount
}

// Line returns the line for productID, if any.
func (c *Cart) Line(productID uint) (entity.SaleItem, bool) {
	if i := c.indexOf(productID); i >= 0 {
		return c.items[i], true
	}
	return entity.SaleItem{}, false
}

// AddItem adds product to the cart. With qty nil the unit's step size is
// used. An existing line grows by that amount and keeps its snapshot price;
// a new line snapshots the effective price at the cart clock. Nothing changes
// when the stock guard fails.
func (c *Cart) AddItem(product *entity.Product, qty *float64) error {
	if product == nil {
		return apperror.Validation("product", "Product is required")
	}

	step := StepSize(product.Unit)
	if qty != nil {
		if math.IsNaN(*qty) || math.IsInf(*qty, 0) || *qty <= 0 {
			return apperror.Validation("quantity", "Quantity must be greater than zero")
		}
		step = *qty
	}

	if i := c.indexOf(product.ID); i >= 0 {
		line := &c.items[i]
		next := line.Quantity + step
		if next > product.Stock {
			return apperror.NewInsufficientStockError(
				fmt.Sprintf("Only %s %s of %s in stock", formatQty(product.Stock), product.Unit, product.Name))
		}
		line.Quantity = next
		line.Recompute()
		return nil
	}

	if product.Stock < 1 || step > product.Stock {
		return apperror.NewInsufficientStockError(fmt.Sprintf("%s is out of stock", product.Name))
	}

	line := entity.SaleItem{
		ProductID: product.ID,
		Barcode:   product.Barcode,
		Name:      product.Name,
		Unit:      product.Unit,
		Price:     product.EffectivePrice(c.now()),
		Quantity:  step,
		Discount:  entity.NoDiscount(),
	}
	line.Recompute()
	c.items = append(c.items, line)
	return nil
}

// UpdateQuantity sets a line's quantity. Negative or non-finite input is
// clamped to zero rather than rejected. Stock is checked at commit.
func (c *Cart) UpdateQuantity(productID uint, quantity float64) error {
	i := c.indexOf(productID)
	if i < 0 {
		return apperror.NewNotFoundError("Cart item")
	}
	if math.IsNaN(quantity) || math.IsInf(quantity, 0) || quantity < 0 {
		quantity = 0
	}
	c.items[i].Quantity = quantity
	c.items[i].Recompute()
	return nil
}

// UpdateItemDiscount replaces a line's discount and recomputes its total.
func (c *Cart) UpdateItemDiscount(productID uint, discount entity.LineDiscount) error {
	if err := ValidateDiscount(discount); err != nil {
		return err
	}
	i := c.indexOf(productID)
	if i < 0 {
		return apperror.NewNotFoundError("Cart item")
	}
	c.items[i].Discount = discount
	c.items[i].Recompute()
	return nil
}

// RemoveItem drops a line. Stock is untouched.
func (c *Cart) RemoveItem(productID uint) error {
	i := c.indexOf(productID)
	if i < 0 {
		return apperror.NewNotFoundError("Cart item")
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	return nil
}

// SetOrderDiscount sets the discount applied to the sum of line totals.
func (c *Cart) SetOrderDiscount(discount entity.LineDiscount) error {
	if err := ValidateDiscount(discount); err != nil {
		return err
	}
	c.orderDiscount = discount
	return nil
}

// Totals computes the order summary at taxRate percent.
func (c *Cart) Totals(taxRate float64) Totals {
	return ComputeTotals(c.items, c.orderDiscount, taxRate)
}

// Clear empties the cart and resets the order discount.
func (c *Cart) Clear() {
	c.items = nil
	c.orderDiscount = entity.NoDiscount()
}

func (c *Cart) indexOf(productID uint) int {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// ValidateDiscount rejects percentages outside [0, 100] and negative amounts.
func ValidateDiscount(d entity.LineDiscount) error {
	if math.IsNaN(d.Value) || math.IsInf(d.Value, 0) {
		return apperror.Validation("value", "Discount must be a number")
	}
	switch d.Type {
	case enum.DiscountNone:
		return nil
	case enum.DiscountPercent:
		if d.Value < 0 || d.Value > 100 {
			return apperror.Validation("value", "Percent discount must be between 0 and 100")
		}
	case enum.DiscountAmount:
		if d.Value < 0 {
			return apperror.Validation("value", "Discount amount cannot be negative")
		}
	default:
		return apperror.Validation("type", "Unknown discount type")
	}
	return nil
}

func formatQty(q float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.3f", q), "0"), ".")
}
