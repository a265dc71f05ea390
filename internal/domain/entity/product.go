package entity

import (
	"time"
)

// Product is a catalog entry. Stock is fractional for weight and volume units.
type Product struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	Barcode           string     `gorm:"size:100;uniqueIndex;not null" json:"barcode"`
	Name              string     `gorm:"size:255;not null;index" json:"name"`
	Category          string     `gorm:"size:100;index" json:"category"`
	CostPrice         float64    `gorm:"not null;default:0" json:"cost_price"`
	SellingPrice      float64    `gorm:"not null;default:0" json:"selling_price"`
	Stock             float64    `gorm:"not null;default:0" json:"stock"`
	MinStock          float64    `gorm:"not null;default:0" json:"min_stock"`
	Unit              string     `gorm:"size:50" json:"unit"`
	Supplier          string     `gorm:"size:255" json:"supplier,omitempty"`
	DiscountPercent   float64    `gorm:"not null;default:0" json:"discount_percent"`
	DiscountStartDate *time.Time `json:"discount_start_date,omitempty"`
	DiscountEndDate   *time.Time `json:"discount_end_date,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// IsDiscountActive reports whether the promotional discount applies at now.
// Both window bounds are inclusive and either may be open.
func (p *Product) IsDiscountActive(now time.Time) bool {
	if p.DiscountPercent <= 0 {
		return false
	}
	if p.DiscountStartDate != nil && now.Before(*p.DiscountStartDate) {
		return false
	}
	if p.DiscountEndDate != nil && now.After(*p.DiscountEndDate) {
		return false
	}
	return true
}

// EffectivePrice is the unit price a cart line snapshots at add time.
func (p *Product) EffectivePrice(now time.Time) float64 {
	if p.IsDiscountActive(now) {
		return p.SellingPrice * (1 - p.DiscountPercent/100)
	}
	return p.SellingPrice
}

// IsLowStock reports whether stock has reached the reorder threshold.
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.MinStock
}

// Category is a lookup list for the product form.
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}

// Unit is a selectable unit of measure, e.g. {Name: "kilogram", Symbol: "kg"}.
type Unit struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Symbol    string    `gorm:"size:20;not null" json:"symbol"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the table name for the Unit model
func (Unit) TableName() string {
	return "units"
}
