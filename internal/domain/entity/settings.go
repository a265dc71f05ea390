package entity

import "time"

// Settings is the store-wide singleton. The first row is authoritative.
type Settings struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	StoreName      string    `gorm:"size:255;not null" json:"store_name"`
	StoreAddress   string    `gorm:"size:255" json:"store_address,omitempty"`
	StorePhone     string    `gorm:"size:50" json:"store_phone,omitempty"`
	TaxID          string    `gorm:"size:50" json:"tax_id,omitempty"`
	TaxRate        float64   `gorm:"not null;default:0" json:"tax_rate"`
	Currency       string    `gorm:"size:10;not null" json:"currency"`
	ReceiptHeader  string    `gorm:"type:text" json:"receipt_header"`
	ReceiptFooter  string    `gorm:"type:text" json:"receipt_footer"`
	ExportFileName string    `gorm:"size:100" json:"export_file_name,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName returns the table name for the Settings model
func (Settings) TableName() string {
	return "settings"
}

// DefaultSettings is what a fresh till starts with.
func DefaultSettings() *Settings {
	return &Settings{
		StoreName:      "SuperMart POS",
		TaxRate:        10,
		Currency:       "LKR",
		ReceiptHeader:  "Thank you for shopping with us!",
		ReceiptFooter:  "Visit again soon!",
		ExportFileName: "pos-backup",
	}
}

// QuickQuantity is a preset quantity button shown for weighed goods.
type QuickQuantity struct {
	ID    uint    `gorm:"primaryKey" json:"id"`
	Value float64 `gorm:"not null" json:"value"`
	Label string  `gorm:"size:50;not null" json:"label"`
}

// TableName returns the table name for the QuickQuantity model
func (QuickQuantity) TableName() string {
	return "quick_quantities"
}
