package entity

import "time"

// Supplier is a vendor name referenced free-form from products.
type Supplier struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Contact   string    `gorm:"size:255" json:"contact,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the table name for the Supplier model
func (Supplier) TableName() string {
	return "suppliers"
}
