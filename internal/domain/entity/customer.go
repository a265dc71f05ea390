package entity

import (
	"time"
)

// Customer is a loyalty account that can be attached to a sale.
type Customer struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"size:255;not null;index" json:"name"`
	Phone          string    `gorm:"size:50;index" json:"phone"`
	Email          *string   `gorm:"size:255" json:"email,omitempty"`
	LoyaltyPoints  int       `gorm:"not null;default:0" json:"loyalty_points"`
	TotalPurchases float64   `gorm:"not null;default:0" json:"total_purchases"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
