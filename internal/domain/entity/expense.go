package entity

import (
	"time"

	"github.com/sangkips/tillpoint/internal/domain/enum"
)

// Expense is money paid out of the till. Date is when it was incurred.
type Expense struct {
	ID            uint               `gorm:"primaryKey" json:"id"`
	Category      string             `gorm:"size:100;not null;index" json:"category"`
	Description   string             `gorm:"type:text" json:"description"`
	Amount        float64            `gorm:"not null" json:"amount"`
	Date          time.Time          `gorm:"not null;index" json:"date"`
	PaymentMethod enum.PaymentMethod `gorm:"not null;default:0" json:"payment_method"`
	Receipt       string             `gorm:"size:255" json:"receipt,omitempty"`
	CreatedBy     string             `gorm:"size:100;not null" json:"created_by"`
	CreatedAt     time.Time          `json:"created_at"`
}

// TableName returns the table name for the Expense model
func (Expense) TableName() string {
	return "expenses"
}
