package entity

import (
	"time"

	"github.com/sangkips/tillpoint/internal/domain/enum"
)

// Cashier is a till operator. The PIN is only ever stored as a bcrypt hash.
type Cashier struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	Name      string           `gorm:"size:100;not null;uniqueIndex" json:"name"`
	PINHash   string           `gorm:"column:pin_hash;size:255;not null" json:"-"`
	Role      enum.CashierRole `gorm:"not null;default:0" json:"role"`
	CreatedAt time.Time        `json:"created_at"`
}

// TableName returns the table name for the Cashier model
func (Cashier) TableName() string {
	return "cashiers"
}

func (c *Cashier) IsAdmin() bool {
	return c.Role == enum.RoleAdmin
}

// Session identifies who is operating the till for one login. It is handed
// to the cart and to the commit rather than read from global state.
type Session struct {
	ID          string
	CashierID   uint
	CashierName string
	Role        enum.CashierRole
}

func (s Session) IsAdmin() bool {
	return s.Role == enum.RoleAdmin
}
