package request

import "github.com/sangkips/tillpoint/internal/domain/enum"

// LoginRequest represents a PIN login
type LoginRequest struct {
	PIN string `json:"pin" binding:"required"`
}

// CreateCashierRequest represents a new till account
type CreateCashierRequest struct {
	Name string           `json:"name" binding:"required,min=1,max=100"`
	PIN  string           `json:"pin" binding:"required"`
	Role enum.CashierRole `json:"role"`
}

// ResetAdminPINRequest changes the admin PIN. The current admin PIN is required.
type ResetAdminPINRequest struct {
	AdminPIN string `json:"admin_pin" binding:"required"`
	NewPIN   string `json:"new_pin" binding:"required"`
}

// RestoreRequest rolls the store back over a period
type RestoreRequest struct {
	Period   string `json:"period" binding:"required"`
	AdminPIN string `json:"admin_pin" binding:"required"`
}

// DeleteSalesRequest removes the sales matching a filter. Empty filters match every sale.
type DeleteSalesRequest struct {
	AdminPIN string `json:"admin_pin" binding:"required"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Cashier  string `json:"cashier"`
}
