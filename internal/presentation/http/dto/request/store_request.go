package request

import (
	"time"

	"github.com/sangkips/tillpoint/internal/domain/entity"
	"github.com/sangkips/tillpoint/internal/domain/enum"
)

// UpdateSettingsRequest represents a partial settings update
type UpdateSettingsRequest struct {
	StoreName      *string  `json:"store_name"`
	StoreAddress   *string  `json:"store_address"`
	StorePhone     *string  `json:"store_phone"`
	TaxID          *string  `json:"tax_id"`
	TaxRate        *float64 `json:"tax_rate"`
	Currency       *string  `json:"currency"`
	ReceiptHeader  *string  `json:"receipt_header"`
	ReceiptFooter  *string  `json:"receipt_footer"`
	ExportFileName *string  `json:"export_file_name"`
}

// CreateExpenseRequest records money paid out of the till
type CreateExpenseRequest struct {
	Category      string             `json:"category" binding:"required,max=100"`
	Description   string             `json:"description"`
	Amount        float64            `json:"amount" binding:"required,gt=0"`
	Date          *time.Time         `json:"date"`
	PaymentMethod enum.PaymentMethod `json:"payment_method"`
	Receipt       string             `json:"receipt" binding:"max=255"`
}

// CreateCustomerRequest registers a loyalty customer
type CreateCustomerRequest struct {
	Name  string  `json:"name" binding:"required,max=255"`
	Phone string  `json:"phone" binding:"max=50"`
	Email *string `json:"email" binding:"omitempty,email"`
}

// ImportBackupRequest replaces the store with a backup
type ImportBackupRequest struct {
	AdminPIN string         `json:"admin_pin" binding:"required"`
	Backup   *entity.Backup `json:"backup" binding:"required"`
}
