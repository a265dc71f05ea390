package request

import (
	"github.com/sangkips/tillpoint/internal/domain/entity"
	"github.com/sangkips/tillpoint/internal/domain/enum"
)

// AddItemRequest adds a product by id or scanned barcode
type AddItemRequest struct {
	ProductID uint     `json:"product_id"`
	Barcode   string   `json:"barcode"`
	Quantity  *float64 `json:"quantity"`
}

// UpdateQuantityRequest sets a line quantity
type UpdateQuantityRequest struct {
	Quantity float64 `json:"quantity"`
}

// DiscountRequest is a line or order discount
type DiscountRequest struct {
	Type  enum.DiscountType `json:"type"`
	Value float64           `json:"value"`
}

func (r DiscountRequest) ToDiscount() entity.LineDiscount {
	return entity.LineDiscount{Type: r.Type, Value: r.Value}
}

// CheckoutRequest commits the current cart
type CheckoutRequest struct {
	PaymentMethod enum.PaymentMethod `json:"payment_method"`
	AmountPaid    *float64           `json:"amount_paid"`
	CustomerID    *uint              `json:"customer_id"`
}
