package entity

// ReceiptHeader holds the store/business header printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	TaxID     string `json:"tax_id,omitempty"`
	Message   string `json:"message,omitempty"`
}

// ReceiptItem is one rendered line. Quantity and Unit are already converted
// for display; they are never written back to the sale.
type ReceiptItem struct {
	Name      string  `json:"name"`
	Quantity  string  `json:"quantity"`
	Unit      string  `json:"unit"`
	UnitPrice float64 `json:"unit_price"`
	Discount  float64 `json:"discount,omitempty"`
	Total     float64 `json:"total"`
}

// Receipt is a value object composed from a persisted sale and the settings.
// Totals are copied from the sale as stored.
type Receipt struct {
	Header      ReceiptHeader `json:"header"`
	SaleID      uint          `json:"sale_id"`
	InvoiceNo   string        `json:"invoice_no"`
	Date        string        `json:"date"`
	Cashier     string        `json:"cashier"`
	Customer    string        `json:"customer,omitempty"`
	Currency    string        `json:"currency"`
	PaymentType string        `json:"payment_type"`
	Items       []ReceiptItem `json:"items"`
	SubTotal    float64       `json:"sub_total"`
	Discount    float64       `json:"discount"`
	Tax         float64       `json:"tax"`
	Total       float64       `json:"total"`
	Paid        float64       `json:"paid"`
	Change      float64       `json:"change"`
	Footer      string        `json:"footer,omitempty"`
	PrintCount  int           `json:"print_count"`
}
