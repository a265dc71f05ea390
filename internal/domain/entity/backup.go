package entity

import "time"

// Backup is the full-store JSON export. Import replaces every table with its contents.
type Backup struct {
	ExportDate      time.Time       `json:"export_date"`
	Products        []Product       `json:"products"`
	Sales           []Sale          `json:"sales"`
	Customers       []Customer      `json:"customers"`
	Settings        []Settings      `json:"settings"`
	Categories      []Category      `json:"categories"`
	Suppliers       []Supplier      `json:"suppliers"`
	Units           []Unit          `json:"units"`
	Cashiers        []CashierRecord `json:"cashiers"`
	Expenses        []Expense       `json:"expenses"`
	QuickQuantities []QuickQuantity `json:"quick_quantities"`
}

// CashierRecord carries the PIN hash, which the regular Cashier JSON hides.
type CashierRecord struct {
	Cashier
	PINHash string `json:"pin_hash"`
}
