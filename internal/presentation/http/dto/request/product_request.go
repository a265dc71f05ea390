package request

import "time"

// ProductRequest represents a product create or full update
type ProductRequest struct {
	Barcode      string  `json:"barcode" binding:"required,max=100"`
	Name         string  `json:"name" binding:"required,max=255"`
	Category     string  `json:"category" binding:"max=100"`
	CostPrice    float64 `json:"cost_price" binding:"min=0"`
	SellingPrice float64 `json:"selling_price" binding:"min=0"`
	Stock        float64 `json:"stock" binding:"min=0"`
	MinStock     float64 `json:"min_stock" binding:"min=0"`
	Unit         string  `json:"unit" binding:"max=50"`
	Supplier     string  `json:"supplier" binding:"max=255"`
}

// ProductDiscountRequest sets a time-boxed catalog discount
type ProductDiscountRequest struct {
	Percent   float64    `json:"percent" binding:"required"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search    string `form:"search"`
	Category  string `form:"category"`
	LowStock  bool   `form:"low_stock"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}

// LookupRequest creates a category, supplier or unit
type LookupRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Contact string `json:"contact"`
	Symbol  string `json:"symbol"`
}
