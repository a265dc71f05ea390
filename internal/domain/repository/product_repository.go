package repository

import (
	"context"

	"github.com/sangkips/tillpoint/internal/domain/entity"
	"github.com/sangkips/tillpoint/pkg/pagination"
)

// ProductRepository is the catalog store. Lookups return (nil, nil) when
// nothing matches.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	Update(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uint) (*entity.Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error)
	// GetByIDs retrieves multiple products in a single query
	GetByIDs(ctx context.Context, ids []uint) ([]entity.Product, error)
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
	GetLowStock(ctx context.Context) ([]entity.Product, error)
	// InventoryValue sums stock at cost and at selling price.
	InventoryValue(ctx context.Context) (*InventoryValue, error)
	// DecrementStock subtracts qty only if the product still has that much.
	// It returns an insufficient stock error when the guard fails.
	DecrementStock(ctx context.Context, id uint, qty float64) error
	// IncrementStock adds qty back, e.g. when a sale is reversed.
	IncrementStock(ctx context.Context, id uint, qty float64) error
}

// InventoryValue is the stock on hand priced two ways.
type InventoryValue struct {
	Cost   float64 `json:"cost"`
	Retail float64 `json:"retail"`
}

// ProductFilterParams contains filtering parameters for product queries
type ProductFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Category   string
	LowStock   bool
	SortBy     string
	SortOrder  string
}

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	List(ctx context.Context) ([]entity.Category, error)
}

// UnitRepository defines the interface for unit data operations
type UnitRepository interface {
	Create(ctx context.Context, unit *entity.Unit) error
	List(ctx context.Context) ([]entity.Unit, error)
}

// SupplierRepository defines the interface for supplier data operations
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	List(ctx context.Context) ([]entity.Supplier, error)
}
