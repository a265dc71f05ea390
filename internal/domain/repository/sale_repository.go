package repository

import (
	"context"
	"time"

	"github.com/sangkips/tillpoint/internal/domain/entity"
	"github.com/sangkips/tillpoint/pkg/pagination"
)

// SaleRepository defines the interface for sale data operations
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id uint) (*entity.Sale, error)
	// GetForUpdate loads a sale and locks its row where the driver supports it.
	GetForUpdate(ctx context.Context, id uint) (*entity.Sale, error)
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
	// ListSince returns every sale with timestamp >= since, oldest first.
	ListSince(ctx context.Context, since time.Time) ([]entity.Sale, error)
	// RecordPrint bumps print_count by one and stores history, guarded on the
	// count the caller loaded. It returns false when another print got there first.
	RecordPrint(ctx context.Context, id uint, loadedCount int, history []time.Time) (bool, error)
	DeleteByIDs(ctx context.Context, ids []uint) (int64, error)
	// DeleteMatching removes every sale the filter selects, ignoring pagination.
	DeleteMatching(ctx context.Context, params *SaleFilterParams) (int64, error)
	Summary(ctx context.Context, since time.Time) (*SalesSummary, error)
}

// SaleFilterParams contains filtering parameters for sale history queries
type SaleFilterParams struct {
	Pagination *pagination.PaginationParams
	StartDate  *time.Time
	EndDate    *time.Time
	Cashier    string
	CustomerID *uint
}

// SalesSummary aggregates sales over a window.
type SalesSummary struct {
	Count    int64   `json:"count"`
	Revenue  float64 `json:"revenue"`
	Tax      float64 `json:"tax"`
	Discount float64 `json:"discount"`
}
