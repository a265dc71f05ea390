package repository

import (
	"context"
	"time"

	"github.com/sangkips/tillpoint/internal/domain/entity"
	"github.com/sangkips/tillpoint/pkg/pagination"
)

// ExpenseRepository defines the interface for expense data operations
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.Expense) error
	List(ctx context.Context, params *ExpenseFilterParams) ([]entity.Expense, int64, error)
	Total(ctx context.Context, start, end time.Time) (float64, error)
	TotalsByCategory(ctx context.Context, start, end time.Time) ([]CategoryTotal, error)
	// DeleteSince removes every expense dated at or after since.
	DeleteSince(ctx context.Context, since time.Time) (int64, error)
}

// ExpenseFilterParams contains filtering parameters for expense queries
type ExpenseFilterParams struct {
	Pagination *pagination.PaginationParams
	StartDate  *time.Time
	EndDate    *time.Time
	Category   string
}

// CategoryTotal is the expense sum for one category.
type CategoryTotal struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}
