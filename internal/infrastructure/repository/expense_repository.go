package repository

import (
	"context"
	"time"

	"github.com/sangkips/tillpoint/internal/domain/entity"
	domainRepo "github.com/sangkips/tillpoint/internal/domain/repository"
	"github.com/sangkips/tillpoint/pkg/pagination"
	"gorm.io/gorm"
)

type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) domainRepo.ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, expense *entity.Expense) error {
	expense.Date = expense.Date.UTC()
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *expenseRepository) List(ctx context.Context, params *domainRepo.ExpenseFilterParams) ([]entity.Expense, int64, error) {
	var expenses []entity.Expense
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Expense{})
	if params.StartDate != nil {
		query = query.Where("date >= ?", params.StartDate.UTC())
	}
	if params.EndDate != nil {
		query = query.Where("date <= ?", params.EndDate.UTC())
	}
	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("date DESC, id DESC").
		Find(&expenses).Error

	return expenses, total, err
}

func (r *expenseRepository) Total(ctx context.Context, start, end time.Time) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&entity.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("date >= ? AND date <= ?", start.UTC(), end.UTC()).
		Scan(&total).Error
	return total, err
}

func (r *expenseRepository) TotalsByCategory(ctx context.Context, start, end time.Time) ([]domainRepo.CategoryTotal, error) {
	var totals []domainRepo.CategoryTotal
	err := r.db.WithContext(ctx).Model(&entity.Expense{}).
		Select("category, COALESCE(SUM(amount), 0) AS amount").
		Where("date >= ? AND date <= ?", start.UTC(), end.UTC()).
		Group("category").
		Order("amount DESC").
		Scan(&totals).Error
	return totals, err
}

func (r *expenseRepository) DeleteSince(ctx context.Context, since time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("date >= ?", since.UTC()).Delete(&entity.Expense{})
	return result.RowsAffected, result.Error
}
