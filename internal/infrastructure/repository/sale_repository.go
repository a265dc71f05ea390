package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sangkips/tillpoint/internal/domain/entity"
	domainRepo "github.com/sangkips/tillpoint/internal/domain/repository"
	"github.com/sangkips/tillpoint/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Sale and expense times are written and compared in UTC. sqlite keeps them
// as text, so mixed offsets would not order correctly.
type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) Create(ctx context.Context, sale *entity.Sale) error {
	sale.Timestamp = sale.Timestamp.UTC()
	return r.db.WithContext(ctx).Create(sale).Error
}

func (r *saleRepository) GetByID(ctx context.Context, id uint) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

// GetForUpdate adds FOR UPDATE on postgres. The sqlite dialect drops the
// locking clause; there the single writer connection serializes instead.
func (r *saleRepository) GetForUpdate(ctx context.Context, id uint) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, int64, error) {
	var sales []entity.Sale
	var total int64

	query := filterSales(r.db.WithContext(ctx).Model(&entity.Sale{}), params)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("timestamp DESC, id DESC").
		Find(&sales).Error

	return sales, total, err
}

func filterSales(query *gorm.DB, params *domainRepo.SaleFilterParams) *gorm.DB {
	if params.StartDate != nil {
		query = query.Where("timestamp >= ?", params.StartDate.UTC())
	}
	if params.EndDate != nil {
		query = query.Where("timestamp <= ?", params.EndDate.UTC())
	}
	if params.Cashier != "" {
		query = query.Where("cashier = ?", params.Cashier)
	}
	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}
	return query
}

func (r *saleRepository) ListSince(ctx context.Context, since time.Time) ([]entity.Sale, error) {
	var sales []entity.Sale
	err := r.db.WithContext(ctx).
		Where("timestamp >= ?", since.UTC()).
		Order("timestamp ASC, id ASC").
		Find(&sales).Error
	return sales, err
}

// RecordPrint stores history as the JSON text the column serializer reads back.
func (r *saleRepository) RecordPrint(ctx context.Context, id uint, loadedCount int, history []time.Time) (bool, error) {
	encoded, err := json.Marshal(history)
	if err != nil {
		return false, err
	}
	result := r.db.WithContext(ctx).Model(&entity.Sale{ID: id}).
		Where("print_count = ?", loadedCount).
		Updates(map[string]interface{}{
			"print_count":   gorm.Expr("print_count + 1"),
			"print_history": string(encoded),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *saleRepository) DeleteByIDs(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&entity.Sale{})
	return result.RowsAffected, result.Error
}

// DeleteMatching removes every sale the filter selects. Pagination is ignored.
func (r *saleRepository) DeleteMatching(ctx context.Context, params *domainRepo.SaleFilterParams) (int64, error) {
	result := filterSales(r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}), params).
		Delete(&entity.Sale{})
	return result.RowsAffected, result.Error
}

func (r *saleRepository) Summary(ctx context.Context, since time.Time) (*domainRepo.SalesSummary, error) {
	var summary domainRepo.SalesSummary
	err := r.db.WithContext(ctx).Model(&entity.Sale{}).
		Select("COUNT(*) AS count, COALESCE(SUM(total), 0) AS revenue, COALESCE(SUM(tax), 0) AS tax, COALESCE(SUM(discount), 0) AS discount").
		Where("timestamp >= ?", since.UTC()).
		Scan(&summary).Error
	return &summary, err
}
