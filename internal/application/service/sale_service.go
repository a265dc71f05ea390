package service

import (
	"context"

	"github.com/sangkips/tillpoint/internal/domain/entity"
	"github.com/sangkips/tillpoint/internal/domain/repository"
	"github.com/sangkips/tillpoint/pkg/apperror"
	"github.com/sangkips/tillpoint/pkg/logger"
	"github.com/sangkips/tillpoint/pkg/pagination"
)

// SaleService serves sales history
type SaleService struct {
	saleRepo repository.SaleRepository
}

// NewSaleService creates a new sale service
func NewSaleService(saleRepo repository.SaleRepository) *SaleService {
	return &SaleService{saleRepo: saleRepo}
}

// ListSales lists sales newest first
func (s *SaleService) ListSales(ctx context.Context, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, apperror.Persistence(err)
	}

	p := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sales, p), nil
}

// GetSale retrieves a sale by ID
func (s *SaleService) GetSale(ctx context.Context, id uint) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Persistence(err)
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// DeleteSales removes the sales a filter selects. Stock is not put back; use
// Restore to reverse trading. The admin PIN is checked by the caller.
func (s *SaleService) DeleteSales(ctx context.Context, params *repository.SaleFilterParams) (int64, error) {
	if params.StartDate != nil && params.EndDate != nil && params.EndDate.Before(*params.StartDate) {
		return 0, apperror.Validation("end", "End must not be before start")
	}
	deleted, err := s.saleRepo.DeleteMatching(ctx, params)
	if err != nil {
		return 0, apperror.Persistence(err)
	}
	logger.Info().
		Int64("sales_deleted", deleted).
		Str("cashier", params.Cashier).
		Msg("Sales deleted")
	return deleted, nil
}
