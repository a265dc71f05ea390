package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/sangkips/tillpoint/internal/domain/enum"
	"github.com/sangkips/tillpoint/internal/domain/repository"
	"github.com/sangkips/tillpoint/pkg/apperror"
	"github.com/sangkips/tillpoint/pkg/logger"
	"github.com/sangkips/tillpoint/pkg/metrics"
)

// RestoreService rolls the store back to a cutoff: recent sales are put back
// into stock and deleted along with recent expenses. Callers must check the
// admin PIN first; this service trusts them.
type RestoreService struct {
	transactor repository.Transactor
	metrics    *metrics.Recorder
	now        func() time.Time
}

// NewRestoreService creates a new restore service
func NewRestoreService(transactor repository.Transactor, recorder *metrics.Recorder) *RestoreService {
	return &RestoreService{
		transactor: transactor,
		metrics:    recorder,
		now:        time.Now,
	}
}

// RestoreResult summarizes what a restore removed.
type RestoreResult struct {
	Period            enum.RestorePeriod `json:"period"`
	Cutoff            time.Time          `json:"cutoff"`
	SalesDeleted      int64              `json:"sales_deleted"`
	ExpensesDeleted   int64              `json:"expenses_deleted"`
	ProductsRestocked int                `json:"products_restocked"`
}

// Restore runs in a single transaction; any failure leaves every table as it was.
func (s *RestoreService) Restore(ctx context.Context, period enum.RestorePeriod) (*RestoreResult, error) {
	if _, err := enum.ParseRestorePeriod(string(period)); err != nil {
		return nil, apperror.Validation("period", err.Error())
	}

	cutoff := period.Cutoff(s.now()).UTC()
	result := &RestoreResult{Period: period, Cutoff: cutoff}

	err := s.transactor.WithinTransaction(ctx, func(store repository.Store) error {
		sales, err := store.Sales().ListSince(ctx, cutoff)
		if err != nil {
			return err
		}

		restock := make(map[uint]float64)
		ids := make([]uint, 0, len(sales))
		for _, sale := range sales {
			ids = append(ids, sale.ID)
			for _, item := range sale.Items {
				restock[item.ProductID] += item.Quantity
			}
		}

		productIDs := make([]uint, 0, len(restock))
		for id := range restock {
			productIDs = append(productIDs, id)
		}
		sort.Slice(productIDs, func(i, j int) bool { return productIDs[i] < productIDs[j] })

		for _, id := range productIDs {
			err := store.Products().IncrementStock(ctx, id, restock[id])
			if errors.Is(err, apperror.ErrNotFound) {
				// product deleted since the sale; nothing to put back
				logger.Warn().Uint("product_id", id).Msg("Restore skipped missing product")
				continue
			}
			if err != nil {
				return err
			}
			result.ProductsRestocked++
		}

		if result.SalesDeleted, err = store.Sales().DeleteByIDs(ctx, ids); err != nil {
			return err
		}
		result.ExpensesDeleted, err = store.Expenses().DeleteSince(ctx, cutoff)
		return err
	})
	if err != nil {
		logger.Error().Err(err).Str("period", string(period)).Msg("Restore rolled back")
		return nil, apperror.Persistence(err)
	}

	s.metrics.Restored(string(period))
	logger.Info().
		Str("period", string(period)).
		Time("cutoff", cutoff).
		Int64("sales_deleted", result.SalesDeleted).
		Int64("expenses_deleted", result.ExpensesDeleted).
		Int("products_restocked", result.ProductsRestocked).
		Msg("Restore completed")
	return result, nil
}
