package service

import (
	"context"
	"time"

	"github.com/sangkips/tillpoint/internal/domain/repository"
	"github.com/sangkips/tillpoint/pkg/apperror"
)

// AccountingService produces profit and loss figures for a date range.
type AccountingService struct {
	saleRepo    repository.SaleRepository
	expenseRepo repository.ExpenseRepository
	productRepo repository.ProductRepository
}

// NewAccountingService creates a new accounting service
func NewAccountingService(
	saleRepo repository.SaleRepository,
	expenseRepo repository.ExpenseRepository,
	productRepo repository.ProductRepository,
) *AccountingService {
	return &AccountingService{
		saleRepo:    saleRepo,
		expenseRepo: expenseRepo,
		productRepo: productRepo,
	}
}

// AccountingSummary is a profit and loss statement. Cost of goods uses each
// product's current cost price.
type AccountingSummary struct {
	Start              time.Time                  `json:"start"`
	End                time.Time                  `json:"end"`
	Revenue            float64                    `json:"revenue"`
	Tax                float64                    `json:"tax"`
	CostOfGoods        float64                    `json:"cost_of_goods"`
	GrossProfit        float64                    `json:"gross_profit"`
	Expenses           float64                    `json:"expenses"`
	NetProfit          float64                    `json:"net_profit"`
	SalesCount         int                        `json:"sales_count"`
	ExpensesByCategory []repository.CategoryTotal `json:"expenses_by_category"`
	Inventory          *repository.InventoryValue `json:"inventory"`
}

// Summary reports sales and expenses with start <= time <= end.
func (s *AccountingService) Summary(ctx context.Context, start, end time.Time) (*AccountingSummary, error) {
	if end.Before(start) {
		return nil, apperror.Validation("end", "End must not be before start")
	}

	sales, err := s.saleRepo.ListSince(ctx, start)
	if err != nil {
		return nil, apperror.Persistence(err)
	}
	costs, err := productCosts(ctx, s.productRepo, sales)
	if err != nil {
		return nil, err
	}

	summary := &AccountingSummary{Start: start, End: end}
	for i := range sales {
		if sales[i].Timestamp.After(end) {
			continue
		}
		summary.SalesCount++
		summary.Revenue += sales[i].Total
		summary.Tax += sales[i].Tax
		summary.CostOfGoods += sales[i].CostOfGoods(costs)
	}
	summary.GrossProfit = summary.Revenue - summary.CostOfGoods

	if summary.Expenses, err = s.expenseRepo.Total(ctx, start, end); err != nil {
		return nil, apperror.Persistence(err)
	}
	summary.NetProfit = summary.GrossProfit - summary.Expenses

	if summary.ExpensesByCategory, err = s.expenseRepo.TotalsByCategory(ctx, start, end); err != nil {
		return nil, apperror.Persistence(err)
	}
	if summary.Inventory, err = s.productRepo.InventoryValue(ctx); err != nil {
		return nil, apperror.Persistence(err)
	}
	return summary, nil
}
