package service

import (
	"context"
	"time"

	"github.com/sangkips/tillpoint/internal/domain/entity"
	"github.com/sangkips/tillpoint/internal/domain/repository"
	"github.com/sangkips/tillpoint/pkg/apperror"
	"github.com/sangkips/tillpoint/pkg/pagination"
)

const dashboardDays = 7

// DashboardService provides the till's landing-page figures
type DashboardService struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	now         func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(saleRepo repository.SaleRepository, productRepo repository.ProductRepository) *DashboardService {
	return &DashboardService{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		now:         time.Now,
	}
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	TodayRevenue   float64           `json:"today_revenue"`
	TodaySales     int64             `json:"today_sales"`
	TodayTax       float64           `json:"today_tax"`
	LowStockCount  int               `json:"low_stock_count"`
	LowStock       []entity.Product  `json:"low_stock"`
	RecentSales    []entity.Sale     `json:"recent_sales"`
	DailySalesData []DailySalesPoint `json:"daily_sales_data"`
}

// DailySalesPoint represents a daily sales data point
type DailySalesPoint struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Profit  float64 `json:"profit"`
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// GetDashboardStats returns today's totals, stock alerts and the last week of sales
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	now := s.now()
	today := startOfDay(now)
	stats := &DashboardStats{}

	summary, err := s.saleRepo.Summary(ctx, today)
	if err != nil {
		return nil, apperror.Persistence(err)
	}
	stats.TodayRevenue = summary.Revenue
	stats.TodaySales = summary.Count
	stats.TodayTax = summary.Tax

	lowStock, err := s.productRepo.GetLowStock(ctx)
	if err != nil {
		return nil, apperror.Persistence(err)
	}
	stats.LowStockCount = len(lowStock)
	stats.LowStock = lowStock
	if len(stats.LowStock) > 5 {
		stats.LowStock = stats.LowStock[:5]
	}

	recent, _, err := s.saleRepo.List(ctx, &repository.SaleFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 5},
	})
	if err != nil {
		return nil, apperror.Persistence(err)
	}
	stats.RecentSales = recent

	from := today.AddDate(0, 0, -(dashboardDays - 1))
	sales, err := s.saleRepo.ListSince(ctx, from)
	if err != nil {
		return nil, apperror.Persistence(err)
	}
	costs, err := productCosts(ctx, s.productRepo, sales)
	if err != nil {
		return nil, err
	}

	stats.DailySalesData = make([]DailySalesPoint, dashboardDays)
	index := make(map[string]int, dashboardDays)
	for i := range stats.DailySalesData {
		key := from.AddDate(0, 0, i).Format("2006-01-02")
		stats.DailySalesData[i].Date = key
		index[key] = i
	}
	for i := range sales {
		key := sales[i].Timestamp.In(now.Location()).Format("2006-01-02")
		if j, ok := index[key]; ok {
			point := &stats.DailySalesData[j]
			point.Revenue += sales[i].Total
			point.Profit += sales[i].Subtotal - sales[i].Discount - sales[i].CostOfGoods(costs)
		}
	}

	return stats, nil
}

// productCosts loads the current cost price of every product the sales reference.
func productCosts(ctx context.Context, productRepo repository.ProductRepository, sales []entity.Sale) (map[uint]float64, error) {
	seen := make(map[uint]struct{})
	var ids []uint
	for _, sale := range sales {
		for _, item := range sale.Items {
			if _, ok := seen[item.ProductID]; !ok {
				seen[item.ProductID] = struct{}{}
				ids = append(ids, item.ProductID)
			}
		}
	}

	products, err := productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, apperror.Persistence(err)
	}
	costs := make(map[uint]float64, len(products))
	for _, p := range products {
		costs[p.ID] = p.CostPrice
	}
	return costs, nil
}
