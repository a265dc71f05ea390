package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sangkips/tillpoint/internal/config"
	"github.com/sangkips/tillpoint/internal/domain/entity"
	"github.com/sangkips/tillpoint/internal/domain/enum"
	domainRepo "github.com/sangkips/tillpoint/internal/domain/repository"
	"github.com/sangkips/tillpoint/internal/infrastructure/database"
	"github.com/sangkips/tillpoint/pkg/apperror"
	"github.com/sangkips/tillpoint/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(&config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"}, true)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func createProduct(t *testing.T, db *gorm.DB, barcode string, stock float64) *entity.Product {
	t.Helper()
	p := &entity.Product{Barcode: barcode, Name: "Item " + barcode, SellingPrice: 2, Stock: stock, MinStock: 1, Unit: "pcs"}
	require.NoError(t, NewProductRepository(db).Create(context.Background(), p))
	return p
}

func TestProductLookups(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewProductRepository(db)
	p := createProduct(t, db, "1001", 5)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "1001", got.Barcode)

	got, err = repo.GetByBarcode(ctx, "1001")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	missing, err := repo.GetByBarcode(ctx, "nope")
	assert.NoError(t, err)
	assert.Nil(t, missing)

	missing, err = repo.GetByID(ctx, 999)
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProductListFilters(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewProductRepository(db)
	createProduct(t, db, "A1", 10)
	createProduct(t, db, "B2", 0)

	items, total, err := repo.List(ctx, &domainRepo.ProductFilterParams{Search: "item a"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "A1", items[0].Barcode)

	low, err := repo.GetLowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "B2", low[0].Barcode)
}

func TestDecrementStockGuard(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewProductRepository(db)
	p := createProduct(t, db, "2001", 3)

	require.NoError(t, repo.DecrementStock(ctx, p.ID, 2.5))

	err := repo.DecrementStock(ctx, p.ID, 1)
	assert.True(t, errors.Is(err, apperror.ErrInsufficientStock))

	got, _ := repo.GetByID(ctx, p.ID)
	assert.InDelta(t, 0.5, got.Stock, 1e-9)

	require.NoError(t, repo.IncrementStock(ctx, p.ID, 1.5))
	got, _ = repo.GetByID(ctx, p.ID)
	assert.InDelta(t, 2.0, got.Stock, 1e-9)

	err = repo.IncrementStock(ctx, 999, 1)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestSaleRecordPrintGuard(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewSaleRepository(db)

	sale := &entity.Sale{
		Items:        []entity.SaleItem{{ProductID: 1, Name: "Milk", Price: 2.5, Quantity: 1, Total: 2.5}},
		Subtotal:     2.5,
		Total:        2.5,
		AmountPaid:   2.5,
		Cashier:      "Admin",
		Timestamp:    time.Now().UTC(),
		PrintHistory: []time.Time{},
	}
	require.NoError(t, repo.Create(ctx, sale))

	first := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	ok, err := repo.RecordPrint(ctx, sale.ID, 0, []time.Time{first})
	require.NoError(t, err)
	assert.True(t, ok)

	// stale count loses
	ok, err = repo.RecordPrint(ctx, sale.ID, 0, []time.Time{first, first})
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.GetByID(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.PrintCount)
	require.Len(t, got.PrintHistory, 1)
	assert.True(t, first.Equal(got.PrintHistory[0]))
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Milk", got.Items[0].Name)
}

func TestSaleListSinceAndDelete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewSaleRepository(db)
	now := time.Now().UTC()

	old := &entity.Sale{Cashier: "Admin", Total: 5, Timestamp: now.Add(-48 * time.Hour)}
	recent := &entity.Sale{Cashier: "Admin", Total: 7, Timestamp: now.Add(-2 * time.Hour)}
	require.NoError(t, repo.Create(ctx, old))
	require.NoError(t, repo.Create(ctx, recent))

	since, err := repo.ListSince(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	require.Len(t, since, 1)
	assert.Equal(t, recent.ID, since[0].ID)

	summary, err := repo.Summary(ctx, now.Add(-72*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.Count)
	assert.InDelta(t, 12.0, summary.Revenue, 1e-9)

	n, err := repo.DeleteByIDs(ctx, []uint{recent.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	sales, total, err := repo.List(ctx, &domainRepo.SaleFilterParams{Pagination: pagination.DefaultPagination()})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, old.ID, sales[0].ID)
}

func TestSaleDeleteMatching(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewSaleRepository(db)
	now := time.Now().UTC()

	require.NoError(t, repo.Create(ctx, &entity.Sale{Cashier: "Alice", Total: 1, Timestamp: now.Add(-48 * time.Hour)}))
	require.NoError(t, repo.Create(ctx, &entity.Sale{Cashier: "Alice", Total: 2, Timestamp: now.Add(-time.Hour)}))
	bob := &entity.Sale{Cashier: "Bob", Total: 3, Timestamp: now.Add(-time.Hour)}
	require.NoError(t, repo.Create(ctx, bob))

	start := now.Add(-24 * time.Hour)
	n, err := repo.DeleteMatching(ctx, &domainRepo.SaleFilterParams{StartDate: &start, Cashier: "Alice"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.DeleteMatching(ctx, &domainRepo.SaleFilterParams{Cashier: "Alice"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	sales, total, err := repo.List(ctx, &domainRepo.SaleFilterParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, bob.ID, sales[0].ID)
}

func TestExpenseDeleteSince(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewExpenseRepository(db)
	now := time.Now().UTC()

	require.NoError(t, repo.Create(ctx, &entity.Expense{Category: "Rent", Amount: 100, Date: now.AddDate(0, 0, -10), CreatedBy: "Admin"}))
	require.NoError(t, repo.Create(ctx, &entity.Expense{Category: "Utilities", Amount: 20, Date: now.Add(-time.Hour), CreatedBy: "Admin"}))

	total, err := repo.Total(ctx, now.AddDate(0, 0, -30), now)
	require.NoError(t, err)
	assert.InDelta(t, 120.0, total, 1e-9)

	n, err := repo.DeleteSince(ctx, now.AddDate(0, 0, -1))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	items, count, err := repo.List(ctx, &domainRepo.ExpenseFilterParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, "Rent", items[0].Category)
}

func TestCustomerAddPurchase(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewCustomerRepository(db)

	c := &entity.Customer{Name: "Nimal", Phone: "0771234567"}
	require.NoError(t, repo.Create(ctx, c))
	require.NoError(t, repo.AddPurchase(ctx, c.ID, 14.96, 14))

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 14, got.LoyaltyPoints)
	assert.InDelta(t, 14.96, got.TotalPurchases, 1e-9)

	list, total, err := repo.List(ctx, pagination.DefaultPagination(), "nim")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, list, 1)

	assert.True(t, errors.Is(repo.AddPurchase(ctx, 999, 1, 1), apperror.ErrNotFound))
}

func TestSettingsGetSave(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewSettingsRepository(db)

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	s := entity.DefaultSettings()
	require.NoError(t, repo.Save(ctx, s))
	s.TaxRate = 8
	require.NoError(t, repo.Save(ctx, s))

	got, err = repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8.0, got.TaxRate)
}

func TestCashierListByRole(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewCashierRepository(db)

	require.NoError(t, repo.Create(ctx, &entity.Cashier{Name: "Admin", PINHash: "x", Role: enum.RoleAdmin}))
	require.NoError(t, repo.Create(ctx, &entity.Cashier{Name: "Kamal", PINHash: "y", Role: enum.RoleCashier}))

	admins, err := repo.ListByRole(ctx, enum.RoleAdmin)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "Admin", admins[0].Name)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestIdempotencyKeyScopedToCashier(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewIdempotencyRepository(db)

	require.NoError(t, repo.Create(ctx, &entity.IdempotencyKey{
		Key: "abc", CashierID: 1, Endpoint: "/api/v1/checkout", ResponseCode: 201,
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	got, err := repo.GetByKey(ctx, "abc", 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 201, got.ResponseCode)

	other, err := repo.GetByKey(ctx, "abc", 2)
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestTransactorRollsBack(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	p := createProduct(t, db, "3001", 1)
	tx := NewTransactor(db)

	err := tx.WithinTransaction(ctx, func(store domainRepo.Store) error {
		if err := store.Sales().Create(ctx, &entity.Sale{Cashier: "Admin", Timestamp: time.Now().UTC()}); err != nil {
			return err
		}
		if err := store.Products().DecrementStock(ctx, p.ID, 1); err != nil {
			return err
		}
		return store.Products().DecrementStock(ctx, p.ID, 1)
	})
	assert.True(t, errors.Is(err, apperror.ErrInsufficientStock))

	var sales int64
	db.Model(&entity.Sale{}).Count(&sales)
	assert.Equal(t, int64(0), sales)

	got, _ := NewProductRepository(db).GetByID(ctx, p.ID)
	assert.Equal(t, 1.0, got.Stock)
}

func TestBackupRoundTrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	require.NoError(t, database.SeedDefaultData(db, database.SeedOptions{AdminPIN: "4321", SampleProducts: true}))

	backups := NewBackupRepository(db)
	snap, err := backups.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Cashiers, 1)
	assert.NotEmpty(t, snap.Cashiers[0].PINHash)
	assert.Len(t, snap.Products, 5)

	require.NoError(t, NewExpenseRepository(db).Create(ctx, &entity.Expense{Category: "Misc", Amount: 1, Date: time.Now().UTC(), CreatedBy: "Admin"}))

	require.NoError(t, backups.Replace(ctx, snap))

	var expenses, products int64
	db.Model(&entity.Expense{}).Count(&expenses)
	db.Model(&entity.Product{}).Count(&products)
	assert.Equal(t, int64(0), expenses)
	assert.Equal(t, int64(5), products)

	cashiers, err := NewCashierRepository(db).List(ctx)
	require.NoError(t, err)
	require.Len(t, cashiers, 1)
	assert.Equal(t, snap.Cashiers[0].PINHash, cashiers[0].PINHash)
}
