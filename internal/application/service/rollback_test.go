package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/tillpoint/internal/domain/cart"
	"github.com/sangkips/tillpoint/internal/domain/entity"
	"github.com/sangkips/tillpoint/internal/domain/enum"
	domainRepo "github.com/sangkips/tillpoint/internal/domain/repository"
	"github.com/sangkips/tillpoint/internal/infrastructure/repository"
	"github.com/sangkips/tillpoint/pkg/apperror"
)

var errDiskFull = errors.New("disk I/O error: disk full")

// failingTransactor runs the real transaction but hands fn a store whose
// selected writes fail.
type failingTransactor struct {
	inner          domainRepo.Transactor
	saleCreate     bool
	addPurchase    bool
	expenseCleanup bool
}

func (f *failingTransactor) WithinTransaction(ctx context.Context, fn func(store domainRepo.Store) error) error {
	return f.inner.WithinTransaction(ctx, func(store domainRepo.Store) error {
		return fn(&failingStore{Store: store, faults: f})
	})
}

type failingStore struct {
	domainRepo.Store
	faults *failingTransactor
}

func (s *failingStore) Sales() domainRepo.SaleRepository {
	return &failingSales{SaleRepository: s.Store.Sales(), fail: s.faults.saleCreate}
}

func (s *failingStore) Customers() domainRepo.CustomerRepository {
	return &failingCustomers{CustomerRepository: s.Store.Customers(), fail: s.faults.addPurchase}
}

func (s *failingStore) Expenses() domainRepo.ExpenseRepository {
	return &failingExpenses{ExpenseRepository: s.Store.Expenses(), fail: s.faults.expenseCleanup}
}

type failingSales struct {
	domainRepo.SaleRepository
	fail bool
}

func (r *failingSales) Create(ctx context.Context, sale *entity.Sale) error {
	if r.fail {
		return errDiskFull
	}
	return r.SaleRepository.Create(ctx, sale)
}

type failingCustomers struct {
	domainRepo.CustomerRepository
	fail bool
}

func (r *failingCustomers) AddPurchase(ctx context.Context, id uint, amount float64, points int) error {
	if r.fail {
		return errDiskFull
	}
	return r.CustomerRepository.AddPurchase(ctx, id, amount, points)
}

type failingExpenses struct {
	domainRepo.ExpenseRepository
	fail bool
}

func (r *failingExpenses) DeleteSince(ctx context.Context, since time.Time) (int64, error) {
	if r.fail {
		return 0, errDiskFull
	}
	return r.ExpenseRepository.DeleteSince(ctx, since)
}

func TestCommitSaleRejectsUnknownPaymentMethod(t *testing.T) {
	env := newTestEnv(t)
	p := env.product(t, "A1", 10, 5, "pcs")

	c := cart.New(env.session, time.Now)
	require.NoError(t, c.AddItem(p, qty(1)))
	_, err := env.checkout.CommitSale(context.Background(), c, &CommitSaleInput{PaymentMethod: enum.PaymentMethod(9)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrValidation))

	assert.Equal(t, 5.0, env.stockOf(t, p.ID))
	assert.Equal(t, int64(0), env.countSales(t))
	assert.False(t, c.IsEmpty())
}

func TestCommitSaleInsertFailureLeavesStock(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.product(t, "A1", 10, 5, "pcs")
	checkout := NewCheckoutService(&failingTransactor{inner: repository.NewTransactor(env.db), saleCreate: true}, env.settings, nil)

	c := cart.New(env.session, time.Now)
	require.NoError(t, c.AddItem(p, qty(2)))
	_, err := checkout.CommitSale(ctx, c, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrPersistence))
	assert.True(t, errors.Is(err, errDiskFull))

	assert.Equal(t, 5.0, env.stockOf(t, p.ID))
	assert.Equal(t, int64(0), env.countSales(t))
	assert.Len(t, c.Items(), 1)
}

func TestCommitSaleLateFailureRollsBackStock(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.product(t, "A1", 10, 5, "pcs")
	b := env.product(t, "B1", 4, 3, "pcs")
	customer := &entity.Customer{Name: "Bob", Phone: "0771234567"}
	require.NoError(t, repository.NewCustomerRepository(env.db).Create(ctx, customer))
	checkout := NewCheckoutService(&failingTransactor{inner: repository.NewTransactor(env.db), addPurchase: true}, env.settings, nil)

	c := cart.New(env.session, time.Now)
	require.NoError(t, c.AddItem(a, qty(2)))
	require.NoError(t, c.AddItem(b, qty(3)))
	_, err := checkout.CommitSale(ctx, c, &CommitSaleInput{CustomerID: &customer.ID})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrPersistence))

	// both decrements had run before the failure
	assert.Equal(t, 5.0, env.stockOf(t, a.ID))
	assert.Equal(t, 3.0, env.stockOf(t, b.ID))
	assert.Equal(t, int64(0), env.countSales(t))
	assert.Len(t, c.Items(), 2)

	got, err := repository.NewCustomerRepository(env.db).GetByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.LoyaltyPoints)
}

func TestRestoreFailureLeavesEverythingInPlace(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	now := time.Now()
	p := env.product(t, "P1", 2, 5, "pcs")

	saleRepo := repository.NewSaleRepository(env.db)
	item := entity.SaleItem{ProductID: p.ID, Barcode: p.Barcode, Name: p.Name, Price: 2, Quantity: 3, Total: 6}
	recent := &entity.Sale{Items: []entity.SaleItem{item}, Subtotal: 6, Total: 6, Cashier: "Alice", Timestamp: now.Add(-2 * time.Hour), PrintHistory: []time.Time{}}
	require.NoError(t, saleRepo.Create(ctx, recent))
	require.NoError(t, repository.NewExpenseRepository(env.db).Create(ctx, &entity.Expense{Category: "Rent", Amount: 100, Date: now.Add(-time.Hour), CreatedBy: "Alice"}))

	restore := NewRestoreService(&failingTransactor{inner: repository.NewTransactor(env.db), expenseCleanup: true}, nil)
	restore.now = func() time.Time { return now }

	result, err := restore.Restore(ctx, enum.RestoreOneDay)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, apperror.ErrPersistence))

	// restock and sale delete had run before the expense cleanup failed
	assert.Equal(t, 5.0, env.stockOf(t, p.ID))
	kept, err := saleRepo.GetByID(ctx, recent.ID)
	require.NoError(t, err)
	require.NotNil(t, kept)
	assert.Len(t, kept.Items, 1)

	var expenses int64
	require.NoError(t, env.db.Model(&entity.Expense{}).Count(&expenses).Error)
	assert.Equal(t, int64(1), expenses)
}
