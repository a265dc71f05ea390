package repository

import (
	"context"

	domainRepo "github.com/sangkips/tillpoint/internal/domain/repository"
	"gorm.io/gorm"
)

type store struct {
	db *gorm.DB
}

func (s *store) Products() domainRepo.ProductRepository   { return NewProductRepository(s.db) }
func (s *store) Sales() domainRepo.SaleRepository         { return NewSaleRepository(s.db) }
func (s *store) Expenses() domainRepo.ExpenseRepository   { return NewExpenseRepository(s.db) }
func (s *store) Customers() domainRepo.CustomerRepository { return NewCustomerRepository(s.db) }

type transactor struct {
	db *gorm.DB
}

// NewTransactor creates a transactor whose stores share one gorm transaction.
func NewTransactor(db *gorm.DB) domainRepo.Transactor {
	return &transactor{db: db}
}

// WithinTransaction commits when fn returns nil and rolls back otherwise.
// fn must only touch storage through the store it is given; on sqlite the
// transaction holds the only connection.
func (t *transactor) WithinTransaction(ctx context.Context, fn func(store domainRepo.Store) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&store{db: tx})
	})
}
