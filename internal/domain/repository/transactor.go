package repository

import (
	"context"

	"github.com/sangkips/tillpoint/internal/domain/entity"
)

// Store exposes repositories bound to one unit of work.
type Store interface {
	Products() ProductRepository
	Sales() SaleRepository
	Expenses() ExpenseRepository
	Customers() CustomerRepository
}

// Transactor runs fn inside a single storage transaction. Returning an error
// from fn rolls back every write made through the store.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(store Store) error) error
}

// BackupRepository dumps and replaces the whole store.
type BackupRepository interface {
	Snapshot(ctx context.Context) (*entity.Backup, error)
	// Replace clears every table and loads the backup in one transaction.
	Replace(ctx context.Context, backup *entity.Backup) error
}
