package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/sangkips/tillpoint/internal/domain/entity"
	domainRepo "github.com/sangkips/tillpoint/internal/domain/repository"
	"gorm.io/gorm"
)

const backupBatchSize = 200

type backupRepository struct {
	db *gorm.DB
}

// NewBackupRepository creates a repository that dumps and reloads the whole store
func NewBackupRepository(db *gorm.DB) domainRepo.BackupRepository {
	return &backupRepository{db: db}
}

func (r *backupRepository) Snapshot(ctx context.Context) (*entity.Backup, error) {
	db := r.db.WithContext(ctx)
	backup := &entity.Backup{ExportDate: time.Now().UTC()}

	reads := []struct {
		name  string
		dest  interface{}
		order string
	}{
		{"products", &backup.Products, "id ASC"},
		{"sales", &backup.Sales, "id ASC"},
		{"customers", &backup.Customers, "id ASC"},
		{"settings", &backup.Settings, "id ASC"},
		{"categories", &backup.Categories, "id ASC"},
		{"suppliers", &backup.Suppliers, "id ASC"},
		{"units", &backup.Units, "id ASC"},
		{"expenses", &backup.Expenses, "id ASC"},
		{"quick_quantities", &backup.QuickQuantities, "id ASC"},
	}
	for _, read := range reads {
		if err := db.Order(read.order).Find(read.dest).Error; err != nil {
			return nil, fmt.Errorf("read %s: %w", read.name, err)
		}
	}

	var cashiers []entity.Cashier
	if err := db.Order("id ASC").Find(&cashiers).Error; err != nil {
		return nil, fmt.Errorf("read cashiers: %w", err)
	}
	backup.Cashiers = make([]entity.CashierRecord, 0, len(cashiers))
	for _, c := range cashiers {
		backup.Cashiers = append(backup.Cashiers, entity.CashierRecord{Cashier: c, PINHash: c.PINHash})
	}

	return backup, nil
}

// Replace wipes every table and loads backup. Ids are kept so sale and
// customer references stay valid. Idempotency keys are dropped since the
// responses they cache may point at sales that no longer exist.
func (r *backupRepository) Replace(ctx context.Context, backup *entity.Backup) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		wipe := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		for _, model := range []interface{}{
			&entity.IdempotencyKey{},
			&entity.QuickQuantity{},
			&entity.Expense{},
			&entity.Sale{},
			&entity.Customer{},
			&entity.Product{},
			&entity.Unit{},
			&entity.Supplier{},
			&entity.Category{},
			&entity.Cashier{},
			&entity.Settings{},
		} {
			if err := wipe.Delete(model).Error; err != nil {
				return fmt.Errorf("clear %T: %w", model, err)
			}
		}

		cashiers := make([]entity.Cashier, 0, len(backup.Cashiers))
		for _, rec := range backup.Cashiers {
			c := rec.Cashier
			c.PINHash = rec.PINHash
			cashiers = append(cashiers, c)
		}

		if err := insertAll(tx, backup.Settings); err != nil {
			return err
		}
		if err := insertAll(tx, cashiers); err != nil {
			return err
		}
		if err := insertAll(tx, backup.Categories); err != nil {
			return err
		}
		if err := insertAll(tx, backup.Suppliers); err != nil {
			return err
		}
		if err := insertAll(tx, backup.Units); err != nil {
			return err
		}
		if err := insertAll(tx, backup.Products); err != nil {
			return err
		}
		if err := insertAll(tx, backup.Customers); err != nil {
			return err
		}
		if err := insertAll(tx, backup.Sales); err != nil {
			return err
		}
		if err := insertAll(tx, backup.Expenses); err != nil {
			return err
		}
		return insertAll(tx, backup.QuickQuantities)
	})
}

func insertAll[T any](tx *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	if err := tx.CreateInBatches(&rows, backupBatchSize).Error; err != nil {
		var zero T
		return fmt.Errorf("restore %T: %w", zero, err)
	}
	return nil
}
