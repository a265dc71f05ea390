package repository

import (
	"context"

	"github.com/sangkips/tillpoint/internal/domain/entity"
	"github.com/sangkips/tillpoint/internal/domain/enum"
)

// CashierRepository defines the interface for cashier data operations
type CashierRepository interface {
	Create(ctx context.Context, cashier *entity.Cashier) error
	GetByID(ctx context.Context, id uint) (*entity.Cashier, error)
	List(ctx context.Context) ([]entity.Cashier, error)
	ListByRole(ctx context.Context, role enum.CashierRole) ([]entity.Cashier, error)
	UpdatePIN(ctx context.Context, id uint, pinHash string) error
	Delete(ctx context.Context, id uint) error
}
