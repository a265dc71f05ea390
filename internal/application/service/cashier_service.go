package service

import (
	"context"
	"strings"

	"github.com/sangkips/tillpoint/internal/domain/entity"
	"github.com/sangkips/tillpoint/internal/domain/enum"
	"github.com/sangkips/tillpoint/internal/domain/repository"
	"github.com/sangkips/tillpoint/pkg/apperror"
	"github.com/sangkips/tillpoint/pkg/utils"
)

// MinPINLength is the shortest PIN accepted for a cashier account.
const MinPINLength = 4

// CashierService manages till operator accounts.
type CashierService struct {
	cashierRepo repository.CashierRepository
}

// NewCashierService creates a new cashier service
func NewCashierService(cashierRepo repository.CashierRepository) *CashierService {
	return &CashierService{cashierRepo: cashierRepo}
}

// CreateCashierInput represents the create cashier input
type CreateCashierInput struct {
	Name string
	PIN  string
	Role enum.CashierRole
}

func (s *CashierService) List(ctx context.Context) ([]entity.Cashier, error) {
	cashiers, err := s.cashierRepo.List(ctx)
	if err != nil {
		return nil, apperror.Persistence(err)
	}
	return cashiers, nil
}

// Create adds a cashier. Login identifies a cashier by PIN alone, so a PIN
// already in use is rejected.
func (s *CashierService) Create(ctx context.Context, input *CreateCashierInput) (*entity.Cashier, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.Validation("name", "Name is required")
	}
	if err := validatePIN(input.PIN); err != nil {
		return nil, err
	}
	if err := s.ensurePINUnused(ctx, input.PIN, 0); err != nil {
		return nil, err
	}

	hash, err := utils.HashPIN(input.PIN)
	if err != nil {
		return nil, err
	}

	cashier := &entity.Cashier{Name: name, PINHash: hash, Role: input.Role}
	if err := s.cashierRepo.Create(ctx, cashier); err != nil {
		return nil, apperror.Persistence(err)
	}
	return cashier, nil
}

// Delete removes a cashier. The last admin cannot be removed.
func (s *CashierService) Delete(ctx context.Context, id uint) error {
	cashier, err := s.cashierRepo.GetByID(ctx, id)
	if err != nil {
		return apperror.Persistence(err)
	}
	if cashier == nil {
		return apperror.NewNotFoundError("Cashier")
	}
	if cashier.IsAdmin() {
		admins, err := s.cashierRepo.ListByRole(ctx, enum.RoleAdmin)
		if err != nil {
			return apperror.Persistence(err)
		}
		if len(admins) <= 1 {
			return apperror.NewConflictError("Cannot delete the last admin account")
		}
	}
	return apperror.Persistence(s.cashierRepo.Delete(ctx, id))
}

// ResetAdminPIN sets a new PIN on the first admin account.
func (s *CashierService) ResetAdminPIN(ctx context.Context, pin string) error {
	if err := validatePIN(pin); err != nil {
		return err
	}
	admins, err := s.cashierRepo.ListByRole(ctx, enum.RoleAdmin)
	if err != nil {
		return apperror.Persistence(err)
	}
	if len(admins) == 0 {
		return apperror.NewNotFoundError("Admin account")
	}
	if err := s.ensurePINUnused(ctx, pin, admins[0].ID); err != nil {
		return err
	}
	hash, err := utils.HashPIN(pin)
	if err != nil {
		return err
	}
	return apperror.Persistence(s.cashierRepo.UpdatePIN(ctx, admins[0].ID, hash))
}

func (s *CashierService) ensurePINUnused(ctx context.Context, pin string, except uint) error {
	cashiers, err := s.cashierRepo.List(ctx)
	if err != nil {
		return apperror.Persistence(err)
	}
	for _, c := range cashiers {
		if c.ID != except && utils.CheckPIN(pin, c.PINHash) {
			return apperror.NewConflictError("PIN already in use")
		}
	}
	return nil
}

func validatePIN(pin string) error {
	if len(strings.TrimSpace(pin)) < MinPINLength {
		return apperror.Validation("pin", "PIN must be at least 4 characters")
	}
	return nil
}
