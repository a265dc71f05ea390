package service

import (
	"context"
	"strings"

	"github.com/sangkips/tillpoint/internal/domain/entity"
	"github.com/sangkips/tillpoint/internal/domain/repository"
	"github.com/sangkips/tillpoint/pkg/apperror"
)

// LookupService serves the short lists behind the product form: categories,
// suppliers and units.
type LookupService struct {
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
	unitRepo     repository.UnitRepository
}

// NewLookupService creates a new lookup service
func NewLookupService(
	categoryRepo repository.CategoryRepository,
	supplierRepo repository.SupplierRepository,
	unitRepo repository.UnitRepository,
) *LookupService {
	return &LookupService{
		categoryRepo: categoryRepo,
		supplierRepo: supplierRepo,
		unitRepo:     unitRepo,
	}
}

func (s *LookupService) Categories(ctx context.Context) ([]entity.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	return categories, apperror.Persistence(err)
}

func (s *LookupService) Suppliers(ctx context.Context) ([]entity.Supplier, error) {
	suppliers, err := s.supplierRepo.List(ctx)
	return suppliers, apperror.Persistence(err)
}

func (s *LookupService) Units(ctx context.Context) ([]entity.Unit, error) {
	units, err := s.unitRepo.List(ctx)
	return units, apperror.Persistence(err)
}

// CreateCategory adds a category; names are unique.
func (s *LookupService) CreateCategory(ctx context.Context, name string) (*entity.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.Validation("name", "Name is required")
	}
	existing, err := s.Categories(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range existing {
		if strings.EqualFold(c.Name, name) {
			return nil, apperror.NewConflictError("Category with this name already exists")
		}
	}

	category := &entity.Category{Name: name}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, apperror.Persistence(err)
	}
	return category, nil
}

func (s *LookupService) CreateSupplier(ctx context.Context, name, contact string) (*entity.Supplier, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.Validation("name", "Name is required")
	}
	supplier := &entity.Supplier{Name: name, Contact: contact}
	if err := s.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, apperror.Persistence(err)
	}
	return supplier, nil
}

func (s *LookupService) CreateUnit(ctx context.Context, name, symbol string) (*entity.Unit, error) {
	name = strings.TrimSpace(name)
	symbol = strings.TrimSpace(symbol)
	if name == "" || symbol == "" {
		return nil, apperror.Validation("symbol", "Name and symbol are required")
	}
	unit := &entity.Unit{Name: name, Symbol: symbol}
	if err := s.unitRepo.Create(ctx, unit); err != nil {
		return nil, apperror.Persistence(err)
	}
	return unit, nil
}
