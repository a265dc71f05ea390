package service

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/sangkips/tillpoint/internal/domain/entity"
	"github.com/sangkips/tillpoint/internal/domain/repository"
	"github.com/sangkips/tillpoint/pkg/apperror"
	"github.com/sangkips/tillpoint/pkg/pagination"
)

// ProductService handles catalog maintenance and till lookups
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// ProductInput carries the editable product fields.
type ProductInput struct {
	Barcode      string
	Name         string
	Category     string
	CostPrice    float64
	SellingPrice float64
	Stock        float64
	MinStock     float64
	Unit         string
	Supplier     string
}

func (in *ProductInput) validate() error {
	var fieldErrors []apperror.FieldError
	if strings.TrimSpace(in.Barcode) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "barcode", Message: "Barcode is required"})
	}
	if strings.TrimSpace(in.Name) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "Name is required"})
	}
	for field, v := range map[string]float64{
		"cost_price":    in.CostPrice,
		"selling_price": in.SellingPrice,
		"stock":         in.Stock,
		"min_stock":     in.MinStock,
	} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: field, Message: "Must be a non-negative number"})
		}
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

func (in *ProductInput) apply(p *entity.Product) {
	p.Barcode = strings.TrimSpace(in.Barcode)
	p.Name = strings.TrimSpace(in.Name)
	p.Category = in.Category
	p.CostPrice = in.CostPrice
	p.SellingPrice = in.SellingPrice
	p.Stock = in.Stock
	p.MinStock = in.MinStock
	p.Unit = in.Unit
	p.Supplier = in.Supplier
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, input *ProductInput) (*entity.Product, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	existing, err := s.productRepo.GetByBarcode(ctx, strings.TrimSpace(input.Barcode))
	if err != nil {
		return nil, apperror.Persistence(err)
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Product barcode already exists")
	}

	product := &entity.Product{}
	input.apply(product)
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, apperror.Persistence(err)
	}
	return product, nil
}

// UpdateProduct replaces the editable fields. The discount window is managed
// separately through SetDiscount.
func (s *ProductService) UpdateProduct(ctx context.Context, id uint, input *ProductInput) (*entity.Product, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	barcode := strings.TrimSpace(input.Barcode)
	if barcode != product.Barcode {
		other, err := s.productRepo.GetByBarcode(ctx, barcode)
		if err != nil {
			return nil, apperror.Persistence(err)
		}
		if other != nil {
			return nil, apperror.NewConflictError("Product barcode already exists")
		}
	}

	input.apply(product)
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, apperror.Persistence(err)
	}
	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uint) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Persistence(err)
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// GetByBarcode is the scanner lookup.
func (s *ProductService) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	product, err := s.productRepo.GetByBarcode(ctx, strings.TrimSpace(barcode))
	if err != nil {
		return nil, apperror.Persistence(err)
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists products with search and pagination
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, apperror.Persistence(err)
	}

	p := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, p), nil
}

// GetLowStockProducts returns products at or below their reorder level
func (s *ProductService) GetLowStockProducts(ctx context.Context) ([]entity.Product, error) {
	products, err := s.productRepo.GetLowStock(ctx)
	if err != nil {
		return nil, apperror.Persistence(err)
	}
	return products, nil
}

// SetDiscount starts a promotional discount. Either bound may be nil for an
// open window; both bounds are inclusive.
func (s *ProductService) SetDiscount(ctx context.Context, id uint, percent float64, start, end *time.Time) (*entity.Product, error) {
	if percent <= 0 || percent > 100 || math.IsNaN(percent) {
		return nil, apperror.Validation("discount_percent", "Discount must be greater than 0 and at most 100")
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, apperror.Validation("discount_end_date", "End date must not be before start date")
	}

	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	product.DiscountPercent = percent
	product.DiscountStartDate = start
	product.DiscountEndDate = end
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, apperror.Persistence(err)
	}
	return product, nil
}

// ClearDiscount removes any promotional discount.
func (s *ProductService) ClearDiscount(ctx context.Context, id uint) (*entity.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	product.DiscountPercent = 0
	product.DiscountStartDate = nil
	product.DiscountEndDate = nil
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, apperror.Persistence(err)
	}
	return product, nil
}
