package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sangkips/tillpoint/internal/domain/cart"
	"github.com/sangkips/tillpoint/internal/domain/entity"
	"github.com/sangkips/tillpoint/internal/domain/repository"
	"github.com/sangkips/tillpoint/pkg/apperror"
)

// CartService keeps one cart per logged-in session. HTTP requests for the
// same session may overlap, so each cart has its own lock.
type CartService struct {
	productRepo     repository.ProductRepository
	settingsService *SettingsService
	checkout        *CheckoutService
	now             func() time.Time

	mu    sync.Mutex
	carts map[string]*sessionCart
}

type sessionCart struct {
	mu   sync.Mutex
	cart *cart.Cart
}

// NewCartService creates a new cart service
func NewCartService(
	productRepo repository.ProductRepository,
	settingsService *SettingsService,
	checkout *CheckoutService,
) *CartService {
	return &CartService{
		productRepo:     productRepo,
		settingsService: settingsService,
		checkout:        checkout,
		now:             time.Now,
		carts:           make(map[string]*sessionCart),
	}
}

// CartView is the cart as the till screen shows it.
type CartView struct {
	Items         []entity.SaleItem   `json:"items"`
	OrderDiscount entity.LineDiscount `json:"order_discount"`
	TaxRate       float64             `json:"tax_rate"`
	Totals        cart.Totals         `json:"totals"`
}

// AddItemInput identifies the product by id or by scanned barcode.
type AddItemInput struct {
	ProductID uint
	Barcode   string
	Quantity  *float64
}

func (s *CartService) get(session entity.Session) *sessionCart {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc, ok := s.carts[session.ID]
	if !ok {
		sc = &sessionCart{cart: cart.New(session, s.now)}
		s.carts[session.ID] = sc
	}
	return sc
}

// with runs fn on the session's cart under its lock.
func (s *CartService) with(session entity.Session, fn func(c *cart.Cart) error) error {
	sc := s.get(session)
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return fn(sc.cart)
}

func (s *CartService) view(ctx context.Context, session entity.Session) (*CartView, error) {
	settings, err := s.settingsService.Get(ctx)
	if err != nil {
		return nil, err
	}
	var v *CartView
	_ = s.with(session, func(c *cart.Cart) error {
		v = &CartView{
			Items:         c.Items(),
			OrderDiscount: c.OrderDiscount(),
			TaxRate:       settings.TaxRate,
			Totals:        c.Totals(settings.TaxRate),
		}
		return nil
	})
	return v, nil
}

// Get returns the session's cart, creating an empty one if needed.
func (s *CartService) Get(ctx context.Context, session entity.Session) (*CartView, error) {
	return s.view(ctx, session)
}

// AddItem looks the product up and adds it to the cart.
func (s *CartService) AddItem(ctx context.Context, session entity.Session, input *AddItemInput) (*CartView, error) {
	var (
		product *entity.Product
		err     error
	)
	switch {
	case input.ProductID != 0:
		product, err = s.productRepo.GetByID(ctx, input.ProductID)
	case strings.TrimSpace(input.Barcode) != "":
		product, err = s.productRepo.GetByBarcode(ctx, strings.TrimSpace(input.Barcode))
	default:
		return nil, apperror.Validation("product_id", "Product id or barcode is required")
	}
	if err != nil {
		return nil, apperror.Persistence(err)
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if err := s.with(session, func(c *cart.Cart) error {
		return c.AddItem(product, input.Quantity)
	}); err != nil {
		return nil, err
	}
	return s.view(ctx, session)
}

func (s *CartService) UpdateQuantity(ctx context.Context, session entity.Session, productID uint, quantity float64) (*CartView, error) {
	if err := s.with(session, func(c *cart.Cart) error {
		return c.UpdateQuantity(productID, quantity)
	}); err != nil {
		return nil, err
	}
	return s.view(ctx, session)
}

func (s *CartService) UpdateItemDiscount(ctx context.Context, session entity.Session, productID uint, discount entity.LineDiscount) (*CartView, error) {
	if err := s.with(session, func(c *cart.Cart) error {
		return c.UpdateItemDiscount(productID, discount)
	}); err != nil {
		return nil, err
	}
	return s.view(ctx, session)
}

func (s *CartService) RemoveItem(ctx context.Context, session entity.Session, productID uint) (*CartView, error) {
	if err := s.with(session, func(c *cart.Cart) error {
		return c.RemoveItem(productID)
	}); err != nil {
		return nil, err
	}
	return s.view(ctx, session)
}

func (s *CartService) SetOrderDiscount(ctx context.Context, session entity.Session, discount entity.LineDiscount) (*CartView, error) {
	if err := s.with(session, func(c *cart.Cart) error {
		return c.SetOrderDiscount(discount)
	}); err != nil {
		return nil, err
	}
	return s.view(ctx, session)
}

// Clear empties the cart but keeps the session.
func (s *CartService) Clear(ctx context.Context, session entity.Session) (*CartView, error) {
	_ = s.with(session, func(c *cart.Cart) error {
		c.Clear()
		return nil
	})
	return s.view(ctx, session)
}

// Checkout commits the session's cart. The cart is held locked for the whole
// commit so a concurrent edit cannot slip in between totals and insert.
func (s *CartService) Checkout(ctx context.Context, session entity.Session, input *CommitSaleInput) (*entity.Sale, error) {
	var sale *entity.Sale
	err := s.with(session, func(c *cart.Cart) error {
		var err error
		sale, err = s.checkout.CommitSale(ctx, c, input)
		return err
	})
	return sale, err
}

// Discard drops the session's cart, e.g. on logout.
func (s *CartService) Discard(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}
