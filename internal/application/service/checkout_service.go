package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sangkips/tillpoint/internal/domain/cart"
	"github.com/sangkips/tillpoint/internal/domain/entity"
	"github.com/sangkips/tillpoint/internal/domain/enum"
	"github.com/sangkips/tillpoint/internal/domain/repository"
	"github.com/sangkips/tillpoint/pkg/apperror"
	"github.com/sangkips/tillpoint/pkg/logger"
	"github.com/sangkips/tillpoint/pkg/metrics"
)

// paymentTolerance absorbs float drift when comparing cash tendered to the total.
const paymentTolerance = 1e-9

// CheckoutService turns a cart into a committed sale.
type CheckoutService struct {
	transactor      repository.Transactor
	settingsService *SettingsService
	metrics         *metrics.Recorder
	now             func() time.Time
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	transactor repository.Transactor,
	settingsService *SettingsService,
	recorder *metrics.Recorder,
) *CheckoutService {
	return &CheckoutService{
		transactor:      transactor,
		settingsService: settingsService,
		metrics:         recorder,
		now:             time.Now,
	}
}

// CommitSaleInput represents the payment side of a checkout
type CommitSaleInput struct {
	PaymentMethod enum.PaymentMethod
	// AmountPaid nil or zero means exact payment.
	AmountPaid *float64
	CustomerID *uint
}

// CommitSale inserts the sale and takes its lines out of stock in one
// transaction. On any failure nothing is written and the cart is left as it
// was; on success the cart is cleared.
func (s *CheckoutService) CommitSale(ctx context.Context, c *cart.Cart, input *CommitSaleInput) (*entity.Sale, error) {
	sale, err := s.commit(ctx, c, input)
	if err != nil {
		s.metrics.SaleFailed(string(apperror.KindOf(err)))
		logger.Warn().Err(err).Str("kind", string(apperror.KindOf(err))).Msg("Sale commit failed")
		return nil, err
	}

	c.Clear()
	s.metrics.SaleCommitted(sale.Total)
	logger.Info().
		Uint("sale_id", sale.ID).
		Str("cashier", sale.Cashier).
		Int("items", len(sale.Items)).
		Float64("total", sale.Total).
		Msg("Sale committed")
	return sale, nil
}

func (s *CheckoutService) commit(ctx context.Context, c *cart.Cart, input *CommitSaleInput) (*entity.Sale, error) {
	if c == nil || c.IsEmpty() {
		return nil, apperror.Validation("items", "Cart is empty")
	}
	if input == nil {
		input = &CommitSaleInput{}
	}
	if !input.PaymentMethod.IsValid() {
		return nil, apperror.Validation("payment_method", "Payment method must be cash, card or split")
	}

	items := c.Items()
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, apperror.Validation("quantity", fmt.Sprintf("Quantity for %s must be greater than zero", item.Name))
		}
	}

	settings, err := s.settingsService.Get(ctx)
	if err != nil {
		return nil, err
	}
	totals := c.Totals(settings.TaxRate)

	amountPaid, change, err := settle(totals.Total, input.AmountPaid)
	if err != nil {
		return nil, err
	}

	session := c.Session()
	sale := &entity.Sale{
		Items:         items,
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		Discount:      totals.Discount,
		Total:         totals.Total,
		PaymentMethod: input.PaymentMethod,
		AmountPaid:    amountPaid,
		Change:        change,
		Cashier:       session.CashierName,
		Timestamp:     s.now().UTC(),
		PrintCount:    0,
		PrintHistory:  []time.Time{},
	}

	err = s.transactor.WithinTransaction(ctx, func(store repository.Store) error {
		var customer *entity.Customer
		if input.CustomerID != nil {
			found, err := store.Customers().GetByID(ctx, *input.CustomerID)
			if err != nil {
				return err
			}
			if found == nil {
				return apperror.NewNotFoundError("Customer")
			}
			customer = found
			sale.CustomerID = &customer.ID
			sale.CustomerName = customer.Name
		}

		if err := store.Sales().Create(ctx, sale); err != nil {
			return err
		}

		for _, item := range items {
			if err := store.Products().DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
				if errors.Is(err, apperror.ErrInsufficientStock) {
					return apperror.NewInsufficientStockError(fmt.Sprintf("Insufficient stock for %s", item.Name))
				}
				return err
			}
		}

		if customer != nil {
			points := int(math.Floor(sale.Total))
			if err := store.Customers().AddPurchase(ctx, customer.ID, sale.Total, points); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperror.Persistence(err)
	}

	return sale, nil
}

// settle works out what was tendered and the change owed.
func settle(total float64, amountPaid *float64) (float64, float64, error) {
	if amountPaid == nil || *amountPaid == 0 {
		return total, 0, nil
	}
	paid := *amountPaid
	if math.IsNaN(paid) || math.IsInf(paid, 0) || paid < 0 {
		return 0, 0, apperror.Validation("amount_paid", "Amount paid must be a positive number")
	}
	if paid+paymentTolerance < total {
		return 0, 0, apperror.Validation("amount_paid", "Amount paid is less than the total")
	}
	return paid, math.Max(0, paid-total), nil
}
