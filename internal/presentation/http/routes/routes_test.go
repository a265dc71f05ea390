package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sangkips/tillpoint/internal/application/service"
	"github.com/sangkips/tillpoint/internal/config"
	"github.com/sangkips/tillpoint/internal/domain/entity"
	"github.com/sangkips/tillpoint/internal/domain/enum"
	"github.com/sangkips/tillpoint/internal/infrastructure/database"
	"github.com/sangkips/tillpoint/internal/infrastructure/repository"
	"github.com/sangkips/tillpoint/internal/presentation/http/handler"
	"github.com/sangkips/tillpoint/internal/presentation/http/middleware"
	"github.com/sangkips/tillpoint/pkg/printer"
	"github.com/sangkips/tillpoint/pkg/utils"
)

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open(&config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"}, true)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	require.NoError(t, database.SeedDefaultData(db, database.SeedOptions{AdminPIN: "1234"}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	cfg := &config.Config{App: config.AppConfig{Name: "tillpoint-test"}}

	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	cashierRepo := repository.NewCashierRepository(db)
	transactor := repository.NewTransactor(db)

	settingsService := service.NewSettingsService(repository.NewSettingsRepository(db))
	authService := service.NewAuthService(cashierRepo, utils.NewJWTManager("test-secret", time.Hour, cfg.App.Name))
	cashierService := service.NewCashierService(cashierRepo)
	checkoutService := service.NewCheckoutService(transactor, settingsService, nil)
	cartService := service.NewCartService(productRepo, settingsService, checkoutService)
	receiptService := service.NewReceiptService(saleRepo, transactor, settingsService, printer.NewNullPrinter(), "none", 32, nil)
	saleService := service.NewSaleService(saleRepo)
	exportService := service.NewExportService(repository.NewBackupRepository(db), saleRepo, productRepo, transactor, settingsService)

	handlers := &Handlers{
		Auth:     handler.NewAuthHandler(authService, cartService),
		Admin:    handler.NewAdminHandler(authService, cashierService, service.NewRestoreService(transactor, nil), saleService),
		Product:  handler.NewProductHandler(service.NewProductService(productRepo)),
		Lookup:   handler.NewLookupHandler(service.NewLookupService(repository.NewCategoryRepository(db), repository.NewSupplierRepository(db), repository.NewUnitRepository(db))),
		Cart:     handler.NewCartHandler(cartService),
		Sale:     handler.NewSaleHandler(saleService, receiptService),
		Expense:  handler.NewExpenseHandler(service.NewExpenseService(repository.NewExpenseRepository(db))),
		Customer: handler.NewCustomerHandler(service.NewCustomerService(repository.NewCustomerRepository(db))),
		Dashboard: handler.NewDashboardHandler(
			service.NewDashboardService(saleRepo, productRepo),
			service.NewAccountingService(saleRepo, repository.NewExpenseRepository(db), productRepo),
		),
		Settings: handler.NewSettingsHandler(settingsService),
		Export:   handler.NewExportHandler(exportService, authService),
	}

	limiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{RequestsPerMinute: 600, BurstSize: 100})
	t.Cleanup(limiter.Stop)

	router := Setup(handlers, &Deps{
		Cfg:             cfg,
		Sessions:        authService,
		IdempotencyRepo: repository.NewIdempotencyRepository(db),
		PINLimiter:      limiter,
	})
	return &testServer{router: router, db: db}
}

type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}, headers map[string]string) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp apiResponse
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") != "" {
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
	}
	return w, resp
}

func (s *testServer) login(t *testing.T, pin string) string {
	t.Helper()
	w, resp := s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"pin": pin}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var data struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.NotEmpty(t, data.AccessToken)
	return data.AccessToken
}

func (s *testServer) addProduct(t *testing.T, barcode string, price, stock float64) *entity.Product {
	t.Helper()
	p := &entity.Product{Barcode: barcode, Name: "Item " + barcode, SellingPrice: price, CostPrice: price / 2, Stock: stock, Unit: "pcs"}
	require.NoError(t, repository.NewProductRepository(s.db).Create(context.Background(), p))
	return p
}

func TestHealthAndAuthRequired(t *testing.T) {
	s := newTestServer(t)

	w, _ := s.do(t, http.MethodGet, "/health", "", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(t, http.MethodGet, "/api/v1/cart", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(t, http.MethodGet, "/api/v1/cart", "not-a-token", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"pin": "9999"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCheckoutFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "1234")
	a := s.addProduct(t, "A1", 2.5, 10)
	s.addProduct(t, "B1", 1.8, 10)

	w, _ := s.do(t, http.MethodPost, "/api/v1/cart/items", token, map[string]interface{}{"barcode": "A1", "quantity": 4}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w, resp := s.do(t, http.MethodPost, "/api/v1/cart/items", token, map[string]interface{}{"barcode": "B1", "quantity": 2}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var view struct {
		Totals struct {
			Subtotal float64 `json:"subtotal"`
			Tax      float64 `json:"tax"`
			Total    float64 `json:"total"`
		} `json:"totals"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &view))
	assert.InDelta(t, 13.6, view.Totals.Subtotal, 1e-9)
	assert.InDelta(t, 1.36, view.Totals.Tax, 1e-9)
	assert.InDelta(t, 14.96, view.Totals.Total, 1e-9)

	headers := map[string]string{middleware.IdempotencyKeyHeader: "checkout-1"}
	body := map[string]interface{}{"payment_method": "cash", "amount_paid": 20}
	w, resp = s.do(t, http.MethodPost, "/api/v1/checkout", token, body, headers)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var sale struct {
		ID         uint    `json:"id"`
		Total      float64 `json:"total"`
		Change     float64 `json:"change"`
		PrintCount int     `json:"print_count"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &sale))
	assert.InDelta(t, 14.96, sale.Total, 1e-9)
	assert.InDelta(t, 5.04, sale.Change, 1e-9)
	assert.Equal(t, 0, sale.PrintCount)

	replay, _ := s.do(t, http.MethodPost, "/api/v1/checkout", token, body, headers)
	assert.Equal(t, http.StatusCreated, replay.Code)
	assert.Equal(t, "true", replay.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, w.Body.String(), replay.Body.String())

	var sales int64
	require.NoError(t, s.db.Model(&entity.Sale{}).Count(&sales).Error)
	assert.Equal(t, int64(1), sales)

	product, err := repository.NewProductRepository(s.db).GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, 6.0, product.Stock)

	// an empty cart cannot be checked out
	w, _ = s.do(t, http.MethodPost, "/api/v1/checkout", token, nil, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	path := "/api/v1/sales/" + jsonNumber(sale.ID)
	for i := 0; i < 3; i++ {
		w, _ = s.do(t, http.MethodPost, path+"/print", token, nil, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
	w, resp = s.do(t, http.MethodGet, path+"/receipt", token, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var preview struct {
		Receipt struct {
			PrintCount int `json:"print_count"`
		} `json:"receipt"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &preview))
	assert.Equal(t, 3, preview.Receipt.PrintCount)
}

func TestInsufficientStockConflict(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "1234")
	s.addProduct(t, "ONE", 1, 1)

	w, _ := s.do(t, http.MethodPost, "/api/v1/cart/items", token, map[string]interface{}{"barcode": "ONE", "quantity": 2}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRestoreNeedsAdminPIN(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "1234")

	w, _ := s.do(t, http.MethodPost, "/api/v1/restore", token, map[string]string{"period": "1-day", "admin_pin": "0000"}, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(t, http.MethodPost, "/api/v1/restore", token, map[string]string{"period": "2-days", "admin_pin": "1234"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.do(t, http.MethodPost, "/api/v1/restore", token, map[string]string{"period": "1-day", "admin_pin": "1234"}, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestDeleteSalesNeedsAdminPIN(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "1234")
	p := s.addProduct(t, "A1", 2, 10)

	saleRepo := repository.NewSaleRepository(s.db)
	for _, cashier := range []string{"Alice", "Alice", "Bob"} {
		require.NoError(t, saleRepo.Create(context.Background(), &entity.Sale{
			Items:        []entity.SaleItem{{ProductID: p.ID, Name: p.Name, Price: 2, Quantity: 1, Total: 2}},
			Subtotal:     2,
			Total:        2,
			Cashier:      cashier,
			Timestamp:    time.Now(),
			PrintHistory: []time.Time{},
		}))
	}

	w, _ := s.do(t, http.MethodPost, "/api/v1/admin/sales/delete", token, map[string]string{"cashier": "Alice", "admin_pin": "0000"}, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(t, http.MethodPost, "/api/v1/admin/sales/delete", token, map[string]string{"cashier": "Alice", "start": "yesterday", "admin_pin": "1234"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp := s.do(t, http.MethodPost, "/api/v1/admin/sales/delete", token, map[string]string{"cashier": "Alice", "admin_pin": "1234"}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var result struct {
		SalesDeleted int64 `json:"sales_deleted"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &result))
	assert.Equal(t, int64(2), result.SalesDeleted)

	var left []string
	require.NoError(t, s.db.Model(&entity.Sale{}).Pluck("cashier", &left).Error)
	assert.Equal(t, []string{"Bob"}, left)

	product, err := repository.NewProductRepository(s.db).GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 10.0, product.Stock)
}

func TestCheckoutRejectsUnknownPaymentMethod(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "1234")
	s.addProduct(t, "A1", 2, 10)

	w, _ := s.do(t, http.MethodPost, "/api/v1/cart/items", token, map[string]interface{}{"barcode": "A1"}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, _ = s.do(t, http.MethodPost, "/api/v1/checkout", token, map[string]interface{}{"payment_method": 9}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var sales int64
	require.NoError(t, s.db.Model(&entity.Sale{}).Count(&sales).Error)
	assert.Zero(t, sales)
}

func TestAdminRoutesRejectCashiers(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, "1234")

	w, _ := s.do(t, http.MethodPost, "/api/v1/cashiers", admin, map[string]interface{}{"name": "Till", "pin": "5678", "role": "cashier"}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	cashier := s.login(t, "5678")
	w, _ = s.do(t, http.MethodPut, "/api/v1/settings", cashier, map[string]interface{}{"tax_rate": 5}, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(t, http.MethodPut, "/api/v1/settings", admin, map[string]interface{}{"tax_rate": 5}, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(t, http.MethodGet, "/api/v1/settings", cashier, nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var roles []enum.CashierRole
	require.NoError(t, s.db.Model(&entity.Cashier{}).Pluck("role", &roles).Error)
	assert.ElementsMatch(t, []enum.CashierRole{enum.RoleAdmin, enum.RoleCashier}, roles)
}

func jsonNumber(id uint) string {
	b, _ := json.Marshal(id)
	return string(b)
}
