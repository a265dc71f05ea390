package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/tillpoint/internal/application/service"
	"github.com/sangkips/tillpoint/internal/config"
	"github.com/sangkips/tillpoint/internal/infrastructure/database"
	"github.com/sangkips/tillpoint/internal/infrastructure/repository"
	"github.com/sangkips/tillpoint/internal/presentation/http/handler"
	"github.com/sangkips/tillpoint/internal/presentation/http/middleware"
	"github.com/sangkips/tillpoint/internal/presentation/http/routes"
	"github.com/sangkips/tillpoint/pkg/logger"
	"github.com/sangkips/tillpoint/pkg/metrics"
	"github.com/sangkips/tillpoint/pkg/printer"
	"github.com/sangkips/tillpoint/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logger.Init(logger.Options{Production: cfg.App.IsProduction()})

	// Set Gin mode based on environment
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Open(&cfg.Database, cfg.App.IsProduction())
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	if err := database.SeedDefaultData(db, database.SeedOptions{
		AdminPIN:       cfg.Seed.AdminPIN,
		SampleProducts: !cfg.App.IsProduction(),
	}); err != nil {
		logger.Warn().Err(err).Msg("Failed to seed default data")
	}

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours, cfg.App.Name)

	var recorder *metrics.Recorder
	if cfg.Metrics.Enabled {
		recorder = metrics.NewRecorder()
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	unitRepo := repository.NewUnitRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	cashierRepo := repository.NewCashierRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	backupRepo := repository.NewBackupRepository(db)
	transactor := repository.NewTransactor(db)

	if err := idempotencyRepo.DeleteExpired(context.Background()); err != nil {
		logger.Warn().Err(err).Msg("Failed to purge expired idempotency keys")
	}

	thermalPrinter, err := printer.New(printer.Config{
		Type:     cfg.Printer.Type,
		USBPath:  cfg.Printer.USBPath,
		Address:  cfg.Printer.Address,
		SpoolDir: cfg.Printer.SpoolDir,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize printer, receipts will not be printed")
		thermalPrinter = printer.NewNullPrinter()
	}
	defer thermalPrinter.Close()

	// Initialize services
	settingsService := service.NewSettingsService(settingsRepo)
	authService := service.NewAuthService(cashierRepo, jwtManager)
	cashierService := service.NewCashierService(cashierRepo)
	productService := service.NewProductService(productRepo)
	lookupService := service.NewLookupService(categoryRepo, supplierRepo, unitRepo)
	checkoutService := service.NewCheckoutService(transactor, settingsService, recorder)
	cartService := service.NewCartService(productRepo, settingsService, checkoutService)
	receiptService := service.NewReceiptService(saleRepo, transactor, settingsService, thermalPrinter, cfg.Printer.Type, cfg.Printer.Width, recorder)
	restoreService := service.NewRestoreService(transactor, recorder)
	saleService := service.NewSaleService(saleRepo)
	expenseService := service.NewExpenseService(expenseRepo)
	customerService := service.NewCustomerService(customerRepo)
	dashboardService := service.NewDashboardService(saleRepo, productRepo)
	accountingService := service.NewAccountingService(saleRepo, expenseRepo, productRepo)
	exportService := service.NewExportService(backupRepo, saleRepo, productRepo, transactor, settingsService)

	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService, cartService),
		Admin:     handler.NewAdminHandler(authService, cashierService, restoreService, saleService),
		Product:   handler.NewProductHandler(productService),
		Lookup:    handler.NewLookupHandler(lookupService),
		Cart:      handler.NewCartHandler(cartService),
		Sale:      handler.NewSaleHandler(saleService, receiptService),
		Expense:   handler.NewExpenseHandler(expenseService),
		Customer:  handler.NewCustomerHandler(customerService),
		Dashboard: handler.NewDashboardHandler(dashboardService, accountingService),
		Settings:  handler.NewSettingsHandler(settingsService),
		Export:    handler.NewExportHandler(exportService, authService),
	}

	pinLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
		RequestsPerMinute: cfg.RateLimit.LoginPerMinute,
		BurstSize:         cfg.RateLimit.LoginBurst,
	})
	defer pinLimiter.Stop()

	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		Sessions:        authService,
		IdempotencyRepo: idempotencyRepo,
		PINLimiter:      pinLimiter,
		Metrics:         recorder,
	})

	srv := &http.Server{
		Addr:              cfg.App.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().
			Str("addr", srv.Addr).
			Str("env", cfg.App.Env).
			Str("printer", cfg.Printer.Type).
			Msgf("Starting %s server", cfg.App.Name)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server shutdown failed")
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
