package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/tillpoint/internal/config"
	domainRepo "github.com/sangkips/tillpoint/internal/domain/repository"
	"github.com/sangkips/tillpoint/internal/presentation/http/handler"
	"github.com/sangkips/tillpoint/internal/presentation/http/middleware"
	"github.com/sangkips/tillpoint/pkg/metrics"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Admin     *handler.AdminHandler
	Product   *handler.ProductHandler
	Lookup    *handler.LookupHandler
	Cart      *handler.CartHandler
	Sale      *handler.SaleHandler
	Expense   *handler.ExpenseHandler
	Customer  *handler.CustomerHandler
	Dashboard *handler.DashboardHandler
	Settings  *handler.SettingsHandler
	Export    *handler.ExportHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	Sessions        middleware.SessionResolver
	IdempotencyRepo domainRepo.IdempotencyRepository
	PINLimiter      *middleware.ClientRateLimiter
	Metrics         *metrics.Recorder
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	v1 := router.Group("/api/v1")
	{
		// PIN guessing is throttled per client
		v1.POST("/auth/login", deps.PINLimiter.Middleware(), h.Auth.Login)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.Sessions))

		registerTillRoutes(protected, h, deps)
		registerBackOfficeRoutes(protected, h)
		registerAdminRoutes(protected, h, deps)
	}

	return router
}

func registerTillRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/auth/me", h.Auth.Me)

	protected.GET("/settings", h.Settings.GetSettings)
	protected.GET("/quick-quantities", h.Settings.QuickQuantities)

	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/low-stock", h.Product.GetLowStock)
		products.GET("/barcode/:code", h.Product.GetByBarcode)
		products.GET("/:id", h.Product.Get)
	}

	cart := protected.Group("/cart")
	{
		cart.GET("", h.Cart.Get)
		cart.DELETE("", h.Cart.Clear)
		cart.POST("/items", h.Cart.AddItem)
		cart.PUT("/items/:product_id", h.Cart.UpdateQuantity)
		cart.PUT("/items/:product_id/discount", h.Cart.UpdateItemDiscount)
		cart.DELETE("/items/:product_id", h.Cart.RemoveItem)
		cart.PUT("/discount", h.Cart.SetOrderDiscount)
	}

	// Checkout replays the first response for a repeated Idempotency-Key
	protected.POST("/checkout", middleware.Idempotency(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
	}), h.Cart.Checkout)

	sales := protected.Group("/sales")
	{
		sales.GET("", h.Sale.List)
		sales.GET("/:id", h.Sale.Get)
		sales.GET("/:id/receipt", h.Sale.Receipt)
		sales.POST("/:id/print", h.Sale.Print)
	}
	protected.GET("/printer/status", h.Sale.PrinterStatus)

	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
	}
}

func registerBackOfficeRoutes(protected *gin.RouterGroup, h *Handlers) {
	expenses := protected.Group("/expenses")
	{
		expenses.GET("", h.Expense.List)
		expenses.POST("", h.Expense.Create)
	}

	protected.GET("/dashboard", h.Dashboard.GetStats)

	protected.GET("/categories", h.Lookup.ListCategories)
	protected.GET("/suppliers", h.Lookup.ListSuppliers)
	protected.GET("/units", h.Lookup.ListUnits)
}

func registerAdminRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	admin := protected.Group("")
	admin.Use(middleware.RequireAdmin())
	{
		admin.PUT("/settings", h.Settings.UpdateSettings)

		admin.POST("/products", h.Product.Create)
		admin.PUT("/products/:id", h.Product.Update)
		admin.PUT("/products/:id/discount", h.Product.SetDiscount)
		admin.DELETE("/products/:id/discount", h.Product.ClearDiscount)
		admin.POST("/products/import", h.Export.ImportProducts)
		admin.GET("/products/import/template", h.Export.ProductTemplate)

		admin.POST("/categories", h.Lookup.CreateCategory)
		admin.POST("/suppliers", h.Lookup.CreateSupplier)
		admin.POST("/units", h.Lookup.CreateUnit)

		admin.GET("/accounting", h.Dashboard.Accounting)

		admin.GET("/export/backup", h.Export.Backup)
		admin.GET("/export/sales.xlsx", h.Export.SalesReport)

		admin.GET("/cashiers", h.Admin.ListCashiers)
		admin.POST("/cashiers", h.Admin.CreateCashier)
		admin.DELETE("/cashiers/:id", h.Admin.DeleteCashier)
	}

	// The admin PIN is the gate here, not the session role. Checks are
	// throttled like login.
	pinGated := protected.Group("")
	pinGated.Use(deps.PINLimiter.Middleware())
	{
		pinGated.POST("/restore", h.Admin.Restore)
		pinGated.POST("/admin/sales/delete", h.Admin.DeleteSales)
		pinGated.POST("/import/backup", h.Export.ImportBackup)
		pinGated.PUT("/admin/pin", h.Admin.ResetAdminPIN)
	}
}
