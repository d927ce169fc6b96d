package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sangkips/yumzee-api/internal/config"
	domainRepo "github.com/sangkips/yumzee-api/internal/domain/repository"
	"github.com/sangkips/yumzee-api/internal/presentation/http/handler"
	"github.com/sangkips/yumzee-api/internal/presentation/http/middleware"
	"github.com/sangkips/yumzee-api/pkg/utils"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth    *handler.AuthHandler
	Menu    *handler.MenuHandler
	Draft   *handler.DraftHandler
	Order   *handler.OrderHandler
	Expense *handler.ExpenseHandler
	Report  *handler.ReportHandler
	Printer *handler.PrinterHandler
	Health  *handler.HealthHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	AccountRepo     domainRepo.AccountRepository
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.AccountRateLimiter
	Registry        *prometheus.Registry
	Log             *zap.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	handler.UseJSONFieldNames()

	registry := deps.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	metrics := middleware.NewMetrics(registry)

	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Log))
	router.Use(metrics.Middleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", h.Health.Health)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(middleware.RequireAccount(deps.AccountRepo, deps.Log))
		if deps.RateLimiter != nil {
			protected.Use(deps.RateLimiter.Middleware())
		}

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.GET("/google", h.Auth.GoogleLogin)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotent := middleware.Idempotency(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
		Log:  deps.Log,
	})

	protected.GET("/auth/profile", h.Auth.GetProfile)
	protected.POST("/auth/logout", h.Auth.Logout)

	// Menu
	protected.GET("/items", h.Menu.ListItems)
	protected.POST("/items", h.Menu.AddItem)
	protected.DELETE("/items/:id", h.Menu.DeleteItem)
	protected.GET("/categories", h.Menu.ListCategories)

	registerTableRoutes(protected, h, idempotent)
	registerOrderRoutes(protected, h, idempotent)

	// Expenses
	expenses := protected.Group("/expenses")
	{
		expenses.GET("", h.Expense.List)
		expenses.POST("", h.Expense.Create)
		expenses.DELETE("/:id", h.Expense.Delete)
	}

	// Reports
	reports := protected.Group("/reports")
	{
		reports.GET("/overview", h.Report.Overview)
		reports.GET("/sales", h.Report.Sales)
		reports.GET("/expenses", h.Report.Expenses)
		reports.GET("/export", h.Report.Export)
	}

	protected.GET("/printer/status", h.Printer.GetStatus)
}

func registerTableRoutes(protected *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	protected.GET("/tables", h.Draft.ListTables)

	table := protected.Group("/tables/:table_no")
	{
		table.GET("/draft", h.Draft.GetDraft)
		table.DELETE("/draft", h.Draft.ClearDraft)
		table.POST("/draft/lines", h.Draft.AddLine)
		table.PATCH("/draft/lines/:item_id", h.Draft.AdjustLine)
		table.PUT("/draft/adjustments", h.Draft.SetAdjustments)
		// Settling twice would record the sale twice
		table.POST("/settle", idempotent, h.Order.SettleTable)
		table.POST("/print", h.Printer.PrintTable)
	}
}

func registerOrderRoutes(protected *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	orders := protected.Group("/orders")
	{
		orders.GET("", h.Order.List)
		orders.POST("", idempotent, h.Order.Create)
		orders.GET("/:id", h.Order.Get)
		orders.DELETE("/:id", h.Order.Delete)
		orders.POST("/:id/print", h.Printer.PrintOrder)
	}
}
