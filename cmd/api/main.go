package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sangkips/yumzee-api/internal/application/service"
	"github.com/sangkips/yumzee-api/internal/config"
	"github.com/sangkips/yumzee-api/internal/domain/repository"
	"github.com/sangkips/yumzee-api/internal/infrastructure/cache"
	"github.com/sangkips/yumzee-api/internal/infrastructure/database"
	infraRepo "github.com/sangkips/yumzee-api/internal/infrastructure/repository"
	"github.com/sangkips/yumzee-api/internal/presentation/http/handler"
	"github.com/sangkips/yumzee-api/internal/presentation/http/middleware"
	"github.com/sangkips/yumzee-api/internal/presentation/http/routes"
	"github.com/sangkips/yumzee-api/pkg/email"
	"github.com/sangkips/yumzee-api/pkg/logger"
	"github.com/sangkips/yumzee-api/pkg/oauth"
	"github.com/sangkips/yumzee-api/pkg/printer"
	"github.com/sangkips/yumzee-api/pkg/utils"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zlog, err := logger.New(cfg.Log.Level, cfg.Log.Encoding, cfg.App.Env != "production")
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Money goes over the wire as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	// Connect to database
	db, err := database.Open(&cfg.Database, cfg.App.Debug, zlog)
	if err != nil {
		zlog.Fatal("Failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		zlog.Fatal("Failed to get database handle", zap.Error(err))
	}
	defer sqlDB.Close()

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		zlog.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	accountRepo := infraRepo.NewAccountRepository(db)
	menuRepo := infraRepo.NewMenuRepository(db)
	orderRepo := infraRepo.NewOrderRepository(db)
	expenseRepo := infraRepo.NewExpenseRepository(db)
	idempotencyRepo := infraRepo.NewIdempotencyRepository(db)
	draftRepo := newDraftRepository(cfg, zlog)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
		FrontendURL:  cfg.Email.FrontendURL,
	})

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:     cfg.OAuth.GoogleClientID,
		ClientSecret: cfg.OAuth.GoogleClientSecret,
		RedirectURL:  cfg.OAuth.GoogleRedirectURL,
	})
	if !googleOAuthService.IsConfigured() {
		zlog.Warn("Google OAuth is not configured, sign-in is disabled")
	}

	// Initialize services
	authService := service.NewAuthService(accountRepo, jwtManager, emailService, zlog)
	menuService := service.NewMenuService(menuRepo, zlog)
	draftService := service.NewDraftService(draftRepo, menuRepo, cfg.POS.TableCount)
	orderService := service.NewOrderService(orderRepo, draftService, zlog)
	expenseService := service.NewExpenseService(expenseRepo, zlog)
	reportService := service.NewReportService(orderRepo, expenseRepo, cfg.POS.Location)

	// Initialize thermal printer
	thermalPrinter, err := printer.New(printer.Config{
		Type:    cfg.Printer.Type,
		USBPath: cfg.Printer.USBPath,
		Address: cfg.Printer.Address,
	})
	if err != nil {
		zlog.Warn("Failed to initialize printer, printing is disabled", zap.Error(err))
		thermalPrinter, _ = printer.New(printer.Config{Type: "none"})
		cfg.Printer.Type = "none"
	}
	printerService := service.NewPrinterService(thermalPrinter, service.PrinterOptions{
		Type:      cfg.Printer.Type,
		Width:     cfg.Printer.Width,
		StoreName: cfg.Printer.StoreName,
		Location:  cfg.POS.Location,
	}, draftService, orderService, zlog)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth: handler.NewAuthHandler(authService, googleOAuthService, handler.AuthCookieConfig{
			Secure:     cfg.OAuth.CookieSecure,
			SuccessURL: cfg.OAuth.FrontendSuccessURL,
			ErrorURL:   cfg.OAuth.FrontendErrorURL,
		}, zlog),
		Menu:    handler.NewMenuHandler(menuService),
		Draft:   handler.NewDraftHandler(draftService),
		Order:   handler.NewOrderHandler(orderService, cfg.POS.Location),
		Expense: handler.NewExpenseHandler(expenseService, cfg.POS.Location),
		Report:  handler.NewReportHandler(reportService),
		Printer: handler.NewPrinterHandler(printerService),
		Health:  handler.NewHealthHandler(sqlDB),
	}

	rateLimiter := middleware.NewAccountRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		BurstSize:         cfg.RateLimit.Burst,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})
	defer rateLimiter.Stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(sqlDB, cfg.Database.Name),
	)

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		AccountRepo:     accountRepo,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     rateLimiter,
		Registry:        registry,
		Log:             zlog,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sweepIdempotencyKeys(ctx, idempotencyRepo, zlog)

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		zlog.Info("Starting server",
			zap.String("app", cfg.App.Name),
			zap.String("port", port),
			zap.String("env", cfg.App.Env),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srvErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		zlog.Info("Received shutdown signal")
	case err := <-srvErr:
		zlog.Fatal("Server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("Graceful shutdown failed", zap.Error(err))
	}
	zlog.Info("Server stopped")
}

// newDraftRepository keeps table drafts in Redis when REDIS_ADDR is set and
// reachable, and in process memory otherwise.
func newDraftRepository(cfg *config.Config, zlog *zap.Logger) repository.DraftRepository {
	if cfg.Redis.Addr == "" {
		zlog.Info("Using in-memory draft store")
		return cache.NewMemoryDraftRepository()
	}

	client := cache.NewRedisClient(&cfg.Redis)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx); err != nil {
		zlog.Warn("Redis unreachable, using in-memory draft store",
			zap.String("addr", cfg.Redis.Addr),
			zap.Error(err),
		)
		_ = client.Close()
		return cache.NewMemoryDraftRepository()
	}

	zlog.Info("Using Redis draft store", zap.String("addr", cfg.Redis.Addr))
	return cache.NewRedisDraftRepository(client, cfg.Redis.DraftTTL)
}

func sweepIdempotencyKeys(ctx context.Context, repo repository.IdempotencyRepository, zlog *zap.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := repo.DeleteExpired(ctx)
			if err != nil {
				zlog.Warn("Failed to delete expired idempotency keys", zap.Error(err))
				continue
			}
			if n > 0 {
				zlog.Debug("Deleted expired idempotency keys", zap.Int64("count", n))
			}
		}
	}
}
