package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bankledger/internal/config"
	"bankledger/internal/database"
	"bankledger/internal/handlers"
	"bankledger/internal/middleware"
	"bankledger/internal/repositories"
	"bankledger/internal/services"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// .env is optional; real deployments configure through the environment.
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	cfg := config.Load()

	logLevel := slog.LevelInfo
	if cfg.IsDevelopment() {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	db, err := database.Initialize(cfg)
	if err != nil {
		slog.Error("database initialization failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	e := buildServer(cfg, db, logger)

	go func() {
		address := cfg.Server.Host + ":" + cfg.Server.Port
		slog.Info("starting server",
			"address", address,
			"environment", cfg.Server.Environment,
			"db_driver", cfg.Database.Driver,
		)
		if err := e.Start(address); err != nil && err != http.ErrServerClosed {
			slog.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}

func buildServer(cfg *config.Config, db *database.DB, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.RateLimiter())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
	}))

	// Repositories over the shared handle; the import pipeline builds its own
	// repositories inside each unit-of-work transaction.
	categoryRepo := repositories.NewCategoryRepository(db.DB)
	accountRepo := repositories.NewAccountRepository(db.DB)
	transactionRepo := repositories.NewTransactionRepository(db.DB)
	ruleRepo := repositories.NewRuleRepository(db.DB)

	importLogger := services.NewImportLogger(logger)
	metrics := services.NewPrometheusMetrics()

	categoryService := services.NewCategoryService(categoryRepo)
	accountService := services.NewAccountService(accountRepo, categoryRepo)
	transactionService := services.NewTransactionService(transactionRepo, categoryRepo)
	ruleService := services.NewRuleService(ruleRepo, categoryRepo)
	ruleEngine := services.NewRuleEngine(ruleRepo, categoryRepo, transactionRepo, importLogger, metrics)
	transferMatcher := services.NewTransferMatcher(transactionRepo, importLogger, metrics, &cfg.Import)
	importService := services.NewImportService(db, &cfg.Import, importLogger, metrics)
	sampleData := services.NewSampleDataService(categoryRepo, accountRepo, transactionRepo, ruleRepo)

	healthHandler := handlers.NewHealthCheckHandler(db.DB)
	importHandler := handlers.NewImportHandler(importService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, ruleEngine, transferMatcher)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	accountHandler := handlers.NewAccountHandler(accountService)
	ruleHandler := handlers.NewRuleHandler(ruleService)
	devHandler := handlers.NewDevHandler(sampleData, cfg.Server.Environment)

	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")

	api.POST("/imports/preview", importHandler.PreviewImport)
	api.POST("/accounts/:id/imports", importHandler.ImportFile)

	api.GET("/transactions", transactionHandler.GetTransactions)
	api.PATCH("/transactions/:id", transactionHandler.UpdateTransaction)
	api.POST("/rules/run", transactionHandler.RunAllRules)
	api.POST("/transfers/match", transactionHandler.RunTransferMatch)

	api.GET("/categories", categoryHandler.GetAllCategories)
	api.POST("/categories", categoryHandler.CreateCategory)
	api.GET("/categories/:id", categoryHandler.GetCategory)
	api.GET("/categories/:id/next-child", categoryHandler.GetNextChildID)
	api.PUT("/categories/:id", categoryHandler.UpdateCategory)
	api.DELETE("/categories/:id", categoryHandler.DeleteCategory)

	api.GET("/accounts", accountHandler.GetAllAccounts)
	api.POST("/accounts", accountHandler.CreateAccount)
	api.GET("/accounts/:id", accountHandler.GetAccount)
	api.PUT("/accounts/:id", accountHandler.UpdateAccount)
	api.DELETE("/accounts/:id", accountHandler.DeleteAccount)

	api.GET("/rules", ruleHandler.GetAllRules)
	api.POST("/rules", ruleHandler.CreateRule)
	api.GET("/rules/:id", ruleHandler.GetRule)
	api.PUT("/rules/:id", ruleHandler.UpdateRule)
	api.DELETE("/rules/:id", ruleHandler.DeleteRule)

	api.POST("/dev/seed", devHandler.SeedSampleData)

	return e
}
