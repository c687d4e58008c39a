package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"budgetvault/internal/config"
	"budgetvault/internal/database"
	"budgetvault/internal/handlers"
	"budgetvault/internal/middleware"
	"budgetvault/internal/repositories"
	"budgetvault/internal/services"
	"budgetvault/internal/vault"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cryptor, err := vault.New(cfg.Vault.Passphrase, cfg.Vault.Salt)
	if err != nil {
		logger.Error("failed to initialize vault", "error", err)
		os.Exit(1)
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.AutoMigrate(); err != nil {
		logger.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		logger.Error("failed to access underlying database", "error", err)
		os.Exit(1)
	}
	if err := database.NewMigrationRunner(sqlDB).RunMigrations(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	if err := db.CreateIndexes(); err != nil {
		logger.Error("failed to create indexes", "error", err)
		os.Exit(1)
	}

	e := buildServer(cfg, db, cryptor)

	go func() {
		address := cfg.Server.Host + ":" + cfg.Server.Port
		logger.Info("starting server", "address", address, "environment", cfg.Server.Environment)
		if err := e.Start(address); err != nil && err != http.ErrServerClosed {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}
}

func buildServer(cfg *config.Config, db *database.DB, cryptor *vault.Vault) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout
	e.Validator = handlers.NewCustomValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.NewRateLimiter(cfg.Server.RateLimitPerSec, cfg.Server.RateLimitPerSec*2).Middleware())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
	}))

	transactionRepo := repositories.NewTransactionRepository(db.DB)
	categoryRepo := repositories.NewCategoryRepository(db.DB)
	payeeRepo := repositories.NewPayeeRepository(db.DB)
	mappingRepo := repositories.NewMappingRepository(db.DB)
	budgetRepo := repositories.NewBudgetRepository(db.DB)
	maintenanceRepo := repositories.NewMaintenanceRepository(db.DB)

	metrics := services.NewPrometheusMetrics()
	parser := services.NewFormatParser()
	detector := services.NewDuplicateDetector()
	resolver := services.NewMappingResolver(cryptor)
	committer := services.NewImportCommitter(transactionRepo, mappingRepo, cryptor, metrics)
	preloader := services.NewTransactionPreloader(
		transactionRepo, categoryRepo, payeeRepo, mappingRepo,
		cryptor, resolver, metrics, cfg.Import.DecryptBatchSize,
	)

	healthHandler := handlers.NewHealthCheckHandler(db.DB)
	importHandler := handlers.NewImportHandler(
		parser, detector, resolver, committer, preloader,
		categoryRepo, payeeRepo, mappingRepo, cryptor, metrics,
		cfg.Import.MaxRowsPerImport,
	)
	transactionHandler := handlers.NewTransactionHandler(transactionRepo, preloader, cryptor)
	categoryHandler := handlers.NewCategoryHandler(categoryRepo, transactionRepo, cryptor)
	payeeHandler := handlers.NewPayeeHandler(payeeRepo, transactionRepo, cryptor)
	mappingHandler := handlers.NewMappingHandler(mappingRepo, categoryRepo, cryptor)
	budgetHandler := handlers.NewBudgetHandler(budgetRepo, categoryRepo, cryptor)
	maintenanceHandler := handlers.NewMaintenanceHandler(maintenanceRepo)

	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")

	api.GET("/import/formats", importHandler.ListFormats)
	api.POST("/import/parse", importHandler.ParseCSV)
	api.GET("/import/review", importHandler.GetReview)
	api.POST("/import/review/command", importHandler.ApplyCommand)
	api.POST("/import/commit", importHandler.Commit)

	api.GET("/transactions", transactionHandler.ListTransactions)
	api.PUT("/transactions/:id", transactionHandler.UpdateTransaction)
	api.DELETE("/transactions/:id", transactionHandler.DeleteTransaction)

	api.GET("/categories", categoryHandler.ListCategories)
	api.POST("/categories", categoryHandler.CreateCategory)
	api.PUT("/categories/:id", categoryHandler.UpdateCategory)
	api.DELETE("/categories/:id", categoryHandler.DeleteCategory)

	api.GET("/payees", payeeHandler.ListPayees)
	api.POST("/payees", payeeHandler.CreatePayee)
	api.PUT("/payees/:id", payeeHandler.UpdatePayee)
	api.DELETE("/payees/:id", payeeHandler.DeletePayee)

	api.GET("/mappings/descriptions", mappingHandler.ListDescriptionMappings)
	api.PUT("/mappings/descriptions", mappingHandler.SetDescriptionMapping)
	api.DELETE("/mappings/descriptions/:description", mappingHandler.DeleteDescriptionMapping)
	api.GET("/mappings/accounts", mappingHandler.ListAccountMappings)
	api.PUT("/mappings/accounts", mappingHandler.SetAccountMapping)

	api.GET("/budgets/:month", budgetHandler.ListBudgets)
	api.PUT("/budgets", budgetHandler.SetBudget)

	api.DELETE("/maintenance/transactions", maintenanceHandler.ClearTransactions)
	api.DELETE("/maintenance/mappings", maintenanceHandler.ClearMappings)
	api.DELETE("/maintenance/all", maintenanceHandler.ClearAllData)

	if cfg.IsDevelopment() {
		devHandler := handlers.NewDevHandler(categoryRepo, parser, committer, cryptor, true)
		api.POST("/dev/seed", devHandler.SeedSampleData)
	}

	return e
}
