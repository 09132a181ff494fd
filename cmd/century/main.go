package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/century-soap/century-soap/internal/app"
	"github.com/century-soap/century-soap/internal/auth"
	"github.com/century-soap/century-soap/internal/catalog"
	"github.com/century-soap/century-soap/internal/clients"
	"github.com/century-soap/century-soap/internal/inventory"
	"github.com/century-soap/century-soap/internal/observability"
	"github.com/century-soap/century-soap/internal/platform/cache"
	"github.com/century-soap/century-soap/internal/platform/db"
	"github.com/century-soap/century-soap/internal/reports"
	"github.com/century-soap/century-soap/internal/sales"
	"github.com/century-soap/century-soap/internal/shared"
	"github.com/century-soap/century-soap/internal/users"
	"github.com/century-soap/century-soap/jobs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	metrics := observability.NewMetrics()
	audit := shared.NewAuditLogger(pool)

	authRepo := auth.NewRepository(pool)
	authService := auth.NewService(authRepo, redisClient, cfg.SessionTTL)
	authHandler := auth.NewHandler(logger, authService)

	usersRepo := users.NewRepository(pool)
	usersService := users.NewService(usersRepo, audit)
	usersHandler := users.NewHandler(logger, usersService)

	catalogRepo := catalog.NewRepository(pool)
	catalogService := catalog.NewService(catalogRepo, audit)
	catalogHandler := catalog.NewHandler(logger, catalogService)

	inventoryRepo := inventory.NewRepository(pool)
	inventoryService := inventory.NewService(inventoryRepo, audit, metrics)
	inventoryHandler := inventory.NewHandler(logger, inventoryService)

	clientsRepo := clients.NewRepository(pool)
	clientsService := clients.NewService(clientsRepo, audit)
	clientsHandler := clients.NewHandler(logger, clientsService)

	reportCache := reports.NewCache(redisClient, cfg.ReportCacheTTL)
	salesRepo := sales.NewRepository(pool)
	salesService := sales.NewService(salesRepo, audit, reportCache, metrics, sales.Config{
		MirrorSaleAudit: cfg.MirrorSaleAudit,
	})
	salesHandler := sales.NewHandler(logger, salesService)

	reportsService := reports.NewService(salesRepo, clientsRepo, catalogRepo, reportCache)
	reportsHandler := reports.NewHandler(logger, reportsService)

	jobsClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init job client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobsClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()
	jobsHandler := jobs.NewHandler(logger, jobsClient)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		AuthService:      authService,
		AuthHandler:      authHandler,
		CatalogHandler:   catalogHandler,
		InventoryHandler: inventoryHandler,
		SalesHandler:     salesHandler,
		ClientsHandler:   clientsHandler,
		ReportsHandler:   reportsHandler,
		UsersHandler:     usersHandler,
		JobsHandler:      jobsHandler,
		Pool:             pool,
		Metrics:          metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
