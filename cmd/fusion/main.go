package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/financefusion/finance-fusion-go/internal/config"
	"github.com/financefusion/finance-fusion-go/internal/handler"
	"github.com/financefusion/finance-fusion-go/internal/infra/cache"
	"github.com/financefusion/finance-fusion-go/internal/infra/client"
	"github.com/financefusion/finance-fusion-go/internal/infra/observability"
	"github.com/financefusion/finance-fusion-go/internal/infra/resilience"
	"github.com/financefusion/finance-fusion-go/internal/infra/sqlite"
	"github.com/financefusion/finance-fusion-go/internal/port"
	"github.com/financefusion/finance-fusion-go/internal/service"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = godotenv.Load()

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.String("db_path", cfg.DBPath),
		zap.Bool("remote_views", cfg.RemoteAPIURL != ""),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Duration("initial_backoff", cfg.InitialBackoff),
		zap.Duration("jwt_access_ttl", cfg.JWTAccessTTL),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "finance-fusion")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Cache ---
	viewCache := cache.New[any](cfg.CacheTTL)

	// --- Store ---
	store, err := sqlite.Open(cfg.DBPath, logger)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer store.Close()

	// --- View data sources ---
	// Default: read views straight from the local store. With
	// REMOTE_API_URL set, views are computed from another Finance
	// Fusion deployment instead.
	var txSource port.TransactionSource = store
	var budgetSource port.BudgetSource = store

	if cfg.RemoteAPIURL != "" {
		logger.Info("using remote API as view data source",
			zap.String("remote_api_url", cfg.RemoteAPIURL),
		)
		resilienceCfg := resilience.Config{
			MaxRetries:     cfg.MaxRetries,
			InitialBackoff: cfg.InitialBackoff,
			MaxConcurrency: cfg.MaxConcurrency,
		}
		cb := resilience.NewCircuitBreaker("remote-api", logger)
		httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

		remote := client.New(httpClient, cfg.RemoteAPIURL, cb, resilienceCfg)
		remote.SetToken(cfg.RemoteAPIToken)
		txSource = remote
		budgetSource = remote
	}

	// --- Services ---
	authSvc := service.NewAuthService(store, cfg.JWTSecret, cfg.JWTAccessTTL, logger)
	viewSvc := service.NewViewService(txSource, budgetSource, viewCache, metrics, logger)
	expenseSvc := service.NewExpenseService(store, store, viewSvc, logger)

	// --- Router ---
	router := handler.NewRouter(authSvc, expenseSvc, viewSvc, store, metrics, logger)

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
