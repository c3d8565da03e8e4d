// Package handler wires the HTTP surface: routing, auth middleware, and
// the translation between domain errors and status codes.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/financefusion/finance-fusion-go/internal/infra/observability"
	"github.com/financefusion/finance-fusion-go/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

// Pinger reports whether the backing data store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewRouter creates the HTTP router with all routes and middleware.
func NewRouter(authSvc *service.AuthService, expenseSvc *service.ExpenseService, viewSvc *service.ViewService, store Pinger, metrics *observability.Metrics, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.MetricsMiddleware(metrics))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler(store))
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
	r.Get("/v1/metrics/service", serviceMetricsHandler(metrics))

	// --- Auth (public) ---
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/signup", signupHandler(authSvc, logger))
		r.Post("/login", loginHandler(authSvc, logger))
	})

	// --- Ledger API (protected) ---
	r.Group(func(r chi.Router) {
		r.Use(JWTAuthMiddleware(authSvc, logger))

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", listTransactionsHandler(expenseSvc, logger))
			r.Post("/", createTransactionHandler(expenseSvc, logger))
			r.Get("/{id}", getTransactionHandler(expenseSvc, logger))
			r.Put("/{id}", updateTransactionHandler(expenseSvc, logger))
			r.Delete("/{id}", deleteTransactionHandler(expenseSvc, logger))
		})

		r.Route("/budgets", func(r chi.Router) {
			r.Get("/", listBudgetsHandler(expenseSvc, logger))
			r.Post("/", setBudgetHandler(expenseSvc, logger))
		})

		r.Route("/views", func(r chi.Router) {
			r.Get("/dashboard", dashboardViewHandler(viewSvc, logger))
			r.Get("/history", historyViewHandler(viewSvc, logger))
			r.Get("/budgets", budgetsViewHandler(viewSvc, logger))
			r.Get("/comparison", comparisonViewHandler(viewSvc, logger))
		})
	})

	return r
}

// ============================================================
// Operational handlers
// ============================================================

type serviceHealth struct {
	Name        string `json:"name"`
	Status      string `json:"status"`
	LatencyMs   int64  `json:"latency_ms"`
	LastChecked string `json:"last_checked"`
}

type healthStatus struct {
	Status   string          `json:"status"`
	Services []serviceHealth `json:"services"`
}

func healthzHandler(store Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		now := time.Now().Format(time.RFC3339)

		services := []serviceHealth{
			{Name: "fusion-api", Status: "healthy", LatencyMs: 0, LastChecked: now},
		}

		if store != nil {
			start := time.Now()
			err := store.Ping(ctx)
			latency := time.Since(start).Milliseconds()
			status := "healthy"
			if err != nil {
				status = "degraded"
			}
			services = append(services, serviceHealth{
				Name: "store", Status: status, LatencyMs: latency, LastChecked: now,
			})
		}

		overall := "healthy"
		for _, s := range services {
			if s.Status == "degraded" {
				overall = "degraded"
			}
		}

		writeJSON(w, http.StatusOK, healthStatus{Status: overall, Services: services})
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func serviceMetricsHandler(metrics *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, metrics.Snapshot())
	}
}
