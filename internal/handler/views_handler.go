package handler

import (
	"net/http"

	"github.com/financefusion/finance-fusion-go/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Derived views — GET /views/{dashboard,history,budgets,comparison}
// ============================================================

func dashboardViewHandler(svc *service.ViewService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /views/dashboard")
		defer span.End()

		view, err := svc.Dashboard(ctx, UserIDFromContext(ctx))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

func historyViewHandler(svc *service.ViewService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /views/history")
		defer span.End()

		view, err := svc.History(ctx, UserIDFromContext(ctx))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

func budgetsViewHandler(svc *service.ViewService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /views/budgets")
		defer span.End()

		view, err := svc.Budgets(ctx, UserIDFromContext(ctx))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

func comparisonViewHandler(svc *service.ViewService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /views/comparison")
		defer span.End()

		view, err := svc.Comparison(ctx, UserIDFromContext(ctx))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}
