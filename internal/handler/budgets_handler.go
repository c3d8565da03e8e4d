package handler

import (
	"net/http"

	"github.com/financefusion/finance-fusion-go/internal/domain"
	"github.com/financefusion/finance-fusion-go/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Budgets — GET/POST /budgets
// ============================================================

func listBudgetsHandler(svc *service.ExpenseService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /budgets")
		defer span.End()

		budgets, err := svc.ListBudgets(ctx, UserIDFromContext(ctx))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		if budgets == nil {
			budgets = []domain.Budget{}
		}

		writeJSON(w, http.StatusOK, budgets)
	}
}

// setBudgetHandler upserts the limit for one category; posting the same
// category twice replaces the amount.
func setBudgetHandler(svc *service.ExpenseService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /budgets")
		defer span.End()

		var budget domain.Budget
		if err := decodeJSON(r, &budget); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		saved, err := svc.SetBudget(ctx, UserIDFromContext(ctx), &budget)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusCreated, saved)
	}
}
