package handler

import (
	"net/http"

	"github.com/financefusion/finance-fusion-go/internal/domain"
	"github.com/financefusion/finance-fusion-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ============================================================
// Transactions — GET/POST /transactions, PUT/DELETE /transactions/{id}
// ============================================================

func listTransactionsHandler(svc *service.ExpenseService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /transactions")
		defer span.End()

		txns, err := svc.ListTransactions(ctx, UserIDFromContext(ctx))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		if txns == nil {
			txns = []domain.Transaction{}
		}

		writeJSON(w, http.StatusOK, txns)
	}
}

func getTransactionHandler(svc *service.ExpenseService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /transactions/{id}")
		defer span.End()

		tx, err := svc.GetTransaction(ctx, UserIDFromContext(ctx), chi.URLParam(r, "id"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, tx)
	}
}

func createTransactionHandler(svc *service.ExpenseService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /transactions")
		defer span.End()

		var input domain.TransactionInput
		if err := decodeJSON(r, &input); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		created, err := svc.CreateTransaction(ctx, UserIDFromContext(ctx), &input)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusCreated, created)
	}
}

func updateTransactionHandler(svc *service.ExpenseService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /transactions/{id}")
		defer span.End()

		id := chi.URLParam(r, "id")

		var input domain.TransactionInput
		if err := decodeJSON(r, &input); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		updated, err := svc.UpdateTransaction(ctx, UserIDFromContext(ctx), id, &input)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, updated)
	}
}

func deleteTransactionHandler(svc *service.ExpenseService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /transactions/{id}")
		defer span.End()

		id := chi.URLParam(r, "id")

		if err := svc.DeleteTransaction(ctx, UserIDFromContext(ctx), id); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, domain.SuccessResponse{Message: "transaction deleted"})
	}
}
