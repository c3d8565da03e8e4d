package service

import (
	"context"
	"fmt"
	"time"

	"github.com/financefusion/finance-fusion-go/internal/domain"
	"github.com/financefusion/finance-fusion-go/internal/port"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var expenseTracer = otel.Tracer("service/expenses")

// viewInvalidator drops cached derived views for a user. Satisfied by
// ViewService; every mutation goes through it so views never serve
// stale data after a write.
type viewInvalidator interface {
	Invalidate(userID string)
}

// ExpenseService owns transaction and budget writes plus the raw list
// reads. Derived views live in ViewService.
type ExpenseService struct {
	txStore     port.TransactionStore
	budgetStore port.BudgetStore
	views       viewInvalidator
	logger      *zap.Logger
}

// NewExpenseService creates a new expense service.
func NewExpenseService(txStore port.TransactionStore, budgetStore port.BudgetStore, views viewInvalidator, logger *zap.Logger) *ExpenseService {
	return &ExpenseService{
		txStore:     txStore,
		budgetStore: budgetStore,
		views:       views,
		logger:      logger,
	}
}

// ============================================================
// Transactions
// ============================================================

// ListTransactions returns the user's transactions in insertion order.
func (s *ExpenseService) ListTransactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	ctx, span := expenseTracer.Start(ctx, "ExpenseService.ListTransactions")
	defer span.End()

	txns, err := s.txStore.ListTransactions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txns, nil
}

// GetTransaction returns one transaction by id.
func (s *ExpenseService) GetTransaction(ctx context.Context, userID, id string) (*domain.Transaction, error) {
	ctx, span := expenseTracer.Start(ctx, "ExpenseService.GetTransaction")
	defer span.End()

	return s.txStore.GetTransaction(ctx, userID, id)
}

// CreateTransaction logs a new expense, filling in the quick-entry
// defaults for any field the caller omitted.
func (s *ExpenseService) CreateTransaction(ctx context.Context, userID string, input *domain.TransactionInput) (*domain.Transaction, error) {
	ctx, span := expenseTracer.Start(ctx, "ExpenseService.CreateTransaction")
	defer span.End()

	tx, err := buildTransaction(input)
	if err != nil {
		return nil, err
	}

	created, err := s.txStore.CreateTransaction(ctx, userID, tx)
	if err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}

	s.views.Invalidate(userID)
	s.logger.Info("transaction created",
		zap.String("user_id", userID),
		zap.String("transaction_id", created.ID),
		zap.String("category", created.Category),
		zap.Float64("amount", created.Amount),
	)
	return created, nil
}

// UpdateTransaction replaces the fields of an existing transaction,
// applying the same defaults as create.
func (s *ExpenseService) UpdateTransaction(ctx context.Context, userID, id string, input *domain.TransactionInput) (*domain.Transaction, error) {
	ctx, span := expenseTracer.Start(ctx, "ExpenseService.UpdateTransaction")
	defer span.End()

	tx, err := buildTransaction(input)
	if err != nil {
		return nil, err
	}
	tx.ID = id

	updated, err := s.txStore.UpdateTransaction(ctx, userID, tx)
	if err != nil {
		return nil, err
	}

	s.views.Invalidate(userID)
	s.logger.Info("transaction updated",
		zap.String("user_id", userID),
		zap.String("transaction_id", id),
	)
	return updated, nil
}

// DeleteTransaction removes a transaction.
func (s *ExpenseService) DeleteTransaction(ctx context.Context, userID, id string) error {
	ctx, span := expenseTracer.Start(ctx, "ExpenseService.DeleteTransaction")
	defer span.End()

	if err := s.txStore.DeleteTransaction(ctx, userID, id); err != nil {
		return err
	}

	s.views.Invalidate(userID)
	s.logger.Info("transaction deleted",
		zap.String("user_id", userID),
		zap.String("transaction_id", id),
	)
	return nil
}

// buildTransaction validates the input and applies the quick-entry
// defaults: category normalized to the canonical list, description
// "Cash Expense", source type CASH, date now, is_expense true.
func buildTransaction(input *domain.TransactionInput) (*domain.Transaction, error) {
	if input.Amount < 0 {
		return nil, &domain.ErrValidation{Field: "amount", Message: "amount must not be negative"}
	}

	tx := &domain.Transaction{
		Amount:      input.Amount,
		Category:    domain.NormalizeCategory(input.Category),
		Description: input.Description,
		SourceType:  input.SourceType,
		IsExpense:   true,
	}
	if tx.Description == "" {
		tx.Description = domain.DefaultDescription
	}
	if tx.SourceType == "" {
		tx.SourceType = domain.DefaultSourceType
	}
	if input.Date != nil {
		tx.Date = input.Date.UTC()
	} else {
		tx.Date = time.Now().UTC()
	}
	if input.IsExpense != nil {
		tx.IsExpense = *input.IsExpense
	}
	return tx, nil
}

// ============================================================
// Budgets
// ============================================================

// ListBudgets returns the user's configured monthly limits.
func (s *ExpenseService) ListBudgets(ctx context.Context, userID string) ([]domain.Budget, error) {
	ctx, span := expenseTracer.Start(ctx, "ExpenseService.ListBudgets")
	defer span.End()

	budgets, err := s.budgetStore.ListBudgets(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	return budgets, nil
}

// SetBudget creates or replaces the monthly limit for one category.
// The category must be on the canonical list; budgets for free-form
// categories would never match any spend.
func (s *ExpenseService) SetBudget(ctx context.Context, userID string, budget *domain.Budget) (*domain.Budget, error) {
	ctx, span := expenseTracer.Start(ctx, "ExpenseService.SetBudget")
	defer span.End()

	if budget.Amount < 0 {
		return nil, &domain.ErrValidation{Field: "amount", Message: "amount must not be negative"}
	}
	if !domain.IsCanonicalCategory(budget.Category) {
		return nil, &domain.ErrValidation{Field: "category", Message: "unknown category"}
	}
	budget.Category = domain.NormalizeCategory(budget.Category)

	saved, err := s.budgetStore.UpsertBudget(ctx, userID, budget)
	if err != nil {
		return nil, fmt.Errorf("upsert budget: %w", err)
	}

	s.views.Invalidate(userID)
	s.logger.Info("budget set",
		zap.String("user_id", userID),
		zap.String("category", saved.Category),
		zap.Float64("amount", saved.Amount),
	)
	return saved, nil
}
