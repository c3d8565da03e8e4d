// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the domain/service
// layer from concrete implementations.
package port

import (
	"context"

	"github.com/financefusion/finance-fusion-go/internal/domain"
)

// TransactionSource supplies the full transaction list for a user. The
// view layer only ever reads through this interface; it is satisfied by
// both the local SQLite store and the remote API client.
type TransactionSource interface {
	ListTransactions(ctx context.Context, userID string) ([]domain.Transaction, error)
}

// BudgetSource supplies the configured budgets for a user.
type BudgetSource interface {
	ListBudgets(ctx context.Context, userID string) ([]domain.Budget, error)
}

// TransactionStore owns transaction persistence.
type TransactionStore interface {
	TransactionSource
	GetTransaction(ctx context.Context, userID, id string) (*domain.Transaction, error)
	CreateTransaction(ctx context.Context, userID string, tx *domain.Transaction) (*domain.Transaction, error)
	UpdateTransaction(ctx context.Context, userID string, tx *domain.Transaction) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, id string) error
}

// BudgetStore owns budget persistence. UpsertBudget replaces the amount
// when a budget for (user, category) already exists.
type BudgetStore interface {
	BudgetSource
	UpsertBudget(ctx context.Context, userID string, budget *domain.Budget) (*domain.Budget, error)
}

// UserStore owns account persistence. GetUserByEmail returns (nil, nil)
// when no account matches.
type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
}

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}
