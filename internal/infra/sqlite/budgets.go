package sqlite

import (
	"context"
	"fmt"

	"github.com/financefusion/finance-fusion-go/internal/domain"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// ListBudgets returns every configured budget for the user.
func (s *Store) ListBudgets(ctx context.Context, userID string) ([]domain.Budget, error) {
	ctx, span := tracer.Start(ctx, "Store.ListBudgets")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	rows, err := s.db.QueryContext(ctx,
		`SELECT category, amount FROM budgets WHERE user_id = ? ORDER BY category`, userID)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	budgets := []domain.Budget{}
	for rows.Next() {
		var b domain.Budget
		if err := rows.Scan(&b.Category, &b.Amount); err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

// UpsertBudget creates the budget for (user, category) or replaces its
// amount when one already exists.
func (s *Store) UpsertBudget(ctx context.Context, userID string, budget *domain.Budget) (*domain.Budget, error) {
	ctx, span := tracer.Start(ctx, "Store.UpsertBudget")
	defer span.End()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO budgets (id, user_id, category, amount)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, category) DO UPDATE SET amount = excluded.amount`,
		uuid.NewString(), userID, budget.Category, budget.Amount,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert budget: %w", err)
	}
	return budget, nil
}
