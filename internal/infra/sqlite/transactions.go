package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/financefusion/finance-fusion-go/internal/domain"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// ListTransactions returns every transaction for the user in insertion
// order. The grouping engine depends on that order being stable.
func (s *Store) ListTransactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "Store.ListTransactions")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, amount, category, description, source_type, is_expense, date
		FROM transactions
		WHERE user_id = ?
		ORDER BY rowid`, userID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

// GetTransaction returns one transaction, scoped to the owning user.
func (s *Store) GetTransaction(ctx context.Context, userID, id string) (*domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "Store.GetTransaction")
	defer span.End()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, amount, category, description, source_type, is_expense, date
		FROM transactions
		WHERE user_id = ? AND id = ?`, userID, id)

	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.ErrNotFound{Resource: "transaction", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTransaction inserts the transaction and assigns its id.
func (s *Store) CreateTransaction(ctx context.Context, userID string, tx *domain.Transaction) (*domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "Store.CreateTransaction")
	defer span.End()

	tx.ID = uuid.NewString()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (id, user_id, amount, category, description, source_type, is_expense, date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, userID, tx.Amount, tx.Category, tx.Description, tx.SourceType,
		boolToInt(tx.IsExpense), tx.Date.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}
	return tx, nil
}

// UpdateTransaction overwrites the client-settable fields of an existing
// transaction.
func (s *Store) UpdateTransaction(ctx context.Context, userID string, tx *domain.Transaction) (*domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "Store.UpdateTransaction")
	defer span.End()

	res, err := s.db.ExecContext(ctx, `
		UPDATE transactions
		SET amount = ?, category = ?, description = ?, source_type = ?, is_expense = ?, date = ?
		WHERE user_id = ? AND id = ?`,
		tx.Amount, tx.Category, tx.Description, tx.SourceType,
		boolToInt(tx.IsExpense), tx.Date.UTC().Format(time.RFC3339),
		userID, tx.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update transaction: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, &domain.ErrNotFound{Resource: "transaction", ID: tx.ID}
	}
	return tx, nil
}

// DeleteTransaction removes one transaction, scoped to the owning user.
func (s *Store) DeleteTransaction(ctx context.Context, userID, id string) error {
	ctx, span := tracer.Start(ctx, "Store.DeleteTransaction")
	defer span.End()

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &domain.ErrNotFound{Resource: "transaction", ID: id}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (domain.Transaction, error) {
	var (
		t         domain.Transaction
		isExpense int
		date      string
	)
	if err := row.Scan(&t.ID, &t.Amount, &t.Category, &t.Description,
		&t.SourceType, &isExpense, &date); err != nil {
		return domain.Transaction{}, err
	}

	parsed, err := time.Parse(time.RFC3339, date)
	if err != nil {
		// Older rows may carry a bare date.
		parsed, err = time.Parse("2006-01-02", date)
		if err != nil {
			return domain.Transaction{}, fmt.Errorf("parse transaction date %q: %w", date, err)
		}
	}
	t.Date = parsed
	t.IsExpense = isExpense != 0
	return t, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
