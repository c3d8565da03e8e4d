package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/financefusion/finance-fusion-go/internal/domain"

	"github.com/google/uuid"
)

// GetUserByEmail returns the account for the email, or (nil, nil) when
// no account matches.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "Store.GetUserByEmail")
	defer span.End()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, email, full_name, password_hash, created_at
		FROM users WHERE email = ?`, strings.ToLower(email))

	return scanUser(row)
}

// GetUserByID returns the account for the id, or (nil, nil) when absent.
func (s *Store) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "Store.GetUserByID")
	defer span.End()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, email, full_name, password_hash, created_at
		FROM users WHERE id = ?`, id)

	return scanUser(row)
}

// CreateUser inserts a new account. A duplicate email surfaces as
// domain.ErrConflict.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "Store.CreateUser")
	defer span.End()

	user.ID = uuid.NewString()
	user.Email = strings.ToLower(user.Email)
	user.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, full_name, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		user.ID, user.Email, user.FullName, user.PasswordHash,
		user.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, &domain.ErrConflict{Message: "email already registered"}
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func scanUser(row *sql.Row) (*domain.User, error) {
	var (
		u         domain.User
		createdAt string
	)
	err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.PasswordHash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}

	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		u.CreatedAt = t
	} else if t, err := time.Parse("2006-01-02 15:04:05", createdAt); err == nil {
		u.CreatedAt = t
	}
	return &u, nil
}
