package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/financefusion/finance-fusion-go/internal/domain"
	"github.com/financefusion/finance-fusion-go/internal/infra/sqlite"

	"go.uber.org/zap"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()

	store, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), zap.NewNop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func createUser(t *testing.T, store *sqlite.Store, email string) *domain.User {
	t.Helper()

	user, err := store.CreateUser(context.Background(), &domain.User{
		Email:        email,
		FullName:     "Test User",
		PasswordHash: "hash",
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestTransactions_CRUD(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	user := createUser(t, store, "crud@example.com")

	date := time.Date(2025, time.October, 5, 12, 0, 0, 0, time.UTC)
	created, err := store.CreateTransaction(ctx, user.ID, &domain.Transaction{
		Amount:      42.5,
		Category:    "Food",
		Description: "Lunch",
		Date:        date,
		SourceType:  domain.DefaultSourceType,
		IsExpense:   true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected assigned id")
	}

	got, err := store.GetTransaction(ctx, user.ID, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Amount != 42.5 || got.Category != "Food" || !got.Date.Equal(date) {
		t.Errorf("unexpected transaction: %+v", got)
	}

	got.Amount = 50
	if _, err := store.UpdateTransaction(ctx, user.ID, got); err != nil {
		t.Fatalf("update: %v", err)
	}
	updated, err := store.GetTransaction(ctx, user.ID, created.ID)
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if updated.Amount != 50 {
		t.Errorf("expected amount 50, got %f", updated.Amount)
	}

	if err := store.DeleteTransaction(ctx, user.ID, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	_, err = store.GetTransaction(ctx, user.ID, created.ID)
	var notFound *domain.ErrNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestListTransactions_InsertionOrder(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	user := createUser(t, store, "order@example.com")

	// Insert with dates out of order; the list must keep insertion order.
	dates := []time.Time{
		time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC),
	}
	var ids []string
	for i, d := range dates {
		tx, err := store.CreateTransaction(ctx, user.ID, &domain.Transaction{
			Amount: float64(i + 1), Category: "Misc", Description: "x",
			Date: d, SourceType: domain.DefaultSourceType, IsExpense: true,
		})
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		ids = append(ids, tx.ID)
	}

	txns, err := store.ListTransactions(ctx, user.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(txns) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(txns))
	}
	for i := range ids {
		if txns[i].ID != ids[i] {
			t.Errorf("position %d: expected %s, got %s", i, ids[i], txns[i].ID)
		}
	}
}

func TestTransactions_ScopedToUser(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	alice := createUser(t, store, "alice@example.com")
	bob := createUser(t, store, "bob@example.com")

	tx, err := store.CreateTransaction(ctx, alice.ID, &domain.Transaction{
		Amount: 10, Category: "Food", Description: "x",
		Date: time.Now().UTC(), SourceType: domain.DefaultSourceType, IsExpense: true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = store.GetTransaction(ctx, bob.ID, tx.ID)
	var notFound *domain.ErrNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("expected not found across users, got %v", err)
	}

	txns, err := store.ListTransactions(ctx, bob.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(txns) != 0 {
		t.Errorf("expected empty list for other user, got %d", len(txns))
	}
}

func TestUpsertBudget_ReplacesAmount(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	user := createUser(t, store, "budget@example.com")

	if _, err := store.UpsertBudget(ctx, user.ID, &domain.Budget{Category: "Food", Amount: 100}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if _, err := store.UpsertBudget(ctx, user.ID, &domain.Budget{Category: "Food", Amount: 250}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	budgets, err := store.ListBudgets(ctx, user.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(budgets) != 1 {
		t.Fatalf("expected 1 budget, got %d", len(budgets))
	}
	if budgets[0].Amount != 250 {
		t.Errorf("expected amount 250, got %f", budgets[0].Amount)
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	createUser(t, store, "dup@example.com")
	_, err := store.CreateUser(ctx, &domain.User{
		Email: "dup@example.com", FullName: "Again", PasswordHash: "hash",
	})

	var conflict *domain.ErrConflict
	if !errors.As(err, &conflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestGetUserByEmail_AbsentReturnsNil(t *testing.T) {
	store := newStore(t)

	user, err := store.GetUserByEmail(context.Background(), "ghost@example.com")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user != nil {
		t.Errorf("expected nil user, got %+v", user)
	}
}
