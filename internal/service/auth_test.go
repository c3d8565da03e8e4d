package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/financefusion/finance-fusion-go/internal/domain"
	"github.com/financefusion/finance-fusion-go/internal/service"

	"go.uber.org/zap"
)

// --- Mocks ---

type mockUserStore struct {
	users map[string]*domain.User
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: map[string]*domain.User{}}
}

func (m *mockUserStore) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	return m.users[strings.ToLower(email)], nil
}

func (m *mockUserStore) GetUserByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "user", ID: id}
}

func (m *mockUserStore) CreateUser(_ context.Context, user *domain.User) (*domain.User, error) {
	user.ID = "user-" + user.Email
	m.users[user.Email] = user
	return user, nil
}

func newAuthService(store *mockUserStore) *service.AuthService {
	return service.NewAuthService(store, "test-secret", time.Hour, zap.NewNop())
}

// --- Tests ---

func TestSignupAndLogin_Roundtrip(t *testing.T) {
	store := newMockUserStore()
	svc := newAuthService(store)

	created, err := svc.Signup(context.Background(), &domain.SignupRequest{
		Email:    "Ana@Example.com",
		Password: "correct-horse",
		FullName: "Ana Lima",
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if created.Email != "ana@example.com" {
		t.Errorf("expected lowercased email, got %q", created.Email)
	}

	token, err := svc.Login(context.Background(), "ana@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token.TokenType != "bearer" {
		t.Errorf("expected token type bearer, got %q", token.TokenType)
	}

	claims, err := svc.ValidateAccessToken(token.AccessToken)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Sub != created.ID {
		t.Errorf("expected sub %q, got %q", created.ID, claims.Sub)
	}
	if claims.Type != "access" {
		t.Errorf("expected access token type, got %q", claims.Type)
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	store := newMockUserStore()
	svc := newAuthService(store)

	req := &domain.SignupRequest{Email: "dup@example.com", Password: "long-enough", FullName: "Dup"}
	if _, err := svc.Signup(context.Background(), req); err != nil {
		t.Fatalf("first signup: %v", err)
	}

	_, err := svc.Signup(context.Background(), req)
	var conflict *domain.ErrConflict
	if !errors.As(err, &conflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestSignup_ShortPassword(t *testing.T) {
	svc := newAuthService(newMockUserStore())

	_, err := svc.Signup(context.Background(), &domain.SignupRequest{
		Email:    "a@example.com",
		Password: "short",
	})

	var ve *domain.ErrValidation
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	store := newMockUserStore()
	svc := newAuthService(store)

	if _, err := svc.Signup(context.Background(), &domain.SignupRequest{
		Email:    "b@example.com",
		Password: "right-password",
	}); err != nil {
		t.Fatalf("signup: %v", err)
	}

	_, err := svc.Login(context.Background(), "b@example.com", "wrong-password")
	var unauthorized *domain.ErrUnauthorized
	if !errors.As(err, &unauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := newAuthService(newMockUserStore())

	_, err := svc.Login(context.Background(), "ghost@example.com", "whatever-pass")
	var unauthorized *domain.ErrUnauthorized
	if !errors.As(err, &unauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestValidateAccessToken_Garbage(t *testing.T) {
	svc := newAuthService(newMockUserStore())

	_, err := svc.ValidateAccessToken("not-a-jwt")
	var unauthorized *domain.ErrUnauthorized
	if !errors.As(err, &unauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}
