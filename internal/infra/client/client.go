// Package client is an HTTP client for a remote Finance Fusion API. It
// satisfies the same source ports as the local SQLite store, so the view
// layer can be pointed at another deployment instead of the local
// database.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/financefusion/finance-fusion-go/internal/domain"
	"github.com/financefusion/finance-fusion-go/internal/infra/resilience"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("client")

// Client calls a remote Finance Fusion API with retry and a circuit
// breaker. It holds the bearer token issued at login; all transaction and
// budget calls are scoped to that token's user.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	cb         *gobreaker.CircuitBreaker
	bh         *resilience.Bulkhead
	cfg        resilience.Config
}

// New creates a remote API client. Concurrent calls are bounded by a
// bulkhead sized from cfg.MaxConcurrency.
func New(httpClient *http.Client, baseURL string, cb *gobreaker.CircuitBreaker, cfg resilience.Config) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		cb:         cb,
		bh:         resilience.NewBulkhead(cfg.MaxConcurrency),
		cfg:        cfg,
	}
}

// SetToken installs the bearer token used on authenticated calls.
func (c *Client) SetToken(token string) {
	c.token = token
}

// do executes one request and decodes the JSON response into out (when
// out is non-nil).
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return &domain.ErrUnauthorized{Message: "invalid credentials"}
	case resp.StatusCode == http.StatusNotFound:
		return &domain.ErrNotFound{Resource: "resource", ID: path}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		payload, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("api returned status %d: %s", resp.StatusCode, string(payload))
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// classify marks responses a retry cannot fix, so the backoff loop
// returns them straight away instead of hammering the upstream.
func classify(err error) error {
	var unauthorized *domain.ErrUnauthorized
	var notFound *domain.ErrNotFound
	if errors.As(err, &unauthorized) || errors.As(err, &notFound) {
		return resilience.Permanent(err)
	}
	return err
}

// getJSON wraps a read in the bulkhead and breaker plus retry; reads are
// idempotent.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	if err := c.bh.Acquire(ctx); err != nil {
		return err
	}
	defer c.bh.Release()

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			return classify(c.do(ctx, http.MethodGet, path, nil, "", out))
		})
	})
	return err
}

// mutate wraps a write in the bulkhead and breaker only; writes are not
// retried because creates are not idempotent.
func (c *Client) mutate(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(buf)
	}

	if err := c.bh.Acquire(ctx); err != nil {
		return err
	}
	defer c.bh.Release()

	_, err := c.cb.Execute(func() (any, error) {
		return nil, c.do(ctx, method, path, body, "application/json", out)
	})
	return err
}

// ============================================================
// Auth
// ============================================================

// Login exchanges credentials for a bearer token (form-encoded, the
// username field carries the email) and installs it on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.TokenResponse, error) {
	ctx, span := tracer.Start(ctx, "Client.Login")
	defer span.End()

	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var token domain.TokenResponse
	_, err := c.cb.Execute(func() (any, error) {
		return nil, c.do(ctx, http.MethodPost, "/api/v1/auth/login",
			strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", &token)
	})
	if err != nil {
		return nil, err
	}
	c.token = token.AccessToken
	return &token, nil
}

// Signup creates a new account.
func (c *Client) Signup(ctx context.Context, req *domain.SignupRequest) (*domain.SignupResponse, error) {
	ctx, span := tracer.Start(ctx, "Client.Signup")
	defer span.End()

	var resp domain.SignupResponse
	if err := c.mutate(ctx, http.MethodPost, "/api/v1/auth/signup", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ============================================================
// Transactions (port.TransactionSource + mutations)
// ============================================================

// ListTransactions fetches the full transaction list. The userID argument
// is part of the source port; the remote API scopes by token instead, so
// it is not sent.
func (c *Client) ListTransactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "Client.ListTransactions")
	defer span.End()

	var txns []domain.Transaction
	if err := c.getJSON(ctx, "/transactions", &txns); err != nil {
		return nil, &domain.ErrExternalService{Service: "transactions", Err: err}
	}
	return txns, nil
}

// CreateTransaction logs a new expense.
func (c *Client) CreateTransaction(ctx context.Context, input *domain.TransactionInput) (*domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "Client.CreateTransaction")
	defer span.End()

	var tx domain.Transaction
	if err := c.mutate(ctx, http.MethodPost, "/transactions", input, &tx); err != nil {
		return nil, &domain.ErrExternalService{Service: "transactions", Err: err}
	}
	return &tx, nil
}

// UpdateTransaction replaces the fields of an existing transaction.
func (c *Client) UpdateTransaction(ctx context.Context, id string, input *domain.TransactionInput) (*domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "Client.UpdateTransaction")
	defer span.End()

	var tx domain.Transaction
	if err := c.mutate(ctx, http.MethodPut, "/transactions/"+url.PathEscape(id), input, &tx); err != nil {
		return nil, &domain.ErrExternalService{Service: "transactions", Err: err}
	}
	return &tx, nil
}

// DeleteTransaction removes a transaction.
func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Client.DeleteTransaction")
	defer span.End()

	if err := c.mutate(ctx, http.MethodDelete, "/transactions/"+url.PathEscape(id), nil, nil); err != nil {
		return &domain.ErrExternalService{Service: "transactions", Err: err}
	}
	return nil
}

// ============================================================
// Budgets (port.BudgetSource + mutations)
// ============================================================

// ListBudgets fetches the configured budgets.
func (c *Client) ListBudgets(ctx context.Context, userID string) ([]domain.Budget, error) {
	ctx, span := tracer.Start(ctx, "Client.ListBudgets")
	defer span.End()

	var budgets []domain.Budget
	if err := c.getJSON(ctx, "/budgets", &budgets); err != nil {
		return nil, &domain.ErrExternalService{Service: "budgets", Err: err}
	}
	return budgets, nil
}

// SetBudget upserts the monthly limit for one category.
func (c *Client) SetBudget(ctx context.Context, budget *domain.Budget) (*domain.Budget, error) {
	ctx, span := tracer.Start(ctx, "Client.SetBudget")
	defer span.End()

	var out domain.Budget
	if err := c.mutate(ctx, http.MethodPost, "/budgets", budget, &out); err != nil {
		return nil, &domain.ErrExternalService{Service: "budgets", Err: err}
	}
	return &out, nil
}
