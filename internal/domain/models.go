// Package domain holds the core data model for Finance Fusion:
// transactions, budgets, users, and the derived view types the
// ledger engine produces.
package domain

import "time"

// DefaultDescription is used when a transaction is logged without one.
const DefaultDescription = "Cash Expense"

// DefaultSourceType tags manually entered cash expenses.
const DefaultSourceType = "CASH"

// ============================================================
// Transactions & Budgets
// ============================================================

// Transaction is a single logged expense. The id is assigned by the
// service on create and is opaque to callers.
type Transaction struct {
	ID          string    `json:"id"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	SourceType  string    `json:"source_type"`
	IsExpense   bool      `json:"is_expense"`
}

// TransactionInput carries the client-settable fields of a transaction.
type TransactionInput struct {
	Amount      float64    `json:"amount"`
	Category    string     `json:"category"`
	Description string     `json:"description"`
	Date        *time.Time `json:"date,omitempty"`
	SourceType  string     `json:"source_type"`
	IsExpense   *bool      `json:"is_expense,omitempty"`
}

// Budget is a monthly spending limit for one category.
// An absent budget row means "no limit configured", which the
// variance calculator treats as limit 0 (unconstrained).
type Budget struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// ============================================================
// Users & Auth
// ============================================================

// User is a registered account. The password hash never leaves the store
// layer except for verification.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// SignupRequest creates a new account.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// SignupResponse confirms the created account.
type SignupResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// TokenResponse is returned by the login endpoint.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// ============================================================
// Derived views (never persisted; rebuilt from a fresh fetch)
// ============================================================

// MonthGroup holds one calendar month's transactions in source order,
// with their running total.
type MonthGroup struct {
	Total        float64       `json:"total"`
	Transactions []Transaction `json:"transactions"`
}

// YearGroup holds one calendar year's spend, bucketed by month name.
type YearGroup struct {
	Year   int                   `json:"year"`
	Total  float64               `json:"total"`
	Months map[string]MonthGroup `json:"months"`
}

// CategoryVariance compares actual spend against the configured limit
// for one category in the current month. Percentage is unclamped;
// clamping to 100 is a presentation concern.
type CategoryVariance struct {
	Category   string  `json:"category"`
	Limit      float64 `json:"limit"`
	Spent      float64 `json:"spent"`
	Percentage float64 `json:"percentage"`
	Remaining  float64 `json:"remaining"`
	IsOver     bool    `json:"is_over"`
}

// ComparisonRow is one category's spend in the current month next to the
// previous month.
type ComparisonRow struct {
	Name         string  `json:"name"`
	CurrentMonth float64 `json:"current_month"`
	LastMonth    float64 `json:"last_month"`
}

// DashboardView is the current-month breakdown behind the pie chart.
type DashboardView struct {
	Month      string             `json:"month"`
	Year       int                `json:"year"`
	Total      float64            `json:"total"`
	ByCategory map[string]float64 `json:"by_category"`
}

// HistoryView is the full year → month → transactions hierarchy.
type HistoryView struct {
	Years        map[int]YearGroup `json:"years"`
	YearOrder    []int             `json:"year_order"`
	ExpandedYear int               `json:"expanded_year"`
}

// BudgetView is the per-category variance table for the current month.
type BudgetView struct {
	Month      string             `json:"month"`
	Year       int                `json:"year"`
	Categories []CategoryVariance `json:"categories"`
}

// ComparisonView puts the current and previous calendar month side by side.
type ComparisonView struct {
	Rows []ComparisonRow `json:"rows"`
}

// ServiceMetrics is the snapshot returned by GET /v1/metrics/service.
type ServiceMetrics struct {
	TotalRequests int64   `json:"total_requests"`
	ErrorRate     float64 `json:"error_rate"`
	CacheHitRate  float64 `json:"cache_hit_rate"`
	Period        string  `json:"period"`
}

// SuccessResponse is a generic message payload.
type SuccessResponse struct {
	Message string `json:"message"`
}
