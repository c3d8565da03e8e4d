// Package ledger is the pure aggregation engine behind the dashboard,
// history, budget, and comparison views. Every function operates on
// already-fetched data and performs no I/O. Empty input is valid: an
// empty transaction set yields all-zero aggregates, never an error.
package ledger

import (
	"time"

	"github.com/financefusion/finance-fusion-go/internal/domain"
)

// MonthWindow returns the subset of txns whose date falls inside the given
// calendar month and year. This is strict month/year equality on the
// transaction date, not a rolling 30-day window.
func MonthWindow(txns []domain.Transaction, month time.Month, year int) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(txns))
	for _, t := range txns {
		if t.Date.Month() == month && t.Date.Year() == year {
			out = append(out, t)
		}
	}
	return out
}

// PreviousMonth returns the calendar month immediately preceding t's month,
// rolling January back to December of the prior year.
func PreviousMonth(t time.Time) (time.Month, int) {
	if t.Month() == time.January {
		return time.December, t.Year() - 1
	}
	return t.Month() - 1, t.Year()
}
