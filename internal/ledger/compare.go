package ledger

import (
	"sort"

	"github.com/financefusion/finance-fusion-go/internal/domain"
)

// Compare merges current-month and previous-month category aggregates into
// one table: one row per category appearing in either month (union, not
// intersection), absent amounts defaulting to 0. Rows are sorted
// alphabetically so the output is deterministic.
func Compare(current, previous map[string]float64) []domain.ComparisonRow {
	names := make(map[string]struct{}, len(current)+len(previous))
	for name := range current {
		names[name] = struct{}{}
	}
	for name := range previous {
		names[name] = struct{}{}
	}

	rows := make([]domain.ComparisonRow, 0, len(names))
	for name := range names {
		rows = append(rows, domain.ComparisonRow{
			Name:         name,
			CurrentMonth: current[name],
			LastMonth:    previous[name],
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows
}
