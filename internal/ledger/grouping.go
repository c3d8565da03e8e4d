package ledger

import (
	"sort"
	"time"

	"github.com/financefusion/finance-fusion-go/internal/domain"
)

// GroupByYear buckets every transaction into exactly one (year, month)
// slot, keyed by year and English month name. Year and month totals both
// equal the sum of their constituent transactions; transactions inside a
// month keep source order.
func GroupByYear(txns []domain.Transaction) map[int]domain.YearGroup {
	years := make(map[int]domain.YearGroup)
	for _, t := range txns {
		year := t.Date.Year()
		month := t.Date.Month().String()

		yg, ok := years[year]
		if !ok {
			yg = domain.YearGroup{Year: year, Months: make(map[string]domain.MonthGroup)}
		}
		mg := yg.Months[month]

		yg.Total += t.Amount
		mg.Total += t.Amount
		mg.Transactions = append(mg.Transactions, t)

		yg.Months[month] = mg
		years[year] = yg
	}
	return years
}

// SortedYears returns the group's years in descending order, newest first.
func SortedYears(years map[int]domain.YearGroup) []int {
	out := make([]int, 0, len(years))
	for y := range years {
		out = append(out, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

// DefaultExpansion returns the year that should start expanded: the
// current calendar year. No month starts expanded; which years and months
// the user actually has open is view state owned by the caller, reapplied
// after every recompute.
func DefaultExpansion(now time.Time) int {
	return now.Year()
}
