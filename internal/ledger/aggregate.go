package ledger

import "github.com/financefusion/finance-fusion-go/internal/domain"

// SumByCategory aggregates transaction amounts per normalized category,
// covering only categories present in the input. Used for charting, where
// empty slices are noise.
func SumByCategory(txns []domain.Transaction) map[string]float64 {
	sums := make(map[string]float64)
	for _, t := range txns {
		sums[domain.NormalizeCategory(t.Category)] += t.Amount
	}
	return sums
}

// SumByCategorySeeded aggregates like SumByCategory but pre-seeds every
// canonical category with zero, so budget comparisons always see the full
// category list even when nothing was spent.
func SumByCategorySeeded(txns []domain.Transaction) map[string]float64 {
	sums := make(map[string]float64, len(domain.Categories))
	for _, c := range domain.Categories {
		sums[c] = 0
	}
	for _, t := range txns {
		sums[domain.NormalizeCategory(t.Category)] += t.Amount
	}
	return sums
}

// Total sums all transaction amounts.
func Total(txns []domain.Transaction) float64 {
	var total float64
	for _, t := range txns {
		total += t.Amount
	}
	return total
}
