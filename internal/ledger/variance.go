package ledger

import "github.com/financefusion/finance-fusion-go/internal/domain"

// Variance joins per-category spend with configured budget limits. A
// category with no budget row gets limit 0, which means "no budget
// configured": its percentage stays 0 (a zero limit never divides) and it
// can never be flagged over budget, regardless of spend. The percentage is
// returned unclamped.
//
// Every canonical category appears once; budgets for categories with no
// spend show spent = 0.
func Variance(spend map[string]float64, budgets []domain.Budget) []domain.CategoryVariance {
	limits := make(map[string]float64, len(budgets))
	for _, b := range budgets {
		limits[domain.NormalizeCategory(b.Category)] = b.Amount
	}

	out := make([]domain.CategoryVariance, 0, len(domain.Categories))
	for _, cat := range domain.Categories {
		limit := limits[cat]
		spent := spend[cat]

		pct := 0.0
		if limit > 0 {
			pct = spent / limit * 100
		}

		out = append(out, domain.CategoryVariance{
			Category:   cat,
			Limit:      limit,
			Spent:      spent,
			Percentage: pct,
			Remaining:  limit - spent,
			IsOver:     limit > 0 && spent > limit,
		})
	}
	return out
}
