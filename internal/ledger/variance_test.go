package ledger_test

import (
	"testing"

	"github.com/financefusion/finance-fusion-go/internal/domain"
	"github.com/financefusion/finance-fusion-go/internal/ledger"
)

func varianceFor(t *testing.T, rows []domain.CategoryVariance, category string) domain.CategoryVariance {
	t.Helper()
	for _, row := range rows {
		if row.Category == category {
			return row
		}
	}
	t.Fatalf("category %q not in variance output", category)
	return domain.CategoryVariance{}
}

func TestVariance_OverBudget(t *testing.T) {
	rows := ledger.Variance(
		map[string]float64{"Food": 150},
		[]domain.Budget{{Category: "Food", Amount: 100}},
	)

	food := varianceFor(t, rows, "Food")
	if food.Limit != 100 {
		t.Errorf("limit: expected 100, got %v", food.Limit)
	}
	if food.Spent != 150 {
		t.Errorf("spent: expected 150, got %v", food.Spent)
	}
	if food.Percentage != 150 {
		t.Errorf("percentage: expected unclamped 150, got %v", food.Percentage)
	}
	if food.Remaining != -50 {
		t.Errorf("remaining: expected -50, got %v", food.Remaining)
	}
	if !food.IsOver {
		t.Error("expected over-budget flag")
	}
}

func TestVariance_NoLimitNeverOver(t *testing.T) {
	rows := ledger.Variance(map[string]float64{"Travel": 40}, nil)

	travel := varianceFor(t, rows, "Travel")
	if travel.Limit != 0 {
		t.Errorf("limit: expected 0 for unset budget, got %v", travel.Limit)
	}
	if travel.Spent != 40 {
		t.Errorf("spent: expected 40, got %v", travel.Spent)
	}
	if travel.Percentage != 0 {
		t.Errorf("percentage: a zero limit must never divide, got %v", travel.Percentage)
	}
	if travel.Remaining != -40 {
		t.Errorf("remaining: expected -40, got %v", travel.Remaining)
	}
	if travel.IsOver {
		t.Error("limit 0 means no budget configured, never over")
	}
}

func TestVariance_UnderBudget(t *testing.T) {
	rows := ledger.Variance(
		map[string]float64{"Bills": 30},
		[]domain.Budget{{Category: "bills", Amount: 120}},
	)

	bills := varianceFor(t, rows, "Bills")
	if bills.Percentage != 25 {
		t.Errorf("percentage: expected 25, got %v", bills.Percentage)
	}
	if bills.Remaining != 90 {
		t.Errorf("remaining: expected 90, got %v", bills.Remaining)
	}
	if bills.IsOver {
		t.Error("under budget must not be flagged over")
	}
}

func TestVariance_BudgetWithNoSpend(t *testing.T) {
	rows := ledger.Variance(nil, []domain.Budget{{Category: "Shopping", Amount: 200}})

	shopping := varianceFor(t, rows, "Shopping")
	if shopping.Spent != 0 {
		t.Errorf("spent: expected 0, got %v", shopping.Spent)
	}
	if shopping.Remaining != 200 {
		t.Errorf("remaining: expected 200, got %v", shopping.Remaining)
	}
	if shopping.IsOver {
		t.Error("no spend cannot be over budget")
	}
}

func TestVariance_AllCanonicalCategoriesPresent(t *testing.T) {
	rows := ledger.Variance(nil, nil)
	if len(rows) != len(domain.Categories) {
		t.Fatalf("expected %d rows, got %d", len(domain.Categories), len(rows))
	}
	for i, c := range domain.Categories {
		if rows[i].Category != c {
			t.Errorf("row %d: expected %q, got %q", i, c, rows[i].Category)
		}
	}
}

func TestVariance_SpentExactlyAtLimit(t *testing.T) {
	rows := ledger.Variance(
		map[string]float64{"Food": 100},
		[]domain.Budget{{Category: "Food", Amount: 100}},
	)

	food := varianceFor(t, rows, "Food")
	if food.IsOver {
		t.Error("spent == limit is not over budget")
	}
	if food.Remaining != 0 {
		t.Errorf("remaining: expected 0, got %v", food.Remaining)
	}
}
