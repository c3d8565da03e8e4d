package ledger_test

import (
	"math/rand"
	"testing"

	"github.com/financefusion/finance-fusion-go/internal/domain"
	"github.com/financefusion/finance-fusion-go/internal/ledger"
)

func TestSumByCategory_Normalizes(t *testing.T) {
	txns := []domain.Transaction{
		tx(100, "food", "2025-10-05"),
		tx(50, "FOOD", "2025-10-06"),
		tx(25, "Travel", "2025-10-07"),
		tx(10, "cryptocurrency", "2025-10-08"),
		tx(5, "", "2025-10-09"),
	}

	sums := ledger.SumByCategory(txns)

	if sums["Food"] != 150 {
		t.Errorf("Food: expected 150, got %v", sums["Food"])
	}
	if sums["Travel"] != 25 {
		t.Errorf("Travel: expected 25, got %v", sums["Travel"])
	}
	if sums["Misc"] != 15 {
		t.Errorf("Misc: expected 15 (unrecognized + empty), got %v", sums["Misc"])
	}
	if _, ok := sums["Bills"]; ok {
		t.Error("Bills had no spend and should not appear in the chart aggregate")
	}
}

func TestSumByCategorySeeded_CoversAllCategories(t *testing.T) {
	sums := ledger.SumByCategorySeeded([]domain.Transaction{
		tx(40, "travel", "2025-10-05"),
	})

	if len(sums) != len(domain.Categories) {
		t.Fatalf("expected %d categories, got %d", len(domain.Categories), len(sums))
	}
	for _, c := range domain.Categories {
		if _, ok := sums[c]; !ok {
			t.Errorf("category %q missing from seeded aggregate", c)
		}
	}
	if sums["Travel"] != 40 {
		t.Errorf("Travel: expected 40, got %v", sums["Travel"])
	}
	if sums["Food"] != 0 {
		t.Errorf("Food: expected 0, got %v", sums["Food"])
	}
}

func TestSumByCategory_OrderInvariant(t *testing.T) {
	txns := []domain.Transaction{
		tx(12.5, "Food", "2025-10-01"),
		tx(7.25, "travel", "2025-10-02"),
		tx(3, "weird", "2025-10-03"),
		tx(9.75, "FOOD", "2025-10-04"),
		tx(1.5, "Bills", "2025-10-05"),
	}

	want := ledger.SumByCategory(txns)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := make([]domain.Transaction, len(txns))
		copy(shuffled, txns)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		got := ledger.SumByCategory(shuffled)
		if len(got) != len(want) {
			t.Fatalf("shuffle %d: category count changed: %d vs %d", i, len(got), len(want))
		}
		for cat, sum := range want {
			if got[cat] != sum {
				t.Errorf("shuffle %d: %s: expected %v, got %v", i, cat, sum, got[cat])
			}
		}
	}
}

func TestSumByCategory_Empty(t *testing.T) {
	sums := ledger.SumByCategory(nil)
	if len(sums) != 0 {
		t.Errorf("expected empty aggregate, got %v", sums)
	}

	seeded := ledger.SumByCategorySeeded(nil)
	for cat, sum := range seeded {
		if sum != 0 {
			t.Errorf("%s: expected 0 for empty input, got %v", cat, sum)
		}
	}
}
