package ledger_test

import (
	"testing"
	"time"

	"github.com/financefusion/finance-fusion-go/internal/domain"
	"github.com/financefusion/finance-fusion-go/internal/ledger"
)

func tx(amount float64, category, date string) domain.Transaction {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return domain.Transaction{Amount: amount, Category: category, Date: d}
}

func TestGroupByYear_Scenario(t *testing.T) {
	txns := []domain.Transaction{
		tx(100, "food", "2025-10-05"),
		tx(50, "FOOD", "2025-10-20"),
		tx(30, "zzz", "2025-11-01"),
	}

	years := ledger.GroupByYear(txns)

	yg, ok := years[2025]
	if !ok {
		t.Fatal("expected year 2025 to exist")
	}
	if yg.Total != 180 {
		t.Errorf("year total: expected 180, got %v", yg.Total)
	}

	oct := yg.Months["October"]
	if oct.Total != 150 {
		t.Errorf("October total: expected 150, got %v", oct.Total)
	}
	if len(oct.Transactions) != 2 {
		t.Errorf("October entries: expected 2, got %d", len(oct.Transactions))
	}

	nov := yg.Months["November"]
	if nov.Total != 30 {
		t.Errorf("November total: expected 30, got %v", nov.Total)
	}
	if got := domain.NormalizeCategory(nov.Transactions[0].Category); got != "Misc" {
		t.Errorf("unknown category should normalize to Misc, got %q", got)
	}
}

func TestGroupByYear_TotalsAddUp(t *testing.T) {
	txns := []domain.Transaction{
		tx(10, "Food", "2023-01-02"),
		tx(20, "Travel", "2023-06-15"),
		tx(5, "Bills", "2024-03-01"),
		tx(7.5, "Shopping", "2024-03-09"),
		tx(2.5, "Misc", "2024-12-31"),
	}

	years := ledger.GroupByYear(txns)

	var grand float64
	for year, yg := range years {
		var monthSum float64
		for _, mg := range yg.Months {
			var txSum float64
			for _, t2 := range mg.Transactions {
				txSum += t2.Amount
			}
			if txSum != mg.Total {
				t.Errorf("year %d: month total %v != transaction sum %v", year, mg.Total, txSum)
			}
			monthSum += mg.Total
		}
		if monthSum != yg.Total {
			t.Errorf("year %d: total %v != sum of month totals %v", year, yg.Total, monthSum)
		}
		grand += yg.Total
	}
	if want := ledger.Total(txns); grand != want {
		t.Errorf("sum of year totals %v != sum of all amounts %v", grand, want)
	}
}

func TestGroupByYear_PreservesSourceOrder(t *testing.T) {
	txns := []domain.Transaction{
		{ID: "a", Amount: 1, Category: "Food", Date: time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)},
		{ID: "b", Amount: 2, Category: "Food", Date: time.Date(2025, 5, 3, 0, 0, 0, 0, time.UTC)},
		{ID: "c", Amount: 3, Category: "Food", Date: time.Date(2025, 5, 11, 0, 0, 0, 0, time.UTC)},
	}

	may := ledger.GroupByYear(txns)[2025].Months["May"]
	want := []string{"a", "b", "c"}
	for i, id := range want {
		if may.Transactions[i].ID != id {
			t.Fatalf("expected arrival order %v, got %q at index %d", want, may.Transactions[i].ID, i)
		}
	}
}

func TestGroupByYear_Empty(t *testing.T) {
	years := ledger.GroupByYear(nil)
	if len(years) != 0 {
		t.Errorf("expected no year groups for empty input, got %d", len(years))
	}
}

func TestSortedYears_Descending(t *testing.T) {
	years := ledger.GroupByYear([]domain.Transaction{
		tx(1, "Food", "2021-01-01"),
		tx(1, "Food", "2025-01-01"),
		tx(1, "Food", "2023-01-01"),
	})

	got := ledger.SortedYears(years)
	want := []int{2025, 2023, 2021}
	if len(got) != len(want) {
		t.Fatalf("expected %d years, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %d, got %d", i, want[i], got[i])
		}
	}
}

func TestDefaultExpansion_CurrentYear(t *testing.T) {
	now := time.Date(2025, time.October, 14, 12, 0, 0, 0, time.UTC)
	if got := ledger.DefaultExpansion(now); got != 2025 {
		t.Errorf("expected current year 2025 pre-expanded, got %d", got)
	}
}
