package services

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"lifelog/internal/core"
)

func exp(amount, category, description string, date core.Day) core.Expense {
	return core.Expense{
		Amount:      decimal.RequireFromString(amount),
		Category:    category,
		Description: description,
		Date:        date,
	}
}

func TestBuildExpenseReportMonthSummary(t *testing.T) {
	expenses := []core.Expense{
		exp("100", "餐飲", "lunch", "2024-05-10"),
		exp("50", "交通", "bus", "2024-05-11"),
		exp("30", "餐飲", "coffee", "2024-05-12"),
		exp("999", "購物", "outside the month", "2024-06-01"),
	}

	r := BuildExpenseReport(expenses, ExpenseQuery{Month: "2024-05", Sort: SortDateDesc})

	if len(r.Filtered) != 3 {
		t.Fatalf("expected 3 filtered expenses, got %d", len(r.Filtered))
	}
	if !r.Total.Equal(decimal.RequireFromString("180")) {
		t.Errorf("expected total 180, got %s", r.Total)
	}

	wantCats := map[string]string{"餐飲": "130", "交通": "50"}
	if len(r.CategoryTotals) != len(wantCats) {
		t.Fatalf("expected %d category totals, got %d", len(wantCats), len(r.CategoryTotals))
	}
	sum := decimal.Zero
	for _, ct := range r.CategoryTotals {
		want, ok := wantCats[ct.Category]
		if !ok {
			t.Errorf("unexpected category %q", ct.Category)
			continue
		}
		if !ct.Amount.Equal(decimal.RequireFromString(want)) {
			t.Errorf("category %q: expected %s, got %s", ct.Category, want, ct.Amount)
		}
		sum = sum.Add(ct.Amount)
	}
	if !sum.Equal(r.Total) {
		t.Errorf("category totals sum to %s, total is %s", sum, r.Total)
	}

	if len(r.CategoryRank) != 2 || r.CategoryRank[0].Category != "餐飲" || r.CategoryRank[1].Category != "交通" {
		t.Errorf("unexpected category rank: %+v", r.CategoryRank)
	}
	if r.MaxDay.Date != "2024-05-10" || !r.MaxDay.Amount.Equal(decimal.RequireFromString("100")) {
		t.Errorf("unexpected max day: %+v", r.MaxDay)
	}
	if !r.AvgPerDay.Equal(decimal.RequireFromString("60")) {
		t.Errorf("expected avg per active day 60, got %s", r.AvgPerDay)
	}
}

func TestBuildExpenseReportFilters(t *testing.T) {
	expenses := []core.Expense{
		exp("10", "餐飲", "Morning Coffee", "2024-05-01"),
		exp("20", "交通", "taxi home", "2024-05-02"),
		exp("30", "購物", "coffee beans", "2024-05-03"),
		exp("40", "餐飲", "dinner", "2024-05-20"),
		exp("50", "娛樂", "movie", "bad-date"),
	}

	tests := []struct {
		name    string
		query   ExpenseQuery
		wantIDs []core.Day
	}{
		{
			name:    "search folds description case",
			query:   ExpenseQuery{Search: "COFFEE"},
			wantIDs: []core.Day{"2024-05-01", "2024-05-03"},
		},
		{
			name:    "search matches category verbatim",
			query:   ExpenseQuery{Search: "交通"},
			wantIDs: []core.Day{"2024-05-02"},
		},
		{
			name:    "category filter",
			query:   ExpenseQuery{Category: "餐飲"},
			wantIDs: []core.Day{"2024-05-01", "2024-05-20"},
		},
		{
			name:    "category all matches everything valid",
			query:   ExpenseQuery{Category: core.CategoryAll},
			wantIDs: []core.Day{"2024-05-01", "2024-05-02", "2024-05-03", "2024-05-20"},
		},
		{
			name:    "date range is inclusive on both ends",
			query:   ExpenseQuery{From: "2024-05-02", To: "2024-05-03"},
			wantIDs: []core.Day{"2024-05-02", "2024-05-03"},
		},
		{
			name:    "invalid dates are always skipped",
			query:   ExpenseQuery{},
			wantIDs: []core.Day{"2024-05-01", "2024-05-02", "2024-05-03", "2024-05-20"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := BuildExpenseReport(expenses, tt.query)
			if len(r.Filtered) != len(tt.wantIDs) {
				t.Fatalf("expected %d results, got %d", len(tt.wantIDs), len(r.Filtered))
			}
			for i, want := range tt.wantIDs {
				if r.Filtered[i].Date != want {
					t.Errorf("result %d: expected date %s, got %s", i, want, r.Filtered[i].Date)
				}
			}
		})
	}
}

func TestSortExpensesStable(t *testing.T) {
	expenses := []core.Expense{
		exp("10", "餐飲", "first", "2024-05-01"),
		exp("10", "交通", "second", "2024-05-01"),
		exp("5", "購物", "third", "2024-05-02"),
	}

	r := BuildExpenseReport(expenses, ExpenseQuery{Sort: SortAmountDesc})
	if r.Filtered[0].Description != "first" || r.Filtered[1].Description != "second" {
		t.Errorf("equal amounts must keep snapshot order, got %q then %q",
			r.Filtered[0].Description, r.Filtered[1].Description)
	}

	r = BuildExpenseReport(expenses, ExpenseQuery{Sort: SortDateAsc})
	if r.Filtered[0].Description != "first" || r.Filtered[1].Description != "second" {
		t.Errorf("equal dates must keep snapshot order, got %q then %q",
			r.Filtered[0].Description, r.Filtered[1].Description)
	}

	r = BuildExpenseReport(expenses, ExpenseQuery{Sort: SortOrder("bogus")})
	if r.Filtered[2].Description != "third" {
		t.Errorf("unknown sort order must keep snapshot order")
	}
}

func TestPagination(t *testing.T) {
	var expenses []core.Expense
	for i := 1; i <= 25; i++ {
		expenses = append(expenses, exp("1", "其他", fmt.Sprintf("item %d", i), core.Day(fmt.Sprintf("2024-05-%02d", i))))
	}

	tests := []struct {
		name           string
		page, pageSize int
		wantPage       int
		wantTotal      int
		wantItems      int
	}{
		{"first page", 1, 10, 1, 3, 10},
		{"last partial page", 3, 10, 3, 3, 5},
		{"page above range clamps to last", 99, 10, 3, 3, 5},
		{"page below range clamps to first", 0, 10, 1, 3, 10},
		{"zero page size uses default", 2, 0, 2, 3, 10},
		{"exact division", 5, 5, 5, 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := BuildExpenseReport(expenses, ExpenseQuery{Sort: SortDateAsc, Page: tt.page, PageSize: tt.pageSize})
			if r.Page != tt.wantPage {
				t.Errorf("expected page %d, got %d", tt.wantPage, r.Page)
			}
			if r.TotalPages != tt.wantTotal {
				t.Errorf("expected %d total pages, got %d", tt.wantTotal, r.TotalPages)
			}
			if len(r.PageItems) != tt.wantItems {
				t.Errorf("expected %d page items, got %d", tt.wantItems, len(r.PageItems))
			}
		})
	}

	// Walking every page must partition the filtered list in order.
	r := BuildExpenseReport(expenses, ExpenseQuery{Sort: SortDateAsc, PageSize: 10})
	var seen []core.Expense
	for p := 1; p <= r.TotalPages; p++ {
		pr := BuildExpenseReport(expenses, ExpenseQuery{Sort: SortDateAsc, Page: p, PageSize: 10})
		seen = append(seen, pr.PageItems...)
	}
	if len(seen) != len(r.Filtered) {
		t.Fatalf("pages cover %d items, filtered has %d", len(seen), len(r.Filtered))
	}
	for i := range seen {
		if seen[i].Date != r.Filtered[i].Date {
			t.Errorf("item %d: pages give %s, filtered has %s", i, seen[i].Date, r.Filtered[i].Date)
		}
	}
}

func TestBuildExpenseReportEmpty(t *testing.T) {
	r := BuildExpenseReport(nil, ExpenseQuery{})
	if r.TotalPages != 1 || r.Page != 1 {
		t.Errorf("empty report: expected page 1 of 1, got page %d of %d", r.Page, r.TotalPages)
	}
	if !r.Total.IsZero() || !r.AvgPerDay.IsZero() {
		t.Errorf("empty report: expected zero totals, got total=%s avg=%s", r.Total, r.AvgPerDay)
	}
	if r.MaxDay.Date != "" {
		t.Errorf("empty report: expected no max day, got %+v", r.MaxDay)
	}
}
