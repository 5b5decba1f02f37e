// Package services contains the derived-state layer: pure functions that
// turn record collection snapshots plus explicit query parameters into the
// filtered, sorted, and summarized views the presentation layer consumes,
// and the orchestration services that mutate records through the store.
//
// Every query function here is stateless and side-effect free: the same
// snapshot and parameters always produce the same result, and inputs are
// never mutated. Records with malformed dates are skipped, not rejected.
package services

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"lifelog/internal/core"
)

// SortOrder selects how a filtered expense list is ordered.
type SortOrder string

const (
	SortDateDesc   SortOrder = "date-desc"
	SortDateAsc    SortOrder = "date-asc"
	SortAmountDesc SortOrder = "amount-desc"
	SortAmountAsc  SortOrder = "amount-asc"
)

// DefaultPageSize is used when a query does not specify a page size.
const DefaultPageSize = 10

type (
	// ExpenseQuery carries every filter, sort, and page parameter for an
	// expense report. Zero values mean "no constraint" for the filters.
	ExpenseQuery struct {
		Month    core.Month // restrict to one YYYY-MM month
		Search   string     // free text over description (folded) and category
		Category string     // exact category, "" or "all" for any
		From, To core.Day   // inclusive date range bounds
		Sort     SortOrder
		Page     int // 1-based
		PageSize int
	}

	// CategoryTotal is a summed amount for one category label.
	CategoryTotal struct {
		Category string          `json:"category"`
		Amount   decimal.Decimal `json:"amount"`
	}

	// DayTotal is a summed amount for one calendar date.
	DayTotal struct {
		Date   core.Day        `json:"date"`
		Amount decimal.Decimal `json:"amount"`
	}

	// ExpenseReport is the full derived view over one filtered snapshot.
	ExpenseReport struct {
		Filtered   []core.Expense  `json:"filtered"`
		PageItems  []core.Expense  `json:"pageItems"`
		Page       int             `json:"page"`
		TotalPages int             `json:"totalPages"`

		CategoryTotals []CategoryTotal `json:"categoryTotals"`
		Total          decimal.Decimal `json:"total"`
		DailyTotals    []DayTotal      `json:"dailyTotals"`
		MaxDay         DayTotal        `json:"maxDay"`
		AvgPerDay      decimal.Decimal `json:"avgPerDay"`
		CategoryRank   []CategoryTotal `json:"categoryRank"`
	}
)

// BuildExpenseReport filters, sorts, paginates, and summarizes one expense
// snapshot. Expenses with invalid dates are skipped.
func BuildExpenseReport(expenses []core.Expense, q ExpenseQuery) ExpenseReport {
	filtered := make([]core.Expense, 0, len(expenses))
	for _, e := range expenses {
		if matchExpense(e, q) {
			filtered = append(filtered, e)
		}
	}
	sortExpenses(filtered, q.Sort)

	r := ExpenseReport{
		Filtered:  filtered,
		Total:     decimal.Zero,
		AvgPerDay: decimal.Zero,
	}
	r.Page, r.TotalPages, r.PageItems = paginate(filtered, q.Page, q.PageSize)

	// Grouped aggregates keep first-encountered order over the sorted
	// filtered set, so ranking tie-breaks are deterministic.
	catIdx := map[string]int{}
	dayIdx := map[core.Day]int{}
	for _, e := range filtered {
		r.Total = r.Total.Add(e.Amount)

		if i, ok := catIdx[e.Category]; ok {
			r.CategoryTotals[i].Amount = r.CategoryTotals[i].Amount.Add(e.Amount)
		} else {
			catIdx[e.Category] = len(r.CategoryTotals)
			r.CategoryTotals = append(r.CategoryTotals, CategoryTotal{Category: e.Category, Amount: e.Amount})
		}

		if i, ok := dayIdx[e.Date]; ok {
			r.DailyTotals[i].Amount = r.DailyTotals[i].Amount.Add(e.Amount)
		} else {
			dayIdx[e.Date] = len(r.DailyTotals)
			r.DailyTotals = append(r.DailyTotals, DayTotal{Date: e.Date, Amount: e.Amount})
		}
	}

	for _, dt := range r.DailyTotals {
		// Strictly greater keeps the first-encountered day on ties.
		if dt.Amount.GreaterThan(r.MaxDay.Amount) {
			r.MaxDay = dt
		}
	}
	if n := len(r.DailyTotals); n > 0 {
		r.AvgPerDay = r.Total.Div(decimal.NewFromInt(int64(n)))
	}

	r.CategoryRank = make([]CategoryTotal, len(r.CategoryTotals))
	copy(r.CategoryRank, r.CategoryTotals)
	sort.SliceStable(r.CategoryRank, func(i, j int) bool {
		return r.CategoryRank[i].Amount.GreaterThan(r.CategoryRank[j].Amount)
	})

	return r
}

func matchExpense(e core.Expense, q ExpenseQuery) bool {
	if !e.Date.Valid() {
		return false
	}
	if q.Month != "" && !e.Date.In(q.Month) {
		return false
	}
	if q.Search != "" {
		inDesc := strings.Contains(strings.ToLower(e.Description), strings.ToLower(q.Search))
		inCat := strings.Contains(e.Category, q.Search)
		if !inDesc && !inCat {
			return false
		}
	}
	if q.Category != "" && q.Category != core.CategoryAll && e.Category != q.Category {
		return false
	}
	if q.From != "" && e.Date < q.From {
		return false
	}
	if q.To != "" && e.Date > q.To {
		return false
	}
	return true
}

// sortExpenses orders the slice in place. Unknown orders keep the snapshot
// order; every known order is a stable sort, so equal keys preserve their
// original relative position.
func sortExpenses(expenses []core.Expense, order SortOrder) {
	var less func(a, b core.Expense) bool
	switch order {
	case SortDateDesc:
		less = func(a, b core.Expense) bool { return a.Date > b.Date }
	case SortDateAsc:
		less = func(a, b core.Expense) bool { return a.Date < b.Date }
	case SortAmountDesc:
		less = func(a, b core.Expense) bool { return a.Amount.GreaterThan(b.Amount) }
	case SortAmountAsc:
		less = func(a, b core.Expense) bool { return a.Amount.LessThan(b.Amount) }
	default:
		return
	}
	sort.SliceStable(expenses, func(i, j int) bool { return less(expenses[i], expenses[j]) })
}

// paginate clamps the page into range and slices out one page.
// Total pages is at least 1 even for an empty list.
func paginate(filtered []core.Expense, page, pageSize int) (int, int, []core.Expense) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	totalPages := (len(filtered) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}
	return page, totalPages, filtered[start:end]
}
