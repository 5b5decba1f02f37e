package services

import (
	"github.com/shopspring/decimal"

	"lifelog/internal/core"
)

type (
	// DayStatus answers, for one calendar date, whether each collection has
	// activity on it. It drives the per-cell markers of a calendar view.
	DayStatus struct {
		HasDiary   bool `json:"hasDiary"`
		HasExpense bool `json:"hasExpense"`
		HasTodo    bool `json:"hasTodo"`
		HabitsDone int  `json:"habitsDone"`
	}

	// HabitCheck pairs a habit with its completion flag for one date.
	HabitCheck struct {
		Habit core.Habit `json:"habit"`
		Done  bool       `json:"done"`
	}

	// DayDetail is the expanded view of a single date: the records from
	// every collection that touch it, plus the day's expense total.
	DayDetail struct {
		Date     core.Day          `json:"date"`
		Expenses []core.Expense    `json:"expenses"`
		Total    decimal.Decimal   `json:"total"`
		Entries  []core.DiaryEntry `json:"entries"`
		Todos    []core.Todo       `json:"todos"`
		Habits   []HabitCheck      `json:"habits"`
	}
)

// StatusOf is a pure read over the four collection snapshots. A todo counts
// on its day of creation (UTC truncation of the creation timestamp).
func StatusOf(date core.Day, expenses []core.Expense, entries []core.DiaryEntry, todos []core.Todo, habits []core.Habit) DayStatus {
	var s DayStatus
	for _, e := range entries {
		if e.Date == date {
			s.HasDiary = true
			break
		}
	}
	for _, e := range expenses {
		if e.Date == date {
			s.HasExpense = true
			break
		}
	}
	for _, t := range todos {
		if t.CreatedOn() == date {
			s.HasTodo = true
			break
		}
	}
	for _, h := range habits {
		if h.DoneOn(date) {
			s.HabitsDone++
		}
	}
	return s
}

// DetailOf collects everything recorded on one date. Habits are always all
// listed, each flagged with its completion state for that date.
func DetailOf(date core.Day, expenses []core.Expense, entries []core.DiaryEntry, todos []core.Todo, habits []core.Habit) DayDetail {
	d := DayDetail{
		Date:     date,
		Expenses: []core.Expense{},
		Total:    decimal.Zero,
		Entries:  []core.DiaryEntry{},
		Todos:    []core.Todo{},
		Habits:   make([]HabitCheck, 0, len(habits)),
	}
	for _, e := range expenses {
		if e.Date == date {
			d.Expenses = append(d.Expenses, e)
			d.Total = d.Total.Add(e.Amount)
		}
	}
	for _, e := range entries {
		if e.Date == date {
			d.Entries = append(d.Entries, e)
		}
	}
	for _, t := range todos {
		if t.CreatedOn() == date {
			d.Todos = append(d.Todos, t)
		}
	}
	for _, h := range habits {
		d.Habits = append(d.Habits, HabitCheck{Habit: h, Done: h.DoneOn(date)})
	}
	return d
}
