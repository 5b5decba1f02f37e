package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"lifelog/internal/core"
)

func TestStatusOf(t *testing.T) {
	date := core.Day("2024-05-15")
	expenses := []core.Expense{exp("120", "餐飲", "lunch", date), exp("80", "交通", "bus", "2024-05-16")}
	entries := []core.DiaryEntry{entry(date, "good day")}
	todos := []core.Todo{
		{Text: "on the day", CreatedAt: time.Date(2024, 5, 15, 23, 30, 0, 0, time.UTC)},
		{Text: "day after", CreatedAt: time.Date(2024, 5, 16, 1, 0, 0, 0, time.UTC)},
	}
	habits := []core.Habit{
		{Name: "run", CompletedDates: []core.Day{date}},
		{Name: "read", CompletedDates: []core.Day{"2024-05-14"}},
		{Name: "stretch", CompletedDates: []core.Day{date, "2024-05-14"}},
	}

	s := StatusOf(date, expenses, entries, todos, habits)
	want := DayStatus{HasDiary: true, HasExpense: true, HasTodo: true, HabitsDone: 2}
	if s != want {
		t.Errorf("expected %+v, got %+v", want, s)
	}

	empty := StatusOf("2024-05-20", expenses, entries, todos, habits)
	if empty != (DayStatus{}) {
		t.Errorf("expected empty status, got %+v", empty)
	}
}

func TestDetailOf(t *testing.T) {
	date := core.Day("2024-05-15")
	expenses := []core.Expense{
		exp("120", "餐飲", "lunch", date),
		exp("30", "餐飲", "snack", date),
		exp("80", "交通", "elsewhere", "2024-05-16"),
	}
	entries := []core.DiaryEntry{entry(date, "note"), entry("2024-05-16", "not this one")}
	todos := []core.Todo{{Text: "a", CreatedAt: time.Date(2024, 5, 15, 9, 0, 0, 0, time.UTC)}}
	habits := []core.Habit{
		{Name: "run", CompletedDates: []core.Day{date}},
		{Name: "read"},
	}

	d := DetailOf(date, expenses, entries, todos, habits)
	if len(d.Expenses) != 2 || !d.Total.Equal(decimal.RequireFromString("150")) {
		t.Errorf("expected 2 expenses totalling 150, got %d totalling %s", len(d.Expenses), d.Total)
	}
	if len(d.Entries) != 1 || len(d.Todos) != 1 {
		t.Errorf("expected 1 entry and 1 todo, got %d and %d", len(d.Entries), len(d.Todos))
	}
	if len(d.Habits) != 2 {
		t.Fatalf("expected every habit listed, got %d", len(d.Habits))
	}
	if !d.Habits[0].Done || d.Habits[1].Done {
		t.Errorf("unexpected habit completion flags: %+v", d.Habits)
	}

	blank := DetailOf("2024-01-01", expenses, entries, todos, habits)
	if !blank.Total.IsZero() || len(blank.Expenses) != 0 {
		t.Errorf("expected an empty day, got %+v", blank)
	}
}
