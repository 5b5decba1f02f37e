package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CategoryAll is the wildcard accepted by the expense category filter.
const CategoryAll = "all"

// Categories is the closed set of expense category labels.
var Categories = []string{"餐飲", "交通", "購物", "娛樂", "醫療", "教育", "其他"}

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrUnknownCategory = errors.New("unknown category")
	ErrEmptyContent    = errors.New("empty diary content")
	ErrEmptyText       = errors.New("empty todo text")
	ErrEmptyName       = errors.New("empty habit name")
)

type (
	// Expense is a single spending record.
	Expense struct {
		ID          string          `json:"id"`
		Amount      decimal.Decimal `json:"amount"`
		Category    string          `json:"category"`
		Description string          `json:"description"`
		Date        Day             `json:"date"`
	}

	// DiaryEntry is a dated free-text note. Multiple entries may share a
	// date; uniqueness per day is deliberately not enforced.
	DiaryEntry struct {
		ID      string `json:"id"`
		Date    Day    `json:"date"`
		Content string `json:"content"`
	}

	// Todo is a checklist item. Text is immutable after creation.
	Todo struct {
		ID        string    `json:"id"`
		Text      string    `json:"text"`
		Completed bool      `json:"completed"`
		CreatedAt time.Time `json:"createdAt"`
	}

	// Habit tracks a recurring behavior via the set of dates it was
	// marked done on.
	Habit struct {
		ID             string    `json:"id"`
		Name           string    `json:"name"`
		CompletedDates []Day     `json:"completedDates"`
		CreatedAt      time.Time `json:"createdAt"`
	}
)

// ValidCategory reports whether label is in the closed category set.
func ValidCategory(label string) bool {
	for _, c := range Categories {
		if c == label {
			return true
		}
	}
	return false
}

func (e Expense) Validate() error {
	if !e.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !ValidCategory(e.Category) {
		return ErrUnknownCategory
	}
	if !e.Date.Valid() {
		return ErrInvalidDate
	}
	return nil
}

func (d DiaryEntry) Validate() error {
	if strings.TrimSpace(d.Content) == "" {
		return ErrEmptyContent
	}
	if !d.Date.Valid() {
		return ErrInvalidDate
	}
	return nil
}

func (t Todo) Validate() error {
	if strings.TrimSpace(t.Text) == "" {
		return ErrEmptyText
	}
	return nil
}

// CreatedOn is the todo's day of creation, truncated in UTC.
func (t Todo) CreatedOn() Day {
	return DayOf(t.CreatedAt)
}

func (h Habit) Validate() error {
	if strings.TrimSpace(h.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

// DoneOn reports whether the habit was marked done on the given day.
func (h Habit) DoneOn(d Day) bool {
	for _, c := range h.CompletedDates {
		if c == d {
			return true
		}
	}
	return false
}
