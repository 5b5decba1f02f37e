package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lifelog/internal/core"
	"lifelog/internal/log"
	"lifelog/internal/store"
)

// Records orchestrates record mutations: validate input, write through the
// backend, then notify — a full snapshot to in-process subscribers via the
// hub and a change event to other processes via the publisher. Notification
// failures are logged, never surfaced: the record is already persisted.
type Records struct {
	backend   store.Backend
	hub       *store.Hub
	publisher store.Publisher
}

func NewRecords(backend store.Backend, hub *store.Hub, publisher store.Publisher) *Records {
	return &Records{
		backend:   backend,
		hub:       hub,
		publisher: publisher,
	}
}

// AddExpense validates and stores a new expense. The amount must parse to a
// positive decimal; an empty date defaults to today.
func (r *Records) AddExpense(ctx context.Context, amount, category, description string, date core.Day) (core.Expense, error) {
	amt, err := core.ParseAmount(amount)
	if err != nil {
		return core.Expense{}, err
	}
	if date == "" {
		date = core.Today()
	}
	e := core.Expense{
		Amount:      amt,
		Category:    category,
		Description: strings.TrimSpace(description),
		Date:        date,
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	id, err := r.backend.AddExpense(ctx, e)
	if err != nil {
		return core.Expense{}, fmt.Errorf("add expense: %w", err)
	}
	e.ID = id
	r.notify(ctx, store.Change{Collection: store.Expenses, ID: id, Op: store.OpCreated})
	return e, nil
}

func (r *Records) UpdateExpense(ctx context.Context, id, amount, category, description string, date core.Day) error {
	amt, err := core.ParseAmount(amount)
	if err != nil {
		return err
	}
	e := core.Expense{
		ID:          id,
		Amount:      amt,
		Category:    category,
		Description: strings.TrimSpace(description),
		Date:        date,
	}
	if err := e.Validate(); err != nil {
		return err
	}
	if err := r.backend.UpdateExpense(ctx, e); err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	r.notify(ctx, store.Change{Collection: store.Expenses, ID: id, Op: store.OpUpdated})
	return nil
}

func (r *Records) DeleteExpense(ctx context.Context, id string) error {
	if err := r.backend.DeleteExpense(ctx, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	r.notify(ctx, store.Change{Collection: store.Expenses, ID: id, Op: store.OpDeleted})
	return nil
}

// AddDiaryEntry stores a new entry. Content must be non-blank; an empty
// date defaults to today. Multiple entries per date are allowed.
func (r *Records) AddDiaryEntry(ctx context.Context, date core.Day, content string) (core.DiaryEntry, error) {
	if date == "" {
		date = core.Today()
	}
	e := core.DiaryEntry{Date: date, Content: content}
	if err := e.Validate(); err != nil {
		return core.DiaryEntry{}, err
	}
	id, err := r.backend.AddDiaryEntry(ctx, e)
	if err != nil {
		return core.DiaryEntry{}, fmt.Errorf("add diary entry: %w", err)
	}
	e.ID = id
	r.notify(ctx, store.Change{Collection: store.Diary, ID: id, Op: store.OpCreated})
	return e, nil
}

func (r *Records) UpdateDiaryEntry(ctx context.Context, id, content string) error {
	if strings.TrimSpace(content) == "" {
		return core.ErrEmptyContent
	}
	if err := r.backend.UpdateDiaryEntry(ctx, id, content); err != nil {
		return fmt.Errorf("update diary entry: %w", err)
	}
	r.notify(ctx, store.Change{Collection: store.Diary, ID: id, Op: store.OpUpdated})
	return nil
}

func (r *Records) DeleteDiaryEntry(ctx context.Context, id string) error {
	if err := r.backend.DeleteDiaryEntry(ctx, id); err != nil {
		return fmt.Errorf("delete diary entry: %w", err)
	}
	r.notify(ctx, store.Change{Collection: store.Diary, ID: id, Op: store.OpDeleted})
	return nil
}

func (r *Records) AddTodo(ctx context.Context, text string) (core.Todo, error) {
	t := core.Todo{Text: strings.TrimSpace(text), CreatedAt: time.Now().UTC()}
	if err := t.Validate(); err != nil {
		return core.Todo{}, err
	}
	id, err := r.backend.AddTodo(ctx, t)
	if err != nil {
		return core.Todo{}, fmt.Errorf("add todo: %w", err)
	}
	t.ID = id
	r.notify(ctx, store.Change{Collection: store.Todos, ID: id, Op: store.OpCreated})
	return t, nil
}

// ToggleTodo flips the completed flag and returns the new state.
func (r *Records) ToggleTodo(ctx context.Context, id string) (bool, error) {
	done, err := r.backend.ToggleTodo(ctx, id)
	if err != nil {
		return false, fmt.Errorf("toggle todo: %w", err)
	}
	r.notify(ctx, store.Change{Collection: store.Todos, ID: id, Op: store.OpUpdated})
	return done, nil
}

func (r *Records) DeleteTodo(ctx context.Context, id string) error {
	if err := r.backend.DeleteTodo(ctx, id); err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	r.notify(ctx, store.Change{Collection: store.Todos, ID: id, Op: store.OpDeleted})
	return nil
}

func (r *Records) AddHabit(ctx context.Context, name string) (core.Habit, error) {
	h := core.Habit{Name: strings.TrimSpace(name), CreatedAt: time.Now().UTC(), CompletedDates: []core.Day{}}
	if err := h.Validate(); err != nil {
		return core.Habit{}, err
	}
	id, err := r.backend.AddHabit(ctx, h)
	if err != nil {
		return core.Habit{}, fmt.Errorf("add habit: %w", err)
	}
	h.ID = id
	r.notify(ctx, store.Change{Collection: store.Habits, ID: id, Op: store.OpCreated})
	return h, nil
}

func (r *Records) RenameHabit(ctx context.Context, id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return core.ErrEmptyName
	}
	if err := r.backend.RenameHabit(ctx, id, name); err != nil {
		return fmt.Errorf("rename habit: %w", err)
	}
	r.notify(ctx, store.Change{Collection: store.Habits, ID: id, Op: store.OpUpdated})
	return nil
}

// ToggleHabit marks or unmarks one day in the habit's completed set and
// returns whether the day is now done. Toggling the same day twice restores
// the original set.
func (r *Records) ToggleHabit(ctx context.Context, id string, day core.Day) (bool, error) {
	if !day.Valid() {
		return false, core.ErrInvalidDate
	}
	done, err := r.backend.ToggleHabitDate(ctx, id, day)
	if err != nil {
		return false, fmt.Errorf("toggle habit date: %w", err)
	}
	r.notify(ctx, store.Change{Collection: store.Habits, ID: id, Op: store.OpUpdated})
	return done, nil
}

func (r *Records) DeleteHabit(ctx context.Context, id string) error {
	if err := r.backend.DeleteHabit(ctx, id); err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}
	r.notify(ctx, store.Change{Collection: store.Habits, ID: id, Op: store.OpDeleted})
	return nil
}

func (r *Records) notify(ctx context.Context, ch store.Change) {
	audit := log.NewStructuredLogger(log.FromContext(ctx))
	audit.LogRecordChange(ctx, string(ch.Collection), ch.ID, string(ch.Op))

	if r.hub != nil {
		if err := r.hub.Publish(ctx, ch.Collection); err != nil {
			audit.LogError(ctx, "Failed to publish snapshot", err,
				log.ComponentRecords, string(ch.Op),
				log.NewFields().WithRecord(string(ch.Collection), ch.ID))
		}
	}
	if r.publisher != nil {
		if err := r.publisher.PublishChange(ctx, ch); err != nil {
			audit.LogError(ctx, "Failed to publish change event", err,
				log.ComponentRecords, string(ch.Op),
				log.NewFields().WithRecord(string(ch.Collection), ch.ID))
		}
	}
}
