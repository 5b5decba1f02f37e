// Package memory implements the Record Store ports with in-process state.
// It is the default backend for local runs and the fixture backend for
// tests; every List call returns a fresh snapshot copy.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"lifelog/internal/core"
	"lifelog/internal/store"
)

const maxEvents = 256

type Store struct {
	mu       sync.Mutex
	expenses []core.Expense
	diary    []core.DiaryEntry
	todos    []core.Todo
	habits   []core.Habit
	events   []store.Event

	now func() time.Time
}

func New() *Store {
	return &Store{now: time.Now}
}

// NewAt pins the store's clock, for tests that assert on creation times.
func NewAt(now func() time.Time) *Store {
	return &Store{now: now}
}

// ListExpenses returns the expense snapshot, newest date first.
func (s *Store) ListExpenses(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Expense, len(s.expenses))
	copy(out, s.expenses)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (s *Store) AddExpense(_ context.Context, e core.Expense) (string, error) {
	if err := e.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = uuid.NewString()
	s.expenses = append(s.expenses, e)
	return e.ID, nil
}

func (s *Store) UpdateExpense(_ context.Context, e core.Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.expenses {
		if s.expenses[i].ID == e.ID {
			s.expenses[i] = e
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) DeleteExpense(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.expenses {
		if s.expenses[i].ID == id {
			s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

// ListDiaryEntries returns the diary snapshot, newest date first.
func (s *Store) ListDiaryEntries(_ context.Context) ([]core.DiaryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.DiaryEntry, len(s.diary))
	copy(out, s.diary)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (s *Store) AddDiaryEntry(_ context.Context, e core.DiaryEntry) (string, error) {
	if err := e.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = uuid.NewString()
	s.diary = append(s.diary, e)
	return e.ID, nil
}

func (s *Store) UpdateDiaryEntry(_ context.Context, id, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.diary {
		if s.diary[i].ID == id {
			s.diary[i].Content = content
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) DeleteDiaryEntry(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.diary {
		if s.diary[i].ID == id {
			s.diary = append(s.diary[:i], s.diary[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

// ListTodos returns the todo snapshot, newest creation first.
func (s *Store) ListTodos(_ context.Context) ([]core.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Todo, len(s.todos))
	copy(out, s.todos)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) AddTodo(_ context.Context, t core.Todo) (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = uuid.NewString()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = s.now()
	}
	s.todos = append(s.todos, t)
	return t.ID, nil
}

func (s *Store) ToggleTodo(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.todos {
		if s.todos[i].ID == id {
			s.todos[i].Completed = !s.todos[i].Completed
			return s.todos[i].Completed, nil
		}
	}
	return false, store.ErrNotFound
}

func (s *Store) DeleteTodo(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.todos {
		if s.todos[i].ID == id {
			s.todos = append(s.todos[:i], s.todos[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

// ListHabits returns the habit snapshot, ordered by name.
func (s *Store) ListHabits(_ context.Context) ([]core.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Habit, len(s.habits))
	for i, h := range s.habits {
		out[i] = h
		out[i].CompletedDates = append([]core.Day(nil), h.CompletedDates...)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) AddHabit(_ context.Context, h core.Habit) (string, error) {
	if err := h.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	h.ID = uuid.NewString()
	if h.CreatedAt.IsZero() {
		h.CreatedAt = s.now()
	}
	if h.CompletedDates == nil {
		h.CompletedDates = []core.Day{}
	}
	s.habits = append(s.habits, h)
	return h.ID, nil
}

func (s *Store) RenameHabit(_ context.Context, id, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.habits {
		if s.habits[i].ID == id {
			s.habits[i].Name = name
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) ToggleHabitDate(_ context.Context, id string, day core.Day) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.habits {
		if s.habits[i].ID != id {
			continue
		}
		for j, d := range s.habits[i].CompletedDates {
			if d == day {
				s.habits[i].CompletedDates = append(s.habits[i].CompletedDates[:j], s.habits[i].CompletedDates[j+1:]...)
				return false, nil
			}
		}
		s.habits[i].CompletedDates = append(s.habits[i].CompletedDates, day)
		return true, nil
	}
	return false, store.ErrNotFound
}

func (s *Store) DeleteHabit(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.habits {
		if s.habits[i].ID == id {
			s.habits = append(s.habits[:i], s.habits[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

// AppendEvent keeps a bounded in-memory activity feed.
func (s *Store) AppendEvent(_ context.Context, ev store.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	if len(s.events) > maxEvents {
		s.events = s.events[len(s.events)-maxEvents:]
	}
	return nil
}

// RecentEvents returns up to limit events, newest first.
func (s *Store) RecentEvents(_ context.Context, limit int) ([]store.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit <= 0 || limit > len(s.events) {
		limit = len(s.events)
	}
	out := make([]store.Event, 0, limit)
	for i := len(s.events) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.events[i])
	}
	return out, nil
}
