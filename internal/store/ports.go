// Package store defines the Record Store ports: the per-collection CRUD
// interfaces a backend implements, the change/snapshot types flowing out of
// it, and the hub that re-delivers full collection snapshots to subscribers
// whenever a collection changes.
package store

import (
	"context"
	"errors"
	"time"

	"lifelog/internal/core"
)

// ErrNotFound is returned by backends when a record id does not exist.
var ErrNotFound = errors.New("record not found")

// Collection names one of the four record collections.
type Collection string

const (
	Expenses Collection = "expenses"
	Diary    Collection = "diaryEntries"
	Todos    Collection = "todos"
	Habits   Collection = "habits"
)

// Op is the kind of mutation a change event describes.
type Op string

const (
	OpCreated Op = "created"
	OpUpdated Op = "updated"
	OpDeleted Op = "deleted"
)

// Change identifies one record mutation. Consumers treat it purely as a
// staleness signal; they reload the full collection, never apply a delta.
type Change struct {
	Collection Collection
	ID         string
	Op         Op
}

// Event is one entry of the activity log.
type Event struct {
	Collection Collection `json:"collection"`
	RecordID   string     `json:"recordId"`
	Op         Op         `json:"op"`
	OccurredAt time.Time  `json:"occurredAt"`
}

// Ports for record backends. List methods return snapshot copies the caller
// may hold onto; backends never hand out shared mutable state.
type (
	ExpenseStore interface {
		ListExpenses(ctx context.Context) ([]core.Expense, error)
		AddExpense(ctx context.Context, e core.Expense) (string, error)
		UpdateExpense(ctx context.Context, e core.Expense) error
		DeleteExpense(ctx context.Context, id string) error
	}

	DiaryStore interface {
		ListDiaryEntries(ctx context.Context) ([]core.DiaryEntry, error)
		AddDiaryEntry(ctx context.Context, e core.DiaryEntry) (string, error)
		UpdateDiaryEntry(ctx context.Context, id, content string) error
		DeleteDiaryEntry(ctx context.Context, id string) error
	}

	TodoStore interface {
		ListTodos(ctx context.Context) ([]core.Todo, error)
		AddTodo(ctx context.Context, t core.Todo) (string, error)
		// ToggleTodo flips the completed flag and returns the new state.
		ToggleTodo(ctx context.Context, id string) (bool, error)
		DeleteTodo(ctx context.Context, id string) error
	}

	HabitStore interface {
		ListHabits(ctx context.Context) ([]core.Habit, error)
		AddHabit(ctx context.Context, h core.Habit) (string, error)
		RenameHabit(ctx context.Context, id, name string) error
		// ToggleHabitDate adds day to the habit's completed set if absent,
		// removes it otherwise, and returns whether the day is now done.
		ToggleHabitDate(ctx context.Context, id string, day core.Day) (bool, error)
		DeleteHabit(ctx context.Context, id string) error
	}

	// Backend is a full Record Store over all four collections.
	Backend interface {
		ExpenseStore
		DiaryStore
		TodoStore
		HabitStore
	}

	// ActivityLog records and serves the recent-change feed.
	ActivityLog interface {
		AppendEvent(ctx context.Context, ev Event) error
		RecentEvents(ctx context.Context, limit int) ([]Event, error)
	}

	// Publisher fans a change event out to other processes.
	Publisher interface {
		PublishChange(ctx context.Context, ch Change) error
	}
)
