package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"lifelog/internal/core"
)

// Snapshot is one fully-materialized collection, delivered whole on every
// change. Exactly one of the record slices is set, matching Collection.
type Snapshot struct {
	Collection Collection
	Expenses   []core.Expense
	Diary      []core.DiaryEntry
	Todos      []core.Todo
	Habits     []core.Habit
}

// Hub turns backend mutations into full-snapshot notifications. Subscribers
// always receive the complete current collection, never a diff, so a missed
// or reordered notification can never leave them permanently stale.
type Hub struct {
	backend Backend

	mu   sync.Mutex
	subs map[int]func(Snapshot)
	next int
}

func NewHub(backend Backend) *Hub {
	return &Hub{
		backend: backend,
		subs:    make(map[int]func(Snapshot)),
	}
}

// Subscribe registers fn for snapshot deliveries and returns its
// unsubscribe function. fn is called synchronously from Publish.
func (h *Hub) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.next
	h.next++
	h.subs[id] = fn
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs, id)
	}
}

// Publish loads the named collection from the backend and fans the snapshot
// out to every subscriber.
func (h *Hub) Publish(ctx context.Context, c Collection) error {
	snap := Snapshot{Collection: c}
	var err error
	switch c {
	case Expenses:
		snap.Expenses, err = h.backend.ListExpenses(ctx)
	case Diary:
		snap.Diary, err = h.backend.ListDiaryEntries(ctx)
	case Todos:
		snap.Todos, err = h.backend.ListTodos(ctx)
	case Habits:
		snap.Habits, err = h.backend.ListHabits(ctx)
	default:
		return fmt.Errorf("unknown collection: %s", c)
	}
	if err != nil {
		return fmt.Errorf("load %s snapshot: %w", c, err)
	}

	h.mu.Lock()
	fns := make([]func(Snapshot), 0, len(h.subs))
	for _, fn := range h.subs {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
	slog.DebugContext(ctx, "Snapshot published", "collection", c, "subscribers", len(fns))
	return nil
}
