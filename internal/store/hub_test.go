package store_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"lifelog/internal/core"
	"lifelog/internal/store"
	"lifelog/internal/store/memory"
)

func TestHubDeliversFullSnapshots(t *testing.T) {
	backend := memory.New()
	hub := store.NewHub(backend)
	ctx := context.Background()

	var got []store.Snapshot
	unsubscribe := hub.Subscribe(func(s store.Snapshot) { got = append(got, s) })

	for _, desc := range []string{"first", "second"} {
		if _, err := backend.AddExpense(ctx, core.Expense{
			Amount:      decimal.NewFromInt(10),
			Category:    "餐飲",
			Description: desc,
			Date:        "2024-05-15",
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := hub.Publish(ctx, store.Expenses); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(got))
	}
	if len(got[0].Expenses) != 1 || len(got[1].Expenses) != 2 {
		t.Errorf("snapshots must carry the whole collection, got %d then %d expenses",
			len(got[0].Expenses), len(got[1].Expenses))
	}
	if got[1].Collection != store.Expenses {
		t.Errorf("expected collection %q, got %q", store.Expenses, got[1].Collection)
	}

	unsubscribe()
	if err := hub.Publish(ctx, store.Expenses); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected no delivery after unsubscribe, got %d snapshots", len(got))
	}
}

func TestHubUnknownCollection(t *testing.T) {
	hub := store.NewHub(memory.New())
	if err := hub.Publish(context.Background(), store.Collection("bogus")); err == nil {
		t.Error("expected an error for an unknown collection")
	}
}

func TestHubMultipleSubscribers(t *testing.T) {
	backend := memory.New()
	hub := store.NewHub(backend)
	ctx := context.Background()

	counts := make([]int, 3)
	for i := range counts {
		i := i
		hub.Subscribe(func(store.Snapshot) { counts[i]++ })
	}

	if _, err := backend.AddTodo(ctx, core.Todo{Text: "x"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := hub.Publish(ctx, store.Todos); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, n := range counts {
		if n != 1 {
			t.Errorf("subscriber %d: expected 1 delivery, got %d", i, n)
		}
	}
}
