package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"lifelog/internal/amqp"
	"lifelog/internal/store"
)

type fakeLog struct {
	events []store.Event
	err    error
}

func (f *fakeLog) AppendEvent(_ context.Context, ev store.Event) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, ev)
	return nil
}

func (f *fakeLog) RecentEvents(_ context.Context, _ int) ([]store.Event, error) {
	return f.events, nil
}

func TestHandleChange(t *testing.T) {
	log := &fakeLog{}
	w := NewActivityWorker(log)
	ts := time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC)

	err := w.HandleChange(context.Background(), &amqp.ChangeMessage{
		Collection: store.Expenses,
		ID:         "abc",
		Op:         store.OpCreated,
		Timestamp:  ts,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(log.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(log.events))
	}
	ev := log.events[0]
	if ev.Collection != store.Expenses || ev.RecordID != "abc" || ev.Op != store.OpCreated || !ev.OccurredAt.Equal(ts) {
		t.Errorf("unexpected event: %+v", ev)
	}
}

func TestHandleChangeUnknownCollection(t *testing.T) {
	log := &fakeLog{}
	w := NewActivityWorker(log)

	err := w.HandleChange(context.Background(), &amqp.ChangeMessage{
		Collection: "mystery",
		ID:         "abc",
		Op:         store.OpCreated,
	})
	if err != nil {
		t.Fatalf("unknown collections must be dropped, not retried: %v", err)
	}
	if len(log.events) != 0 {
		t.Errorf("expected no events recorded, got %d", len(log.events))
	}
}

func TestHandleChangeAppendFailure(t *testing.T) {
	w := NewActivityWorker(&fakeLog{err: errors.New("disk full")})

	err := w.HandleChange(context.Background(), &amqp.ChangeMessage{
		Collection: store.Todos,
		ID:         "abc",
		Op:         store.OpDeleted,
	})
	if err == nil {
		t.Error("append failures must surface so the broker requeues")
	}
}
