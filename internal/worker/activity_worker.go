// Package worker consumes record change events and appends them to the
// activity log. It runs as its own process so the API server never blocks
// on activity bookkeeping.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"lifelog/internal/amqp"
	"lifelog/internal/store"
)

// ActivityWorker turns change events into activity log entries.
type ActivityWorker struct {
	log store.ActivityLog
}

func NewActivityWorker(log store.ActivityLog) *ActivityWorker {
	return &ActivityWorker{log: log}
}

// HandleChange records one change event. Events for unknown collections are
// rejected so the broker does not redeliver garbage forever.
func (w *ActivityWorker) HandleChange(ctx context.Context, msg *amqp.ChangeMessage) error {
	switch msg.Collection {
	case store.Expenses, store.Diary, store.Todos, store.Habits:
	default:
		slog.WarnContext(ctx, "Dropping event for unknown collection",
			"collection", msg.Collection, "id", msg.ID)
		return nil
	}

	ev := store.Event{
		Collection: msg.Collection,
		RecordID:   msg.ID,
		Op:         msg.Op,
		OccurredAt: msg.Timestamp,
	}
	if err := w.log.AppendEvent(ctx, ev); err != nil {
		return fmt.Errorf("append event: %w", err)
	}

	slog.InfoContext(ctx, "Recorded activity",
		"collection", ev.Collection,
		"id", ev.RecordID,
		"op", ev.Op)

	return nil
}
