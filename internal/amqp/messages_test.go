package amqp

import (
	"testing"
	"time"

	"lifelog/internal/store"
)

func TestChangeMessageJSON(t *testing.T) {
	msg := &ChangeMessage{
		Collection: store.Habits,
		ID:         "abc-123",
		Op:         store.OpUpdated,
		Timestamp:  time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC),
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	parsed, err := ChangeMessageFromJSON(body)
	if err != nil {
		t.Fatalf("ChangeMessageFromJSON() error = %v", err)
	}
	if parsed.Collection != msg.Collection || parsed.ID != msg.ID || parsed.Op != msg.Op {
		t.Errorf("parsed message = %+v, want %+v", parsed, msg)
	}
	if !parsed.Timestamp.Equal(msg.Timestamp) {
		t.Errorf("parsed timestamp = %v, want %v", parsed.Timestamp, msg.Timestamp)
	}
}

func TestNewChangeMessage(t *testing.T) {
	msg := NewChangeMessage(store.Change{Collection: store.Expenses, ID: "x", Op: store.OpCreated})
	if msg.Collection != store.Expenses || msg.ID != "x" || msg.Op != store.OpCreated {
		t.Errorf("unexpected message: %+v", msg)
	}
	if msg.Timestamp.IsZero() {
		t.Error("timestamp should be set")
	}
}

func TestChangeMessageInvalidJSON(t *testing.T) {
	if _, err := ChangeMessageFromJSON([]byte(`{"id": 42}`)); err == nil {
		t.Error("expected an error for a non-string id")
	}
}
