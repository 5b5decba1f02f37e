package amqp

import (
	"encoding/json"
	"time"

	"lifelog/internal/store"
)

// ChangeMessage is the wire form of a record change event. It names the
// mutated record, never carries its data; consumers reload what they need.
type ChangeMessage struct {
	Collection store.Collection `json:"collection"`
	ID         string           `json:"id"`
	Op         store.Op         `json:"op"`
	Timestamp  time.Time        `json:"timestamp"`
}

func NewChangeMessage(c store.Change) *ChangeMessage {
	return &ChangeMessage{
		Collection: c.Collection,
		ID:         c.ID,
		Op:         c.Op,
		Timestamp:  time.Now().UTC(),
	}
}

func (m *ChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ChangeMessageFromJSON(data []byte) (*ChangeMessage, error) {
	var msg ChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
