// Package backend selects and assembles a record store backend from
// configuration.
package backend

import (
	"context"

	"lifelog/internal/store"
)

// CleanupFunc releases a backend's resources.
type CleanupFunc func() error

// Result bundles everything a backend provides. Publisher is nil when no
// message broker is configured. Cleanup is never nil; callers may invoke
// it unconditionally.
type Result struct {
	Backend   store.Backend
	Activity  store.ActivityLog
	Publisher store.Publisher
	Cleanup   CleanupFunc
}

// Factory creates backends based on configuration.
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*Result, error)
}

// Config holds what backend creation needs.
type Config struct {
	Type Type

	// SQLite specific
	SQLiteDBPath string

	// AMQP (optional, any backend)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

// Type names a backend implementation.
type Type string

const (
	SQLiteBackend Type = "sqlite"
	MemoryBackend Type = "memory"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
