package backend

import (
	"context"
	"testing"

	appconfig "lifelog/internal/config"
)

func TestFromAppConfig(t *testing.T) {
	if _, err := FromAppConfig(nil); err == nil {
		t.Error("expected an error for a nil app config")
	}

	if _, err := FromAppConfig(&appconfig.Config{DataBackend: "postgres"}); err == nil {
		t.Error("expected an error for an unknown backend type")
	}

	cfg, err := FromAppConfig(&appconfig.Config{
		DataBackend:  "sqlite",
		SQLiteDBPath: "/tmp/x.db",
		AMQPURL:      "amqp://localhost:5672/",
		AMQPExchange: "lifelog",
		AMQPQueue:    "record_changes",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Type != SQLiteBackend || cfg.SQLiteDBPath != "/tmp/x.db" || cfg.AMQPQueue != "record_changes" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"memory backend", Config{Type: MemoryBackend}, false},
		{"sqlite with path", Config{Type: SQLiteBackend, SQLiteDBPath: "x.db"}, false},
		{"sqlite without path", Config{Type: SQLiteBackend}, true},
		{"unknown type", Config{Type: "postgres"}, true},
		{"amqp url without queue", Config{Type: MemoryBackend, AMQPURL: "amqp://x/", AMQPExchange: "e"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateMemoryBackend(t *testing.T) {
	factory := NewFactory(nil)
	result, err := factory.CreateBackend(context.Background(), Config{Type: MemoryBackend})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Backend == nil || result.Activity == nil {
		t.Error("expected backend and activity log")
	}
	if result.Publisher != nil {
		t.Error("expected no publisher without an AMQP URL")
	}
	// Entrypoints defer Cleanup unconditionally; it must be callable even
	// when there is nothing to release.
	if result.Cleanup == nil {
		t.Fatal("expected a non-nil cleanup func")
	}
	if err := result.Cleanup(); err != nil {
		t.Errorf("cleanup: %v", err)
	}
}
