package backend

import (
	"context"
	"fmt"
	"log/slog"

	"lifelog/internal/amqp"
	"lifelog/internal/storage"
	"lifelog/internal/store"
	"lifelog/internal/store/memory"
)

type DefaultFactory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

func (f *DefaultFactory) CreateBackend(_ context.Context, config Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case SQLiteBackend:
		return f.createSQLiteBackend(config)
	case MemoryBackend:
		return f.createMemoryBackend(config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*Result, error) {
	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("initialize SQLite repository: %w", err)
	}

	publisher, amqpClose := f.connectAMQP(config)

	f.logger.Info("Initialized SQLite backend",
		"db_path", config.SQLiteDBPath,
		"amqp_enabled", publisher != nil)

	return &Result{
		Backend:   repo,
		Activity:  repo,
		Publisher: publisher,
		Cleanup: func() error {
			if amqpClose != nil {
				amqpClose()
			}
			return repo.Close()
		},
	}, nil
}

func (f *DefaultFactory) createMemoryBackend(config Config) (*Result, error) {
	s := memory.New()

	publisher, amqpClose := f.connectAMQP(config)

	f.logger.Info("Initialized memory backend", "amqp_enabled", publisher != nil)

	return &Result{
		Backend:   s,
		Activity:  s,
		Publisher: publisher,
		Cleanup: func() error {
			if amqpClose != nil {
				amqpClose()
			}
			return nil
		},
	}, nil
}

// connectAMQP is best-effort: a missing or unreachable broker downgrades to
// local-only operation instead of failing startup.
func (f *DefaultFactory) connectAMQP(config Config) (store.Publisher, func()) {
	if config.AMQPURL == "" {
		return nil, nil
	}

	client, err := amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
	if err != nil {
		f.logger.Warn("Failed to initialize AMQP client, continuing without change events", "error", err)
		return nil, nil
	}

	f.logger.Info("Initialized AMQP client",
		"exchange", config.AMQPExchange,
		"queue", config.AMQPQueue)

	return client, func() { client.Close() }
}
