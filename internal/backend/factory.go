package backend

import (
	"context"
	"fmt"
	"log/slog"

	"duit/internal/amqp"
	"duit/internal/services"
	"duit/internal/store"
	"duit/internal/store/memory"
	mongostore "duit/internal/store/mongo"
	sqlitestore "duit/internal/store/sqlite"
)

// Result contains the constructed service and its cleanup function.
type Result struct {
	Finance *services.Finance
	Cleanup func() error
}

// Factory creates backends based on configuration.
type Factory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{logger: logger}
}

// CreateFinance builds the store for the configured backend, attaches the
// optional AMQP publisher, and wraps both in the finance service.
func (f *Factory) CreateFinance(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	st, err := f.createStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// AMQP is optional: without it the service simply skips change events.
	var events *amqp.Client
	if cfg.AMQPURL != "" {
		events, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			f.logger.Warn("Failed to initialize AMQP client, continuing without change events", "error", err)
			events = nil
		} else {
			f.logger.Info("Initialized AMQP client",
				"exchange", cfg.AMQPExchange,
				"queue", cfg.AMQPQueue)
		}
	}

	finance := services.NewFinance(st, events)

	return &Result{
		Finance: finance,
		Cleanup: finance.Close,
	}, nil
}

func (f *Factory) createStore(ctx context.Context, cfg Config) (store.Store, error) {
	switch cfg.Type {
	case MongoBackend:
		st, err := mongostore.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, fmt.Errorf("initialize mongo store: %w", err)
		}
		f.logger.Info("Initialized mongo backend", "database", cfg.MongoDatabase)
		return st, nil

	case SQLiteBackend:
		st, err := sqlitestore.Open(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		f.logger.Info("Initialized sqlite backend", "db_path", cfg.SQLiteDBPath)
		return st, nil

	case MemoryBackend:
		f.logger.Info("Initialized memory backend")
		return memory.New(), nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.Type)
	}
}
