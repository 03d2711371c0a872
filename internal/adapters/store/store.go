// Package store selects and opens the configured quote store.
package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen/quotes-service/internal/adapters/store/memory"
	"github.com/jsamuelsen/quotes-service/internal/adapters/store/mongo"
	"github.com/jsamuelsen/quotes-service/internal/adapters/store/postgres"
	"github.com/jsamuelsen/quotes-service/internal/platform/config"
	"github.com/jsamuelsen/quotes-service/internal/ports"
)

// Open connects to the store named by cfg.Driver.
// The caller owns the returned store and must Close it.
func Open(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (ports.QuoteStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	logger = logger.With(slog.String("store", cfg.Driver))

	switch cfg.Driver {
	case config.StoreDriverMemory, "":
		logger.Warn("using in-memory quote store, data is lost on exit")
		return memory.New(), nil

	case config.StoreDriverMongo:
		s, err := mongo.Open(ctx, mongo.Config{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
			Timeout:    cfg.Mongo.Timeout,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("opening mongo store: %w", err)
		}

		return s, nil

	case config.StoreDriverPostgres:
		s, err := postgres.Open(ctx, postgres.Config{
			DSN:      cfg.Postgres.DSN,
			MaxConns: cfg.Postgres.MaxConns,
			Timeout:  cfg.Postgres.Timeout,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("opening postgres store: %w", err)
		}

		return s, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
