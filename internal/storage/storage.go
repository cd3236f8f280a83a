// Package storage opens the configured store driver and exposes its repositories.
package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fastygo/choreboard/internal/config"
	"github.com/fastygo/choreboard/internal/infrastructure/monitor"
	pgInfra "github.com/fastygo/choreboard/internal/infrastructure/postgres"
	"github.com/fastygo/choreboard/repository"
	"github.com/fastygo/choreboard/repository/bolt"
	"github.com/fastygo/choreboard/repository/postgres"
)

// Storage bundles the repositories of one driver.
type Storage struct {
	Driver       string
	Tasks        repository.TaskRepository
	Participants repository.ParticipantRepository
	Completions  repository.CompletionRepository
	// Check probes the underlying store for the health monitor.
	Check monitor.CheckFunc
	close func() error
}

// Close releases the underlying connection or file.
func (s *Storage) Close() error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close()
}

// Open connects to the driver selected by cfg.Store.Driver. For Postgres, pending
// migrations run first when enabled.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Storage, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Store.Driver {
	case config.DriverBolt:
		store, err := bolt.Open(cfg.Store.BoltPath)
		if err != nil {
			return nil, fmt.Errorf("open bolt store: %w", err)
		}
		logger.Info("using bolt store", zap.String("path", cfg.Store.BoltPath))
		return &Storage{
			Driver:       config.DriverBolt,
			Tasks:        bolt.NewTaskRepository(store),
			Participants: bolt.NewParticipantRepository(store),
			Completions:  bolt.NewCompletionRepository(store),
			Check:        monitor.Pinger(store),
			close:        store.Close,
		}, nil

	case config.DriverPostgres:
		if err := pgInfra.RunMigrations(cfg, false, logger); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		pool, err := pgInfra.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		return &Storage{
			Driver:       config.DriverPostgres,
			Tasks:        postgres.NewTaskRepository(pool),
			Participants: postgres.NewParticipantRepository(pool),
			Completions:  postgres.NewCompletionRepository(pool),
			Check:        monitor.Postgres(pool),
			close: func() error {
				pool.Close()
				return nil
			},
		}, nil

	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}
