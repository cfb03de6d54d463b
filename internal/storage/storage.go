// Package storage opens the campaign repository selected by configuration.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"campaign-ids/internal/adapter/memory"
	"campaign-ids/internal/adapter/postgres"
	"campaign-ids/internal/adapter/sqlite"
	"campaign-ids/internal/config"
	"campaign-ids/internal/config/configs"
	"campaign-ids/internal/core/port"
	"campaign-ids/internal/db"
)

// Store is an open repository together with the resources backing it.
type Store struct {
	Repo    port.CampaignRepository
	Backend string
	close   func() error
}

// NewStore wraps an already open repository. closeFn may be nil.
func NewStore(repo port.CampaignRepository, backend string, closeFn func() error) *Store {
	return &Store{Repo: repo, Backend: backend, close: closeFn}
}

// Close releases the underlying database, if any.
func (s *Store) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// Open runs the configured migrations and returns a ready repository.
func Open(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Store, error) {
	kind, err := cfg.Store.Kind()
	if err != nil {
		return nil, err
	}

	switch kind {
	case configs.BackendMemory:
		return &Store{Repo: memory.NewCampaignRepository(), Backend: kind}, nil

	case configs.BackendPostgres:
		if cfg.Psql.RunMigrations {
			if err = db.MigratePostgres(cfg.Psql.Addr.String()); err != nil {
				return nil, fmt.Errorf("postgres migrations: %w", err)
			}
			logger.Info("migrations applied successfully", slog.String("backend", kind))
		}
		pool, err := db.NewPostgresPool(ctx, cfg.Psql)
		if err != nil {
			return nil, fmt.Errorf("postgres connection: %w", err)
		}
		return &Store{
			Repo:    postgres.NewCampaignRepository(pool),
			Backend: kind,
			close:   func() error { pool.Close(); return nil },
		}, nil

	default:
		conn, err := db.OpenSQLite(ctx, cfg.SQLite)
		if err != nil {
			return nil, err
		}
		if cfg.SQLite.RunMigrations {
			if err = db.MigrateSQLite(cfg.SQLite.Path); err != nil {
				conn.Close()
				return nil, fmt.Errorf("sqlite migrations: %w", err)
			}
			logger.Debug("migrations applied successfully", slog.String("backend", kind), slog.String("path", cfg.SQLite.Path))
		}
		return &Store{
			Repo:    sqlite.NewCampaignRepository(conn),
			Backend: kind,
			close:   conn.Close,
		}, nil
	}
}
