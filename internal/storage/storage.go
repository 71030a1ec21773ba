// Package storage opens the persistence backend selected by configuration
// and hands back the repositories built on it.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/yatra-app/yatra/internal/config"
	"github.com/yatra-app/yatra/internal/repo"
	"github.com/yatra-app/yatra/internal/store"
	"github.com/yatra-app/yatra/migrations"
)

// Backend is an opened storage driver. Close releases whatever it holds.
type Backend struct {
	Repos repo.Repos
	Store *store.Store  // set for the file driver
	Pool  *pgxpool.Pool // set for the postgres driver
}

// Close releases the connection pool, if any.
func (b *Backend) Close() {
	if b.Pool != nil {
		b.Pool.Close()
	}
}

// Open builds the backend named by cfg.StorageDriver. With the postgres
// driver and MigrateOnStart, pending migrations are applied first.
func Open(ctx context.Context, cfg config.Config, log *slog.Logger) (*Backend, error) {
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		pool, err := OpenPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if cfg.MigrateOnStart {
			if err := Migrate(ctx, pool, log); err != nil {
				pool.Close()
				return nil, err
			}
		}
		log.Info("storage ready", "driver", config.DriverPostgres)
		return &Backend{Repos: repo.NewPostgres(pool), Pool: pool}, nil
	default:
		s, err := store.Open(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("storage.Open: %w", err)
		}
		log.Info("storage ready", "driver", config.DriverFile, "dir", s.Dir())
		return &Backend{Repos: repo.NewFile(s), Store: s}, nil
	}
}

// OpenPool creates a pgx pool and verifies the database is reachable.
// pgxpool.New does not open connections immediately; Ping forces one.
func OpenPool(ctx context.Context, url string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("storage.OpenPool: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("storage.OpenPool: ping: %w", err)
	}
	return pool, nil
}

// Migrate applies every pending migration through a database/sql handle
// borrowed from pool.
func Migrate(ctx context.Context, pool *pgxpool.Pool, log *slog.Logger) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := migrations.NewProvider(db)
	if err != nil {
		return fmt.Errorf("storage.Migrate: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("storage.Migrate: %w", err)
	}
	for _, r := range results {
		log.Info("migration applied", "version", r.Source.Version, "duration_ms", r.Duration.Milliseconds())
	}
	return nil
}
