package core

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/mockid/internal/config"
)

// LoadSource reads the dataset selected by cfg.Dataset.Source.
// The postgres source opens a short-lived pool that is closed once the
// records are in memory.
func LoadSource(ctx context.Context, cfg *config.Config) ([]Record, error) {
	switch strings.ToLower(cfg.Dataset.Source) {
	case config.SourcePostgres:
		pool, err := OpenPool(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		defer pool.Close()

		return LoadPostgres(ctx, pool, cfg.Dataset.Table)

	case config.SourceFile, "":
		return LoadFile(cfg.Dataset.Path)

	default:
		return nil, fmt.Errorf("unknown dataset source %q", cfg.Dataset.Source)
	}
}

// OpenPool connects to PostgreSQL with the configured pool limits and
// verifies the connection.
func OpenPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	if cfg.ConnectTimeout > 0 {
		poolConfig.ConnConfig.ConnectTimeout = cfg.ConnectTimeout
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if u, err := url.Parse(cfg.URL); err == nil {
		slog.Info("connected to database", "name", strings.TrimPrefix(u.Path, "/"))
	}
	return pool, nil
}
