package db

import (
	"context"
	"fmt"
	"time"

	"bloodlink/pkg/types"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ConnectionObserver receives pool lifecycle events. connectivity.Monitor implements it.
type ConnectionObserver interface {
	MarkConnected()
	MarkDisconnected(err error)
}

// Connect builds a pool and pings it. With a nil observer a failed ping is an
// error. With an observer the failure is reported to it and the pool is still
// returned, so the caller can run from memory until Postgres shows up.
func Connect(ctx context.Context, config *types.Config, observer ConnectionObserver) (*pgxpool.Pool, error) {

	poolConfig, err := pgxpool.ParseConfig(config.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	if _, ok := poolConfig.ConnConfig.RuntimeParams["search_path"]; !ok {
		poolConfig.ConnConfig.RuntimeParams["search_path"] = config.DatabaseSchema
	}

	poolConfig.MaxConnIdleTime = 15 * time.Minute
	poolConfig.MaxConnLifetime = 45 * time.Minute

	if observer != nil {
		poolConfig.AfterConnect = func(context.Context, *pgx.Conn) error {
			observer.MarkConnected()
			return nil
		}
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		if observer != nil {
			observer.MarkDisconnected(err)
			return pool, nil
		}
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if observer != nil {
		observer.MarkConnected()
	}

	return pool, nil
}
