// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package postgres provides the managed PostgreSQL connection pool and the
// generic query helpers shared by every repository: the offset/limit window
// wrapper ([PagedQuery]) and the partial update builder ([ConditionalUpdate]).
//
// # Architecture
//
// This package is part of the Infrastructure layer. Connections are acquired
// from the pool per statement and released when the rows are closed, so no
// helper holds a connection beyond a single call.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/tvcatalog/internal/platform/constants"
)

const (
	defaultMaxConns   = 25
	defaultMinConns   = 2
	maxConnLifetime   = time.Hour
	maxConnIdleTime   = 10 * time.Minute
	healthCheckPeriod = time.Minute
	connectTimeout    = 5 * time.Second
	pingTimeout       = 2 * time.Second
)

// PoolSettings sizes the pool. Zero fields fall back to the package defaults.
type PoolSettings struct {
	MaxConns         int32
	MinConns         int32
	StatementTimeout time.Duration
}

func (settings PoolSettings) withDefaults() PoolSettings {
	if settings.MaxConns <= 0 {
		settings.MaxConns = defaultMaxConns
	}
	if settings.MinConns < 0 || settings.MinConns > settings.MaxConns {
		settings.MinConns = min(defaultMinConns, settings.MaxConns)
	}
	if settings.StatementTimeout <= 0 {
		settings.StatementTimeout = constants.StatementTimeout
	}
	return settings
}

/*
NewPool opens a pool against dsn and pings it before returning.

Every physical connection gets settings.StatementTimeout as its statement_timeout.

Returns:
  - *pgxpool.Pool: the connected pool, owned by the caller
  - error: an invalid DSN or an unreachable database
*/
func NewPool(ctx context.Context, dsn string, settings PoolSettings, logger *slog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: invalid DSN: %w", err)
	}

	settings = settings.withDefaults()
	poolConfig.MaxConns = settings.MaxConns
	poolConfig.MinConns = settings.MinConns
	poolConfig.MaxConnLifetime = maxConnLifetime
	poolConfig.MaxConnIdleTime = maxConnIdleTime
	poolConfig.HealthCheckPeriod = healthCheckPeriod
	poolConfig.ConnConfig.ConnectTimeout = connectTimeout

	timeoutQuery := fmt.Sprintf("SET statement_timeout = %d", settings.StatementTimeout.Milliseconds())
	poolConfig.AfterConnect = func(ctx context.Context, connection *pgx.Conn) error {
		_, err := connection.Exec(ctx, timeoutQuery)
		return err
	}

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to create pool: %w", err)
	}

	if err := Ping(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("postgres_connected",
		slog.String("database", poolConfig.ConnConfig.Database),
		slog.Int("max_conns", int(settings.MaxConns)),
		slog.Duration("statement_timeout", settings.StatementTimeout),
	)
	return pool, nil
}

// Ping checks the pool within a short deadline.
func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		return fmt.Errorf("postgres: ping failed: %w", err)
	}
	return nil
}

// Probe adapts [Ping] to the readiness check signature.
func Probe(pool *pgxpool.Pool) func(context.Context) error {
	return func(ctx context.Context) error {
		return Ping(ctx, pool)
	}
}
