// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/tvcatalog/internal/platform/assets"
	"github.com/taibuivan/tvcatalog/internal/platform/constants"
	pgstore "github.com/taibuivan/tvcatalog/internal/platform/postgres"
	redisstore "github.com/taibuivan/tvcatalog/internal/platform/redis"
)

// stores holds the shared connections of a command run.
type stores struct {
	pool  *pgxpool.Pool
	redis *redis.Client
}

// openStores connects to PostgreSQL and Redis.
func openStores(context context.Context) (*stores, error) {
	pool, err := openPool(context)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	rdb, err := redisstore.NewClient(context, cfg.RedisURL, cfg.RedisPoolSize, log)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &stores{pool: pool, redis: rdb}, nil
}

// openPool connects to PostgreSQL with the configured pool settings.
func openPool(context context.Context) (*pgxpool.Pool, error) {
	return pgstore.NewPool(context, cfg.DatabaseURL, pgstore.PoolSettings{
		MaxConns:         cfg.DatabaseMaxConns,
		MinConns:         cfg.DatabaseMinConns,
		StatementTimeout: cfg.DatabaseStmtTimeout,
	}, log)
}

func (s *stores) Close() {
	log.Info("closing_redis_client")
	if err := s.redis.Close(); err != nil {
		log.Error("redis_close_error", slog.Any("error", err))
	}

	log.Info("closing_postgres_pool")
	s.pool.Close()
}

// imageStack is the hosted image catalog with its uploader.
type imageStack struct {
	catalog  *assets.Catalog
	uploader *assets.Uploader
}

// newImageStack wires Cloudinary behind a Redis-cached catalog.
func newImageStack(rdb *redis.Client) (*imageStack, error) {
	provider, err := assets.NewCloudinaryProvider(cfg.CloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("initialize image host: %w", err)
	}

	store := assets.NewRedisCatalogStore(rdb, constants.RedisKeyImageCatalog)
	catalog := assets.NewCatalog(provider, store, cfg.ImageCatalogTTL, log)

	return &imageStack{
		catalog:  catalog,
		uploader: assets.NewUploader(provider, catalog, log),
	}, nil
}
