// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package assets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// CatalogStore persists the catalog snapshot between requests and instances.
type CatalogStore interface {
	// Load returns the stored snapshot. found is false when nothing is stored.
	Load(context context.Context) (assets []Asset, found bool, err error)
	Save(context context.Context, assets []Asset, ttl time.Duration) error
	Delete(context context.Context) error
}

// # Redis Store

// RedisCatalogStore keeps the snapshot as one JSON value under a single key.
type RedisCatalogStore struct {
	client *redis.Client
	key    string
}

// NewRedisCatalogStore returns a store writing under key.
func NewRedisCatalogStore(client *redis.Client, key string) *RedisCatalogStore {
	return &RedisCatalogStore{client: client, key: key}
}

func (store *RedisCatalogStore) Load(context context.Context) ([]Asset, bool, error) {
	payload, err := store.client.Get(context, store.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("assets: failed to read catalog: %w", err)
	}

	var assets []Asset
	if err := json.Unmarshal(payload, &assets); err != nil {
		// A corrupt snapshot is treated as a miss and rebuilt.
		return nil, false, nil
	}
	return assets, true, nil
}

func (store *RedisCatalogStore) Save(context context.Context, assets []Asset, ttl time.Duration) error {
	payload, err := json.Marshal(assets)
	if err != nil {
		return fmt.Errorf("assets: failed to encode catalog: %w", err)
	}
	if err := store.client.Set(context, store.key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("assets: failed to write catalog: %w", err)
	}
	return nil
}

func (store *RedisCatalogStore) Delete(context context.Context) error {
	if err := store.client.Del(context, store.key).Err(); err != nil {
		return fmt.Errorf("assets: failed to delete catalog: %w", err)
	}
	return nil
}

// # Catalog

// Catalog is the cached list of assets already hosted by the provider.
//
// The snapshot lives in the [CatalogStore] with a TTL; a miss reloads it from
// the provider. Loaded reports whether this process has populated it at least
// once since start or the last Invalidate.
type Catalog struct {
	provider Provider
	store    CatalogStore
	ttl      time.Duration
	logger   *slog.Logger

	// mu serializes refreshes and appends within the process.
	mu     sync.Mutex
	loaded atomic.Bool
}

// NewCatalog builds a catalog over provider, persisted in store.
func NewCatalog(provider Provider, store CatalogStore, ttl time.Duration, logger *slog.Logger) *Catalog {
	return &Catalog{provider: provider, store: store, ttl: ttl, logger: logger}
}

// List returns the cached snapshot, refreshing it from the provider on a miss.
func (catalog *Catalog) List(context context.Context) ([]Asset, error) {
	assets, found, err := catalog.store.Load(context)
	if err != nil {
		return nil, err
	}
	if found {
		catalog.loaded.Store(true)
		return assets, nil
	}
	return catalog.Refresh(context)
}

// Refresh reloads the snapshot from the provider and stores it.
func (catalog *Catalog) Refresh(context context.Context) ([]Asset, error) {
	catalog.mu.Lock()
	defer catalog.mu.Unlock()

	assets, err := catalog.provider.ListAssets(context)
	if err != nil {
		return nil, fmt.Errorf("assets: failed to list hosted assets: %w", err)
	}
	if assets == nil {
		assets = []Asset{}
	}

	if err := catalog.store.Save(context, assets, catalog.ttl); err != nil {
		return nil, err
	}

	catalog.loaded.Store(true)
	catalog.logger.InfoContext(context, "image_catalog_refreshed", slog.Int("assets", len(assets)))

	return assets, nil
}

// Remember appends a freshly uploaded asset to the snapshot, if one is cached.
func (catalog *Catalog) Remember(context context.Context, asset Asset) error {
	catalog.mu.Lock()
	defer catalog.mu.Unlock()

	assets, found, err := catalog.store.Load(context)
	if err != nil || !found {
		return err
	}
	return catalog.store.Save(context, append(assets, asset), catalog.ttl)
}

// Invalidate drops the snapshot so the next List reloads it.
func (catalog *Catalog) Invalidate(context context.Context) error {
	catalog.mu.Lock()
	defer catalog.mu.Unlock()

	catalog.loaded.Store(false)
	return catalog.store.Delete(context)
}

// Loaded reports whether the snapshot has been populated by this process.
func (catalog *Catalog) Loaded() bool {
	return catalog.loaded.Load()
}
