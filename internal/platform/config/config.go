// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. A local .env file, when
present, is loaded first with 'joho/godotenv' and never overrides variables that
are already set.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// # Configuration Schema

// Config holds all runtime configuration for the catalog API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"3000"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// HostName is the public host used to build absolute pagination links.
	HostName string `env:"HOST_NAME" envDefault:"127.0.0.1:3000"`

	// Relational Database (PostgreSQL)
	DatabaseURL         string        `env:"DATABASE_URL,required,notEmpty"`
	DatabaseMaxConns    int32         `env:"DATABASE_MAX_CONNS"         envDefault:"25"`
	DatabaseMinConns    int32         `env:"DATABASE_MIN_CONNS"         envDefault:"2"`
	DatabaseStmtTimeout time.Duration `env:"DATABASE_STATEMENT_TIMEOUT" envDefault:"30s"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis)
	RedisURL      string `env:"REDIS_URL,required,notEmpty"`
	RedisPoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"10"`

	// Identity
	JWTSecret        string        `env:"JWT_SECRET,required,notEmpty"`
	JWTTokenLifetime time.Duration `env:"JWT_TOKEN_LIFETIME" envDefault:"168h"`
	BcryptCost       int           `env:"BCRYPT_COST"        envDefault:"11"`

	// Image hosting (Cloudinary)
	CloudinaryURL        string        `env:"CLOUDINARY_URL,required,notEmpty"`
	UploadDir            string        `env:"UPLOAD_DIR"`
	UploadMaxBytes       int64         `env:"UPLOAD_MAX_BYTES"       envDefault:"10485760"`
	ImageCatalogTTL      time.Duration `env:"IMAGE_CATALOG_TTL"      envDefault:"1h"`
	ImageCatalogSchedule string        `env:"IMAGE_CATALOG_SCHEDULE" envDefault:"@every 6h"`

	// Per-IP throttling
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS"   envDefault:"50"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"100"`

	// Cross-Origin Resource Sharing
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`
}

// # Configuration Loading

// Load reads an optional .env file and parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// A missing .env file is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to read .env file: %w", err)
	}

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks cross-field constraints that struct tags cannot express.
func (c *Config) validate() error {
	if c.JWTTokenLifetime <= 0 {
		return fmt.Errorf("config: JWT_TOKEN_LIFETIME must be positive, got %s", c.JWTTokenLifetime)
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("config: BCRYPT_COST must be between 4 and 31, got %d", c.BcryptCost)
	}
	if c.DatabaseMinConns > c.DatabaseMaxConns {
		return fmt.Errorf("config: DATABASE_MIN_CONNS (%d) exceeds DATABASE_MAX_CONNS (%d)", c.DatabaseMinConns, c.DatabaseMaxConns)
	}
	if strings.TrimSpace(c.HostName) == "" {
		return errors.New("config: HOST_NAME must not be empty")
	}
	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
