// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/taibuivan/tvcatalog/internal/api"
	"github.com/taibuivan/tvcatalog/internal/core/episode"
	"github.com/taibuivan/tvcatalog/internal/core/genre"
	"github.com/taibuivan/tvcatalog/internal/core/rating"
	"github.com/taibuivan/tvcatalog/internal/core/season"
	"github.com/taibuivan/tvcatalog/internal/core/series"
	"github.com/taibuivan/tvcatalog/internal/platform/assets"
	"github.com/taibuivan/tvcatalog/internal/platform/constants"
	"github.com/taibuivan/tvcatalog/internal/platform/form"
	"github.com/taibuivan/tvcatalog/internal/platform/migration"
	pgstore "github.com/taibuivan/tvcatalog/internal/platform/postgres"
	redisstore "github.com/taibuivan/tvcatalog/internal/platform/redis"
	"github.com/taibuivan/tvcatalog/pkg/pagination"
	"github.com/taibuivan/tvcatalog/internal/platform/sec"
	"github.com/taibuivan/tvcatalog/internal/users/account"
	"github.com/taibuivan/tvcatalog/internal/users/auth"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run migrations and start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// serve runs the server until ctx is cancelled.
//
// # Startup Sequence
//
//  1. Connect to PostgreSQL and Redis.
//  2. Run database migrations (idempotent).
//  3. Wire the image host, domain services and HTTP handlers.
//  4. Start the catalog refresher and the HTTP server.
//  5. Drain in-flight requests once a signal arrives.
func serve(ctx context.Context) error {

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(ctx, 30*time.Second)
	defer startupCancel()

	// ── 1. Stores ─────────────────────────────────────────────────────────
	conns, err := openStores(startupCtx)
	if err != nil {
		return err
	}
	defer conns.Close()

	// ── 2. Migrations ─────────────────────────────────────────────────────
	if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	// ── 3. Security ───────────────────────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.JWTSecret, constants.AuthIssuer, cfg.JWTTokenLifetime)
	if err != nil {
		return fmt.Errorf("initialize jwt service: %w", err)
	}
	hasher := sec.NewPasswordHasher(cfg.BcryptCost)

	// ── 4. Image host ─────────────────────────────────────────────────────
	images, err := newImageStack(conns.redis)
	if err != nil {
		return err
	}

	refresher, err := assets.NewRefresher(ctx, images.catalog, cfg.ImageCatalogSchedule, log)
	if err != nil {
		return err
	}

	// ── 5. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: pgstore.Probe(conns.pool),
		CheckCache:    redisstore.Probe(conns.redis),
	}, log)

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	baseURL := pagination.BaseURL(cfg.HostName)
	uploads := form.Options{MaxBytes: cfg.UploadMaxBytes, TempDir: cfg.UploadDir}

	seriesRepository := series.NewPostgresRepository(conns.pool)
	episodeRepository := episode.NewPostgresRepository(conns.pool)

	genreService := genre.NewService(genre.NewPostgresRepository(conns.pool), log)
	ratingService := rating.NewService(rating.NewPostgresRepository(conns.pool), seriesRepository, log)
	seasonService := season.NewService(season.NewPostgresRepository(conns.pool), seriesRepository, episodeRepository, images.uploader, log)
	episodeService := episode.NewService(episodeRepository, seasonService, log)
	seriesService := series.NewService(seriesRepository, seasonService, genreService, ratingService, images.uploader, log)

	userRepository := auth.NewUserRepository(conns.pool)
	authService := auth.NewService(userRepository, hasher, tokens, log)
	accountService := account.NewService(userRepository, authService, hasher, log)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Series:    series.NewHandler(seriesService, baseURL, uploads),
		Season:    season.NewHandler(seasonService, baseURL, uploads),
		Episode:   episode.NewHandler(episodeService),
		Genre:     genre.NewHandler(genreService, baseURL),
		Rating:    rating.NewHandler(ratingService, rating.FacetRating),
		State:     rating.NewHandler(ratingService, rating.FacetState),
		Auth:      auth.NewHandler(authService),
		Account:   account.NewHandler(accountService, baseURL),
	}

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	server := api.NewServer(ctx, cfg, log, tokens, handlers)

	refresher.Start()
	defer refresher.Stop()

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	// Block until OS signal or server error.
	select {
	case <-ctx.Done():
		log.Info("shutdown_signal_received")
	case err := <-serverErr:
		return fmt.Errorf("server startup: %w", err)
	}

	// Give in-flight requests enough time to complete.
	log.Info("shutting_down_server", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info("server_stopped_cleanly")
	return nil
}
