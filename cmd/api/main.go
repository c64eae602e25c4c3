// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the catalog API server and its
// maintenance tasks.
//
// # Commands
//
//   - serve: run the HTTP server
//   - migrate up|down|status: apply, roll back or inspect SQL migrations
//   - images refresh|upload: maintain the hosted image catalog
//   - users create-admin: bootstrap an administrator account
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/taibuivan/tvcatalog/internal/platform/config"
	"github.com/taibuivan/tvcatalog/internal/platform/constants"
)

var (
	// cfg and log are populated before any subcommand runs.
	cfg *config.Config
	log *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:           constants.AppName,
	Short:         "TV series catalog API",
	Version:       constants.AppVersion,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// ── 1. Logger ──────────────────────────────────────────────────────
		// Initialize first so that subsequent startup errors are structured JSON.
		log = newLogger(slog.LevelInfo, false)

		// ── 2. Configuration ──────────────────────────────────────────────
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded

		level := slog.LevelInfo
		if cfg.Debug {
			level = slog.LevelDebug
		}
		log = newLogger(level, cfg.IsDevelopment())
		log.Debug("debug_logging_enabled")

		log.Info("configuration_loaded",
			slog.String("command", cmd.CommandPath()),
			slog.String("environment", cfg.Environment),
		)
		return nil
	},
}

// newLogger builds the process logger and installs it as the default.
// Development uses the text handler, everything else emits JSON.
func newLogger(level slog.Level, text bool) *slog.Logger {
	options := &slog.HandlerOptions{Level: level}

	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, options)
	if text {
		handler = slog.NewTextHandler(os.Stdout, options)
	}

	logger := slog.New(handler).With(slog.String(constants.FieldApp, constants.AppName))

	slog.SetDefault(logger)
	return logger
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if log != nil {
			log.Error("command_failed", slog.Any("error", err))
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
