// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/taibuivan/tvcatalog/internal/platform/constants"
	"github.com/taibuivan/tvcatalog/internal/platform/form"
	"github.com/taibuivan/tvcatalog/internal/platform/sec"
	"github.com/taibuivan/tvcatalog/internal/users/auth"
)

// adminPasswordEnv lets scripts pass the password without exposing it in the process list.
const adminPasswordEnv = "ADMIN_PASSWORD"

var (
	adminUsername string
	adminEmail    string
	adminPassword string
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage user accounts",
}

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an account with admin privileges",
	RunE: func(cmd *cobra.Command, args []string) error {
		password := adminPassword
		if password == "" {
			password = os.Getenv(adminPasswordEnv)
		}
		if password == "" {
			return errors.New("a password is required: use --password or " + adminPasswordEnv)
		}

		pool, err := openPool(cmd.Context())
		if err != nil {
			return fmt.Errorf("connect to postgres: %w", err)
		}
		defer pool.Close()

		tokens, err := sec.NewTokenService(cfg.JWTSecret, constants.AuthIssuer, cfg.JWTTokenLifetime)
		if err != nil {
			return err
		}

		service := auth.NewService(auth.NewUserRepository(pool), sec.NewPasswordHasher(cfg.BcryptCost), tokens, log)
		user, err := service.CreateAdmin(cmd.Context(), form.New(map[string]any{
			auth.FieldUsername: adminUsername,
			auth.FieldEmail:    adminEmail,
			auth.FieldPassword: password,
		}))
		if err != nil {
			return err
		}

		log.Info("admin_created", slog.Int("user_id", user.ID), slog.String("username", user.Username))
		return nil
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminUsername, "username", "admin", "Username of the new admin")
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "Email of the new admin")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "Password of the new admin (or set "+adminPasswordEnv+")")
	_ = createAdminCmd.MarkFlagRequired("email")

	usersCmd.AddCommand(createAdminCmd)
	rootCmd.AddCommand(usersCmd)
}
