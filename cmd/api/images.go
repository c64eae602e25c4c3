// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	redisstore "github.com/taibuivan/tvcatalog/internal/platform/redis"
)

var imagesCmd = &cobra.Command{
	Use:   "images",
	Short: "Maintain the hosted image catalog",
}

var imagesRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Reload the list of hosted images into the cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withImages(cmd, func(images *imageStack) error {
			hosted, err := images.catalog.Refresh(cmd.Context())
			if err != nil {
				return err
			}
			log.Info("image_catalog_refreshed", slog.Int("count", len(hosted)))
			return nil
		})
	},
}

var imagesUploadCmd = &cobra.Command{
	Use:   "upload <dir>",
	Short: "Upload every image in a directory unless already hosted",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withImages(cmd, func(images *imageStack) error {
			urls, err := images.uploader.UploadDirectory(cmd.Context(), args[0])
			for _, url := range urls {
				fmt.Fprintln(cmd.OutOrStdout(), url)
			}
			return err
		})
	},
}

// withImages runs fn with an image stack backed by a short-lived Redis client.
func withImages(cmd *cobra.Command, fn func(images *imageStack) error) error {
	rdb, err := redisstore.NewClient(cmd.Context(), cfg.RedisURL, cfg.RedisPoolSize, log)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer func(client *redis.Client) {
		if err := client.Close(); err != nil {
			log.Error("redis_close_error", slog.Any("error", err))
		}
	}(rdb)

	images, err := newImageStack(rdb)
	if err != nil {
		return err
	}
	return fn(images)
}

func init() {
	imagesCmd.AddCommand(imagesRefreshCmd, imagesUploadCmd)
	rootCmd.AddCommand(imagesCmd)
}
