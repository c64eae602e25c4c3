// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package assets

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Uploader sends images to the provider unless an identical one is already hosted.
type Uploader struct {
	provider Provider
	catalog  *Catalog
	logger   *slog.Logger
}

// NewUploader creates a new Uploader.
func NewUploader(provider Provider, catalog *Catalog, logger *slog.Logger) *Uploader {
	return &Uploader{provider: provider, catalog: catalog, logger: logger}
}

/*
UploadIfNotUploaded returns the secure URL of the image at path.

An already hosted asset with the same byte size is reused; otherwise the file
is uploaded and remembered in the catalog.

Returns:
  - string: the secure URL
  - error: [*RejectedError] when the host refuses the file
*/
func (uploader *Uploader) UploadIfNotUploaded(context context.Context, path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("assets: failed to stat %s: %w", path, err)
	}

	hosted, err := uploader.catalog.List(context)
	if err != nil {
		return "", err
	}

	index := slices.IndexFunc(hosted, func(asset Asset) bool {
		return asset.Bytes == info.Size()
	})
	if index >= 0 {
		uploader.logger.DebugContext(context, "image_already_uploaded",
			slog.String("path", path),
			slog.String("url", hosted[index].SecureURL),
		)
		return hosted[index].SecureURL, nil
	}

	asset, err := uploader.provider.Upload(context, path)
	if err != nil {
		return "", err
	}
	if asset.SecureURL == "" {
		return "", fmt.Errorf("assets: upload of %s returned no secure url", path)
	}

	if err := uploader.catalog.Remember(context, asset); err != nil {
		uploader.logger.WarnContext(context, "image_catalog_append_failed", slog.Any("error", err))
	}

	uploader.logger.InfoContext(context, "image_uploaded",
		slog.String("path", path),
		slog.String("public_id", asset.PublicID),
	)

	return asset.SecureURL, nil
}

// imageExtensions are the file extensions picked up by UploadDirectory.
var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif"}

// UploadDirectory uploads every image file found directly inside dir and
// returns their secure URLs in directory order.
func (uploader *Uploader) UploadDirectory(context context.Context, dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("assets: failed to read %s: %w", dir, err)
	}

	urls := []string{}
	for _, entry := range entries {
		if entry.IsDir() || !slices.Contains(imageExtensions, strings.ToLower(filepath.Ext(entry.Name()))) {
			continue
		}

		url, err := uploader.UploadIfNotUploaded(context, filepath.Join(dir, entry.Name()))
		if err != nil {
			return urls, fmt.Errorf("assets: failed to upload %s: %w", entry.Name(), err)
		}
		urls = append(urls, url)
	}

	uploader.logger.InfoContext(context, "image_directory_uploaded",
		slog.String("dir", dir),
		slog.Int("count", len(urls)),
	)

	return urls, nil
}
