// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package assets manages the images attached to series and seasons.

Images are hosted by an external provider (Cloudinary in production). Before an
uploaded file is sent to the host, the catalog of already hosted assets is
consulted: a file whose byte size matches an existing asset reuses that asset's
secure URL instead of being uploaded twice.

Components:

  - Provider: the image host (list + upload).
  - Catalog: the cached list of hosted assets, shared through Redis.
  - Uploader: the upload-if-not-uploaded policy.
  - Refresher: a cron job that periodically reloads the catalog.
*/
package assets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/taibuivan/tvcatalog/internal/platform/form"
	"github.com/taibuivan/tvcatalog/internal/platform/validate"
)

// Asset is a single image hosted by the provider.
type Asset struct {
	PublicID  string `json:"publicId"`
	Bytes     int64  `json:"bytes"`
	SecureURL string `json:"secureUrl"`
}

// Provider is the remote image host.
type Provider interface {
	// ListAssets returns every asset currently hosted.
	ListAssets(context context.Context) ([]Asset, error)

	// Upload sends the file at path to the host.
	// A [*RejectedError] means the host refused the file itself.
	Upload(context context.Context, path string) (Asset, error)
}

// RejectedError is returned when the image host refuses a file (bad format,
// corrupt content). Its message is safe to show to the client.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	return e.Message
}

// # Content Sniffing

// AllowedMimetypes are the image formats accepted for upload.
var AllowedMimetypes = []string{"image/jpeg", "image/png", "image/gif"}

/*
CheckImage sniffs the file at path and reports whether it is an accepted image.

Returns:
  - string: the detected mimetype
  - string: a client-facing message when the format is not accepted, else ""
  - error: when the file cannot be read
*/
func CheckImage(path string) (string, string, error) {
	detected, err := mimetype.DetectFile(path)
	if err != nil {
		return "", "", fmt.Errorf("assets: failed to sniff %s: %w", path, err)
	}

	for _, allowed := range AllowedMimetypes {
		if detected.Is(allowed) {
			return allowed, "", nil
		}
	}

	message := fmt.Sprintf("Mimetype %s is not legal. Only %s are accepted",
		detected.String(), strings.Join(AllowedMimetypes, ", "))
	return detected.String(), message, nil
}

// ValidateAttachment records a failure on field when file is not an accepted image.
// A nil file means nothing was attached and always passes.
func ValidateAttachment(validator *validate.Validator, field string, file *form.File) error {
	if file == nil {
		return nil
	}

	_, message, err := CheckImage(file.Path)
	if err != nil {
		return err
	}

	validator.Custom(field, message != "", message)
	return nil
}

// FieldError reports a [*RejectedError] as a validation failure on field.
// Any other error is returned unchanged.
func FieldError(field string, err error) error {
	var rejected *RejectedError
	if errors.As(err, &rejected) {
		return validate.RequiredError(field, rejected.Message)
	}
	return err
}

