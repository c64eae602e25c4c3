// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account handles profile management for the signed-in user and account
administration.

# Architecture

  - Domain: This package depends on the auth package for the User entity, its
    repository and its validation rules.
  - Security: /me endpoints require a session, everything else requires admin.
*/
package account

import (
	"context"

	"github.com/taibuivan/tvcatalog/internal/platform/apperr"
	"github.com/taibuivan/tvcatalog/internal/platform/form"
	"github.com/taibuivan/tvcatalog/internal/platform/validate"
)

// # Contracts

// ProfileValidator checks account payloads. [auth.Service] satisfies it.
type ProfileValidator interface {
	Validate(context context.Context, values *form.Values, mode validate.Mode, selfID int) ([]apperr.FieldError, error)
}

// PasswordHasher hashes a new password before it is stored.
type PasswordHasher interface {
	Hash(plainTextPassword string) (string, error)
}
