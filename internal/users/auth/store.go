// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"

	"github.com/taibuivan/tvcatalog/pkg/pagination"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound when no account has that id
	*/
	FindByID(context context.Context, id int) (*User, error)

	/*
		FindByUsername returns the account with the given username.

		Returns:
		  - *User: Hydrated entity, or nil when no account matches
		  - error: Database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Returns:
		  - *User: Hydrated entity, or nil when no account matches
		  - error: Database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a brand-new user account.

		Parameters:
		  - context: context.Context
		  - user: *User (PasswordHash already set)

		Returns:
		  - *User: The stored account with its id
		  - error: apperr.Conflict on a username or email collision
	*/
	Create(context context.Context, user *User) (*User, error)

	// ListUsers returns one page of accounts ordered by id.
	ListUsers(context context.Context, params pagination.Params) (*pagination.Page[User], error)

	/*
		Update writes the supplied columns of patch.

		Returns:
		  - *User: The updated account
		  - error: apperr.NothingToPatch when patch is empty, apperr.NotFound for an unknown id
	*/
	Update(context context.Context, id int, patch Patch) (*User, error)
}
