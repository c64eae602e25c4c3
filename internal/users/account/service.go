// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"log/slog"

	"github.com/taibuivan/tvcatalog/internal/platform/apperr"
	"github.com/taibuivan/tvcatalog/internal/platform/form"
	"github.com/taibuivan/tvcatalog/internal/platform/validate"
	"github.com/taibuivan/tvcatalog/internal/users/auth"
	"github.com/taibuivan/tvcatalog/pkg/pagination"
)

// # Service Layer

// Service orchestrates profile updates and account administration.
type Service struct {
	users     auth.UserRepository
	validator ProfileValidator
	hasher    PasswordHasher
	logger    *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(users auth.UserRepository, validator ProfileValidator, hasher PasswordHasher, logger *slog.Logger) *Service {
	return &Service{
		users:     users,
		validator: validator,
		hasher:    hasher,
		logger:    logger,
	}
}

// # Profile Management

// GetProfile returns the account of userID.
func (service *Service) GetProfile(context context.Context, userID int) (*auth.User, error) {
	return service.users.FindByID(context, userID)
}

/*
UpdateProfile changes the email and/or password of the signed-in user.

Other fields in values are ignored; usernames and the admin flag cannot be
changed here.

Returns:
  - *auth.User: the updated account
  - error: NotFound, validation failures or NothingToPatch when neither field was sent
*/
func (service *Service) UpdateProfile(context context.Context, userID int, values *form.Values) (*auth.User, error) {
	if _, err := service.users.FindByID(context, userID); err != nil {
		return nil, err
	}

	failures, err := service.validator.Validate(context, values, validate.Patch, userID)
	if err != nil {
		return nil, err
	}
	if len(failures) > 0 {
		return nil, apperr.Invalid(failures)
	}

	patch := auth.Patch{Email: validate.StringPtr(values.Get(auth.FieldEmail))}

	if password := validate.StringPtr(values.Get(auth.FieldPassword)); password != nil {
		hash, err := service.hasher.Hash(*password)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		patch.PasswordHash = &hash
	}

	user, err := service.users.Update(context, userID, patch)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "profile_updated",
		slog.Int("user_id", userID),
		slog.Bool("email_changed", patch.Email != nil),
		slog.Bool("password_changed", patch.PasswordHash != nil),
	)
	return user, nil
}

// # Administration

func (service *Service) ListUsers(context context.Context, params pagination.Params) (*pagination.Page[auth.User], error) {
	return service.users.ListUsers(context, params)
}

func (service *Service) GetUser(context context.Context, id int) (*auth.User, error) {
	return service.users.FindByID(context, id)
}

/*
SetAdmin grants or revokes admin privileges.

Parameters:
  - actorID: the admin performing the change
  - id: the account being changed
  - values: must carry a boolean "admin" field

Returns:
  - *auth.User: the updated account
  - error: NotFound, validation failure, or a refusal when an admin demotes themselves
*/
func (service *Service) SetAdmin(context context.Context, actorID, id int, values *form.Values) (*auth.User, error) {
	if _, err := service.users.FindByID(context, id); err != nil {
		return nil, err
	}

	field := values.Get(auth.FieldAdmin)
	admin, ok := validate.ToBool(field.Value)
	if !field.Supplied() || !ok {
		return nil, validate.RequiredError(auth.FieldAdmin, "Must be a boolean")
	}

	if !admin && actorID == id {
		return nil, apperr.ValidationError("Can not remove admin privileges from self")
	}

	user, err := service.users.Update(context, id, auth.Patch{Admin: &admin})
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "user_admin_changed",
		slog.Int("actor_id", actorID),
		slog.Int("user_id", id),
		slog.Bool("admin", admin),
	)
	return user, nil
}
