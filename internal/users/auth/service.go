// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/tvcatalog/internal/platform/apperr"
	"github.com/taibuivan/tvcatalog/internal/platform/form"
	"github.com/taibuivan/tvcatalog/internal/platform/validate"
)

// # Dependencies

// PasswordHasher hashes and verifies passwords. [sec.PasswordHasher] satisfies it.
type PasswordHasher interface {
	Hash(plainTextPassword string) (string, error)
	Compare(plainTextPassword, existingHash string) bool
}

// TokenIssuer signs access tokens. [sec.TokenService] satisfies it.
type TokenIssuer interface {
	GenerateAccessToken(userID int, username string, admin bool) (string, error)
	Lifetime() time.Duration
}

// # Service

// Service orchestrates account creation and credential checks.
type Service struct {
	users  UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
	logger *slog.Logger
}

// NewService constructs a new [Service].
func NewService(users UserRepository, hasher PasswordHasher, tokens TokenIssuer, logger *slog.Logger) *Service {
	return &Service{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
	}
}

// errBadCredentials deliberately does not say which half of the pair was wrong.
var errBadCredentials = apperr.Unauthorized("Invalid username or password")

/*
Register creates a regular account.

Returns:
  - *User: the stored account
  - error: validation failures or storage errors
*/
func (service *Service) Register(context context.Context, values *form.Values) (*User, error) {
	return service.create(context, values, false)
}

// CreateAdmin creates an account holding admin privileges.
func (service *Service) CreateAdmin(context context.Context, values *form.Values) (*User, error) {
	return service.create(context, values, true)
}

func (service *Service) create(context context.Context, values *form.Values, admin bool) (*User, error) {
	failures, err := service.Validate(context, values, validate.Create, 0)
	if err != nil {
		return nil, err
	}
	if len(failures) > 0 {
		return nil, apperr.Invalid(failures)
	}

	username, _ := values.Get(FieldUsername).String()
	email, _ := values.Get(FieldEmail).String()
	password, _ := values.Get(FieldPassword).String()

	hash, err := service.hasher.Hash(password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user, err := service.users.Create(context, &User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Admin:        admin,
	})
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "user_registered",
		slog.Int("user_id", user.ID),
		slog.String("username", user.Username),
		slog.Bool("admin", user.Admin),
	)
	return user, nil
}

/*
Login verifies a username and password and issues an access token.

Returns:
  - *Session: the account, its token and the token lifetime in seconds
  - error: validation failure for missing fields, Unauthorized for bad credentials
*/
func (service *Service) Login(context context.Context, values *form.Values) (*Session, error) {
	username, _ := values.Get(FieldUsername).String()
	password, _ := values.Get(FieldPassword).String()

	validator := &validate.Validator{}
	validator.Custom(FieldUsername, username == "", "Username is required")
	validator.Custom(FieldPassword, password == "", "Password is required")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	user, err := service.users.FindByUsername(context, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !service.hasher.Compare(password, user.PasswordHash) {
		service.logger.WarnContext(context, "login_failed", slog.String("username", username))
		return nil, errBadCredentials
	}

	token, err := service.tokens.GenerateAccessToken(user.ID, user.Username, user.Admin)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth: issue token for user %d: %w", user.ID, err))
	}

	service.logger.InfoContext(context, "user_logged_in", slog.Int("user_id", user.ID))
	return &Session{
		User:      user,
		Token:     token,
		ExpiresIn: int64(service.tokens.Lifetime().Seconds()),
	}, nil
}
