// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"

	"github.com/taibuivan/tvcatalog/internal/platform/apperr"
	"github.com/taibuivan/tvcatalog/internal/platform/form"
	"github.com/taibuivan/tvcatalog/internal/platform/validate"
)

/*
Validate checks an account payload.

Usernames are only checked on create since they cannot be patched. In patch
mode the password and email are checked when supplied, and an email owned by
selfID is not a conflict.

Returns:
  - []apperr.FieldError: failures in check order, empty on success
  - error: lookup failures only
*/
func (service *Service) Validate(context context.Context, values *form.Values, mode validate.Mode, selfID int) ([]apperr.FieldError, error) {
	validator := &validate.Validator{}

	if mode == validate.Create {
		username := values.Get(FieldUsername)
		if !validate.IsNonEmptyString(username.Value, MinUsernameLength, MaxUsernameLength) {
			validator.Add(FieldUsername, validate.LengthMessage(username.Value, MinUsernameLength, MaxUsernameLength))
		}

		if value, ok := username.String(); ok && value != "" {
			existing, err := service.users.FindByUsername(context, value)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				validator.Add(FieldUsername, "Username exists")
			}
		}
	}

	password := values.Get(FieldPassword)
	if mode.Checks(password) {
		validator.Text(FieldPassword, password.Value, MinPasswordLength, MaxPasswordLength)
	}

	email := values.Get(FieldEmail)
	if mode.Checks(email) {
		if !validate.IsNonEmptyString(email.Value, MinEmailLength, MaxEmailLength) {
			validator.Add(FieldEmail, validate.LengthMessage(email.Value, MinEmailLength, MaxEmailLength))
		} else {
			validator.Email(FieldEmail, email.Value)
		}

		if value, ok := email.String(); ok && value != "" {
			existing, err := service.users.FindByEmail(context, value)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != selfID {
				validator.Add(FieldEmail, "Email exists")
			}
		}
	}

	return validator.Errors(), nil
}
