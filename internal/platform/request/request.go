// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

Path ids and the caller identity are read here so every handler reports a bad
id or a missing token with the same error.
*/
package requestutil

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tvcatalog/internal/platform/apperr"
	"github.com/taibuivan/tvcatalog/internal/platform/ctxutil"
	"github.com/taibuivan/tvcatalog/pkg/convert"
)

/*
IntParam retrieves a named URL parameter and parses it as a positive integer id.

Returns:
  - int: the parsed id
  - error: apperr.ValidationError naming the parameter when it is not an integer
*/
func IntParam(request *http.Request, name string) (int, error) {
	id, ok := convert.ToID(chi.URLParam(request, name))
	if !ok {
		return 0, apperr.ValidationError("Invalid path parameter", apperr.FieldError{
			Field:   name,
			Message: name + " must be an integer",
		})
	}
	return id, nil
}

// RequiredUserID returns the caller's user id, or Unauthorized for anonymous requests.
func RequiredUserID(request *http.Request) (int, error) {
	userID, ok := ctxutil.GetUserID(request.Context())
	if !ok {
		return 0, apperr.Unauthorized("Authentication required")
	}
	return userID, nil
}
