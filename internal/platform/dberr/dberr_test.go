// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tvcatalog/internal/platform/apperr"
	"github.com/taibuivan/tvcatalog/internal/platform/dberr"
)

/*
TestWrap describes how driver errors are classified.
*/
func TestWrap(t *testing.T) {
	uniqueViolation := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_series_user_id_series_id_key"}

	tests := []struct {
		name string
		err  error
		code string
	}{
		{"no_rows", pgx.ErrNoRows, apperr.CodeNotFound},
		{"wrapped_no_rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), apperr.CodeNotFound},
		{"unique_violation", uniqueViolation, apperr.CodeConflict},
		{"foreign_key", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, apperr.CodeConflict},
		{"other_pg_error", &pgconn.PgError{Code: pgerrcode.SyntaxError}, apperr.CodeInternal},
		{"connection", errors.New("connection refused"), apperr.CodeInternal},
		{"already_classified", apperr.NothingToPatch(), apperr.CodeNothingToPatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := dberr.Wrap(tt.err, "test_action")
			ae := apperr.As(wrapped)
			require.NotNil(t, ae)
			assert.Equal(t, tt.code, ae.Code)
		})
	}

	assert.NoError(t, dberr.Wrap(nil, "noop"))
	assert.True(t, dberr.IsUniqueViolation(fmt.Errorf("insert: %w", uniqueViolation)))
}

func TestWrapAs_NamesResource(t *testing.T) {
	err := dberr.WrapAs(pgx.ErrNoRows, "Season", "get_season")
	assert.Equal(t, "Season not found", err.Error())
}
