// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tvcatalog/internal/platform/apperr"
	"github.com/taibuivan/tvcatalog/internal/platform/form"
	"github.com/taibuivan/tvcatalog/internal/platform/validate"
)

/*
TestValidator_Text tests the bounded text rule and the resulting AppError.
*/
func TestValidator_Text(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		hasError bool
	}{
		{"valid_string", "Breaking Bad", false},
		{"empty_string", "", true},
		{"not_a_string", json.Number("42"), true},
		{"too_long", strings.Repeat("a", 256), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Text("name", tt.value, 1, 255)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, apperr.CodeValidation, ae.Code)
				assert.Equal(t, "name", ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Email checks the email format validation rule.
*/
func TestValidator_Email(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		isValid bool
	}{
		{"valid_email", "test@example.com", true},
		{"invalid_format", "invalid-email", false},
		{"missing_domain", "test@", false},
		{"empty", "", false},
		{"display_name", "Test <test@example.com>", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Email("email", tt.email)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_Chain_Failure tests error accumulation and ordering in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Text("name", "", 1, 255).
		Boolean("inProduction", "yes").
		Date("airDate", "last tuesday").
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	require.Len(t, ae.Details, 3)
	assert.Equal(t, "name", ae.Details[0].Field)
	assert.Equal(t, "inProduction", ae.Details[1].Field)
	assert.Equal(t, "airDate", ae.Details[2].Field)
}

func TestValidator_Errors_EmptyMeansSuccess(t *testing.T) {
	v := &validate.Validator{}
	v.Text("name", "Dark", 1, 255)

	assert.NotNil(t, v.Errors())
	assert.Empty(t, v.Errors())
}

/*
TestIsInt covers the integer coercion rules for JSON and form input.
*/
func TestIsInt(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"json_integer", json.Number("4"), true},
		{"json_integral_float", json.Number("4.0"), true},
		{"json_fraction", json.Number("4.5"), false},
		{"form_string", "12", true},
		{"empty_string", "", false},
		{"blank_string", "  ", false},
		{"letters", "abc", false},
		{"native_int", 7, true},
		{"json_int32_max", json.Number("2147483647"), true},
		{"json_above_int32", json.Number("3000000000"), false},
		{"json_below_int32", json.Number("-3000000000"), false},
		{"form_above_int32", "3000000000", false},
		{"native_above_int32", int64(3000000000), false},
		{"boolean", true, false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validate.IsInt(tt.value))
		})
	}
}

func TestIsPositiveInt_ColumnRange(t *testing.T) {
	assert.True(t, validate.IsPositiveInt(json.Number("2147483647")))
	assert.False(t, validate.IsPositiveInt(json.Number("3000000000")))
	assert.False(t, validate.IsPositiveInt("2147483648"))
}

func TestTooLong(t *testing.T) {
	assert.False(t, validate.TooLong(strings.Repeat("a", 255), 255))
	assert.True(t, validate.TooLong(strings.Repeat("a", 256), 255))
	assert.False(t, validate.TooLong(42, 1))
	assert.Equal(t, "Network must be at most 255 characters. Current length is 300.",
		validate.MaxLengthMessage("Network", strings.Repeat("n", 300), 255))
}

func TestToBool(t *testing.T) {
	tests := []struct {
		value any
		want  bool
		ok    bool
	}{
		{true, true, true},
		{false, false, true},
		{"true", true, true},
		{"false", false, true},
		{"TRUE", false, false},
		{"1", false, false},
		{json.Number("1"), false, false},
	}

	for _, tt := range tests {
		got, ok := validate.ToBool(tt.value)
		assert.Equal(t, tt.ok, ok, "value %v", tt.value)
		assert.Equal(t, tt.want, got, "value %v", tt.value)
	}
}

func TestToDate(t *testing.T) {
	parsed, ok := validate.ToDate("2008-01-20")
	require.True(t, ok)
	assert.True(t, time.Date(2008, time.January, 20, 0, 0, 0, 0, time.UTC).Equal(parsed))

	_, ok = validate.ToDate("2008-01-20T21:00:00Z")
	assert.True(t, ok)

	_, ok = validate.ToDate("20/01/2008")
	assert.False(t, ok)

	_, ok = validate.ToDate(json.Number("2008"))
	assert.False(t, ok)
}

func TestLengthMessage(t *testing.T) {
	assert.Equal(t,
		"Must be non empty string at least 3 characters, at most 32 characters. Current length is 2.",
		validate.LengthMessage("ab", 3, 32))
	assert.Equal(t,
		"Must be non empty string at least 8 characters. Current length is 0.",
		validate.LengthMessage(nil, 8, 0))
}

func TestIsNonEmptyString_CountsRunes(t *testing.T) {
	assert.True(t, validate.IsNonEmptyString("Hef horft", 1, 9))
	assert.True(t, validate.IsNonEmptyString("ðþæ", 3, 3))
	assert.False(t, validate.IsNonEmptyString("", 0, 10))
	assert.False(t, validate.IsNonEmptyString(json.Number("5"), 1, 10))
}

/*
TestMode_Checks verifies which fields are validated in create and patch mode.
*/
func TestMode_Checks(t *testing.T) {
	values := form.New(map[string]any{"name": "", "tagline": nil})

	assert.True(t, validate.Create.Checks(values.Get("network")))
	assert.True(t, validate.Patch.Checks(values.Get("name")))
	assert.False(t, validate.Patch.Checks(values.Get("tagline")))
	assert.False(t, validate.Patch.Checks(values.Get("network")))
}
