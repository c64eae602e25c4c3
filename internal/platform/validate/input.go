// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate

import (
	"time"

	"github.com/taibuivan/tvcatalog/internal/platform/form"
)

// # Typed Accessors
//
// These read a field after validation has passed. They never fail: a value of
// the wrong shape yields the zero value (or nil for pointers).

// Filled reports whether field was supplied with something other than "".
// Optional dates use it so an empty multipart input counts as absent.
func Filled(field form.Field) bool {
	if !field.Supplied() {
		return false
	}
	s, isString := field.Value.(string)
	return !isString || s != ""
}

// StringPtr returns the field's string value, or nil when it is not a supplied string.
func StringPtr(field form.Field) *string {
	if !field.Supplied() {
		return nil
	}
	s, ok := field.String()
	if !ok {
		return nil
	}
	return &s
}

// DatePtr returns the field's date, or nil when it is absent or unparseable.
func DatePtr(field form.Field) *time.Time {
	if !Filled(field) {
		return nil
	}
	date, ok := ToDate(field.Value)
	if !ok {
		return nil
	}
	return &date
}

// BoolPtr returns the field's boolean, or nil when it is absent or not a boolean.
func BoolPtr(field form.Field) *bool {
	if !field.Supplied() {
		return nil
	}
	b, ok := ToBool(field.Value)
	if !ok {
		return nil
	}
	return &b
}
