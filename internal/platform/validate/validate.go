// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// # Architecture
//
// This package is used exclusively in the service layer, never in handlers or
// storage. Entity validators combine the field predicates in field.go with
// store lookups and report every failed rule at once, in check order.
package validate

import (
	"github.com/taibuivan/tvcatalog/internal/platform/apperr"
	"github.com/taibuivan/tvcatalog/internal/platform/form"
)

// # Validation Mode

// Mode selects between full (create) and partial (patch) validation.
type Mode int

const (
	// Create checks every rule, treating an absent required field as a failure.
	Create Mode = iota
	// Patch checks only the fields the caller supplied.
	Patch
)

// Checks reports whether field must be validated in this mode.
func (mode Mode) Checks(field form.Field) bool {
	return mode == Create || field.Supplied()
}

// # Validator

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	errs []apperr.FieldError
}

// Email fails unless value is a bare email address.
func (v *Validator) Email(field string, value any) *Validator {
	if !IsEmail(value) {
		v.Add(field, "Must be a valid email address")
	}
	return v
}

// # Raw Input Rules

// Text fails unless value is a non-empty string of [min, max] characters.
func (v *Validator) Text(field string, value any, min, max int) *Validator {
	if !IsNonEmptyString(value, min, max) {
		v.Add(field, LengthMessage(value, min, max))
	}
	return v
}

// String fails unless value is a string (empty allowed).
func (v *Validator) String(field string, value any) *Validator {
	if !IsString(value) {
		v.Add(field, "Must be a string")
	}
	return v
}

// Boolean fails unless value is a boolean or "true"/"false".
func (v *Validator) Boolean(field string, value any) *Validator {
	if !IsBool(value) {
		v.Add(field, "Must be a boolean")
	}
	return v
}

// PositiveInt fails unless value is an integer greater than zero.
func (v *Validator) PositiveInt(field string, value any) *Validator {
	if !IsPositiveInt(value) {
		v.Add(field, "Must be a positive integer")
	}
	return v
}

// Date fails unless value is a parseable date.
func (v *Validator) Date(field string, value any) *Validator {
	if !IsDate(value) {
		v.Add(field, "Must be a date in the format YYYY-MM-DD")
	}
	return v
}

// Custom adds a failure with a custom message if the condition is true.
//
// # Example
//
//	v.Custom("rating", rating < 0 || rating > 5, "Must be between 0 and 5")
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.Add(field, message)
	}
	return v
}

// Err returns a [apperr.AppError] (VALIDATION_ERROR) if any rules failed,
// or nil if all rules passed.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.Invalid(v.errs)
}

// Errors returns the accumulated failures in check order. An empty slice means success.
func (v *Validator) Errors() []apperr.FieldError {
	if v.errs == nil {
		return []apperr.FieldError{}
	}
	return v.errs
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// Add appends a [apperr.FieldError].
func (v *Validator) Add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}

// RequiredError is a shortcut to create a single-field validation error.
func RequiredError(field, message string) *apperr.AppError {
	return apperr.Invalid([]apperr.FieldError{{Field: field, Message: message}})
}
