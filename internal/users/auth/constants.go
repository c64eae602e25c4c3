// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

// # Field Identifiers

const (
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldAdmin    = "admin"
)

// # Account Constraints

const (
	MinUsernameLength = 3
	MaxUsernameLength = 32

	// MinPasswordLength is the shortest accepted password.
	MinPasswordLength = 8
	// MaxPasswordLength stays below bcrypt's practical input limits for multi-byte text.
	MaxPasswordLength = 256

	MinEmailLength = 1
	MaxEmailLength = 64
)
