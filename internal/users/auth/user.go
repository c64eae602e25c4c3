// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements user identity: registration, login and the rules an
account must satisfy.

# Architecture

Entities and the repository contract live here; [Service] validates input,
hashes passwords and issues access tokens. Profile and administration
endpoints live in the account package and reuse this package's validator.
*/
package auth

// # Domain Entities

// User represents a registered member of the catalog.
type User struct {
	ID           int    `json:"id"       db:"id"`
	Username     string `json:"username" db:"username"`
	Email        string `json:"email"    db:"email"`
	PasswordHash string `json:"-"        db:"password"`
	Admin        bool   `json:"admin"    db:"admin"`
}

// Session is the result of a successful login.
type Session struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
	// ExpiresIn is the token lifetime in seconds.
	ExpiresIn int64 `json:"expiresIn"`
}

// Patch carries the mutable account columns. A nil field is left untouched.
type Patch struct {
	Email        *string
	PasswordHash *string
	Admin        *bool
}
