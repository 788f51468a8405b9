// Package models contains persisted server-side data structures.
package models

import "time"

// User is a registered account as stored in the users table.
// PasswordHash is produced only by the credentials package and is never
// returned to clients.
type User struct {
	ID           int64
	Login        string
	Email        string
	PasswordHash string
	IsPublic     bool
	Phone        string
	Image        string
	TokenNumber  int64
	UpdateToken  int64
	CreatedAt    time.Time
}

// Credentials is the subset of a user record needed to verify a password
// and to issue or check a session-versioned token.
type Credentials struct {
	PasswordHash string
	TokenNumber  int64
	UpdateToken  int64
}
