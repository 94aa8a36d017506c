package models

import "github.com/google/uuid"

// Credential is the single stored account. Registering again overwrites it.
// The password field holds a bcrypt hash, never the raw password.
type Credential struct {
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}

// Session is the in-memory authentication state for the current process
// lifetime. It is never persisted; only the credential survives a restart.
type Session struct {
	ID            uuid.UUID `json:"id"`
	Username      string    `json:"username"`
	Authenticated bool      `json:"authenticated"`
}
