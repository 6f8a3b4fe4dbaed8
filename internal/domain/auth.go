package domain

import "time"

// Credential is an issued bearer token together with its validity window.
type Credential struct {
	Token     string    `json:"token"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AuthResult pairs a fresh credential with the user it was issued for.
type AuthResult struct {
	Credential Credential `json:"credential"`
	User       *User      `json:"user"`
}
