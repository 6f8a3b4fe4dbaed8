package domain

import (
	"strings"
	"time"
)

// Role is a tag granting access to role-gated operations.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleSuperUser Role = "superUser"
	RoleUser      Role = "user"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSuperUser, RoleUser:
		return true
	default:
		return false
	}
}

// DefaultRoles are assigned to users created through signup.
func DefaultRoles() []Role {
	return []Role{RoleUser}
}

// User is the domain model for an account owning items and lists.
type User struct {
	ID              string    `json:"id"`
	FullName        string    `json:"fullName"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"`
	Roles           []Role    `json:"roles"`
	IsActive        bool      `json:"isActive"`
	LastUpdatedByID *string   `json:"lastUpdatedById,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Sanitized returns a copy of the user without the password hash.
func (u *User) Sanitized() *User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.PasswordHash = ""
	clone.Roles = append([]Role(nil), u.Roles...)
	if u.LastUpdatedByID != nil {
		id := *u.LastUpdatedByID
		clone.LastUpdatedByID = &id
	}
	return &clone
}

// SignupInput is the profile supplied when creating an account.
type SignupInput struct {
	FullName string
	Email    string
	Password string
}

// UserPatch carries optional changes applied by an administrator.
type UserPatch struct {
	FullName *string
	Email    *string
	Password *string
	Roles    []Role
	IsActive *bool
}

// NormalizeEmail lower-cases and trims an email address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
