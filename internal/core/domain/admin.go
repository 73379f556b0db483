package domain

import (
	"errors"
	"time"
)

// Role is the access level of an admin account.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleSuperadmin
}

var ErrInvalidInput = errors.New("invalid input")
var ErrEmailTaken = errors.New("email already registered")
var ErrAdminNotFound = errors.New("admin not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUnauthorized = errors.New("unauthorized")
var ErrForbidden = errors.New("access forbidden")
var ErrSuperadminExists = errors.New("a superadmin already exists")
var ErrSelfHandover = errors.New("cannot hand over the superadmin role to yourself")
var ErrSuperadminDelete = errors.New("superadmin cannot be removed, hand over the role instead")
var ErrHandoverFailed = errors.New("superadmin handover could not be completed")
var ErrTooManyAttempts = errors.New("too many login attempts")

// Admin models a dashboard account. At most one record holds RoleSuperadmin
// at any time; the admins collection enforces this with a partial unique
// index, not application-level counting.
type Admin struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	RefreshToken string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Sanitized returns a copy safe to serialize to clients: the password hash
// and refresh token slot are never exposed outside the credential store.
func (a *Admin) Sanitized() *Admin {
	if a == nil {
		return nil
	}
	clone := *a
	clone.PasswordHash = ""
	clone.RefreshToken = ""
	return &clone
}

// IsSuperadmin reports whether the account holds the superadmin role.
func (a *Admin) IsSuperadmin() bool {
	return a != nil && a.Role == RoleSuperadmin
}
