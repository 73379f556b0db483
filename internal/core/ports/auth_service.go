package ports

import (
	"context"

	"github.com/orgsite/cms-backend/internal/core/domain"
)

// Session is the token pair issued on login or refresh, together with the
// sanitized account it belongs to.
type Session struct {
	AccessToken  string
	RefreshToken string
	Admin        *domain.Admin
}

// ProvisionedAdmin is returned when a superadmin creates a new account.
// TempPassword is shown exactly once and is never persisted in plaintext.
type ProvisionedAdmin struct {
	Admin        *domain.Admin
	TempPassword string
}

// AuthService defines the account lifecycle and session use cases.
type AuthService interface {
	// RegisterSuperadmin bootstraps the first (and only) superadmin account.
	RegisterSuperadmin(ctx context.Context, email, password string) (*domain.Admin, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	// Refresh exchanges a live refresh token for a new session. The token
	// must both verify and still occupy the account's session slot.
	Refresh(ctx context.Context, refreshToken string) (*Session, error)
	Logout(ctx context.Context, adminID string) error
	ResetPassword(ctx context.Context, email, currentPassword, newPassword string) error
	// AddAdmin provisions a regular admin with a generated temporary password.
	AddAdmin(ctx context.Context, email string) (*ProvisionedAdmin, error)
	// RemoveAdmin deletes a non-superadmin account and returns the removed record.
	RemoveAdmin(ctx context.Context, id string) (*domain.Admin, error)
	// Handover atomically transfers the superadmin role from caller to the
	// target account and deletes the caller's record. The caller's session
	// becomes invalid because its backing record is gone.
	Handover(ctx context.Context, caller *domain.Admin, targetID string) (*domain.Admin, error)
	ListAdmins(ctx context.Context) ([]*domain.Admin, error)
}
