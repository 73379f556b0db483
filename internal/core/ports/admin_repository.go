package ports

import (
	"context"

	"github.com/orgsite/cms-backend/internal/core/domain"
)

// AdminRepository is the persistence contract for admin accounts.
//
// Implementations must enforce two storage-level invariants rather than
// trusting callers to pre-check:
//   - email is unique across all records (Create returns ErrEmailTaken);
//   - at most one record holds the superadmin role at any time (Create
//     returns ErrSuperadminExists when a second one is attempted).
type AdminRepository interface {
	Create(ctx context.Context, admin *domain.Admin) (*domain.Admin, error)
	FindByEmail(ctx context.Context, email string) (*domain.Admin, error)
	FindByID(ctx context.Context, id string) (*domain.Admin, error)
	List(ctx context.Context) ([]*domain.Admin, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	// SetRefreshToken overwrites the account's single session slot.
	// An empty token clears the slot.
	SetRefreshToken(ctx context.Context, id, token string) error
	// Delete removes a non-superadmin record. Superadmin records are only
	// ever removed through TransferSuperadmin; Delete returns
	// ErrSuperadminDelete for them.
	Delete(ctx context.Context, id string) (*domain.Admin, error)
	// TransferSuperadmin atomically promotes targetID to superadmin and
	// deletes the record identified by callerID. Either both writes are
	// observed or neither is; no reader may ever see two superadmins or
	// none mid-transfer.
	TransferSuperadmin(ctx context.Context, callerID, targetID string) (*domain.Admin, error)
	CountSuperadmins(ctx context.Context) (int64, error)
}
