package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/orgsite/cms-backend/internal/core/domain"
	"github.com/orgsite/cms-backend/internal/core/ports"
	"github.com/orgsite/cms-backend/internal/pkg/password"
)

// LoginLimiter abstracts the per-email login throttle (Redis).
type LoginLimiter interface {
	// Allow records one attempt and returns domain.ErrTooManyAttempts when
	// the window budget is exhausted.
	Allow(ctx context.Context, email string) error
	// Reset clears the attempt counter after a successful login.
	Reset(ctx context.Context, email string) error
}

// AuthService implements the admin account lifecycle: bootstrap
// registration, login/logout, token refresh, provisioning, removal, and the
// superadmin handover.
type AuthService struct {
	repo    ports.AdminRepository
	tokens  *TokenService
	limiter LoginLimiter
	log     zerolog.Logger
}

func NewAuthService(repo ports.AdminRepository, tokens *TokenService, limiter LoginLimiter, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, limiter: limiter, log: log}
}

// RegisterSuperadmin bootstraps the single superadmin account. The count
// pre-check gives a clean error on the common path; the partial unique index
// on the admins collection is what actually holds the invariant under
// concurrent registration.
func (s *AuthService) RegisterSuperadmin(ctx context.Context, email, pass string) (*domain.Admin, error) {
	if email == "" || pass == "" {
		return nil, domain.ErrInvalidInput
	}

	n, err := s.repo.CountSuperadmins(ctx)
	if err != nil {
		return nil, fmt.Errorf("register superadmin: %w", err)
	}
	if n > 0 {
		return nil, domain.ErrSuperadminExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register superadmin: %w", err)
	}

	created, err := s.repo.Create(ctx, &domain.Admin{
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleSuperadmin,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("admin_id", created.ID).Msg("superadmin registered")
	return created.Sanitized(), nil
}

// Login verifies credentials and issues a fresh token pair. The refresh token
// overwrites the account's single session slot, so any previously issued
// refresh token stops working.
func (s *AuthService) Login(ctx context.Context, email, pass string) (*ports.Session, error) {
	if email == "" || pass == "" {
		return nil, domain.ErrInvalidInput
	}

	if err := s.limiter.Allow(ctx, email); err != nil {
		if errors.Is(err, domain.ErrTooManyAttempts) {
			return nil, err
		}
		// A broken throttle must not lock everyone out.
		s.log.Warn().Err(err).Msg("login limiter unavailable, continuing")
	}

	admin, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(pass)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	session, err := s.issueSession(ctx, admin)
	if err != nil {
		return nil, err
	}

	if err := s.limiter.Reset(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("failed to reset login limiter")
	}

	s.log.Info().Str("admin_id", admin.ID).Str("role", string(admin.Role)).Msg("admin logged in")
	return session, nil
}

// Refresh exchanges a live refresh token for a new session. The presented
// token must verify and still match the account's stored slot; a token
// replaced by a newer login or cleared by logout is rejected.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.Session, error) {
	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	admin, err := s.repo.FindByID(ctx, claims.Subject)
	if err != nil {
		// The record may be gone entirely (e.g. after a handover).
		return nil, domain.ErrUnauthorized
	}

	if admin.RefreshToken == "" || admin.RefreshToken != refreshToken {
		return nil, domain.ErrUnauthorized
	}

	return s.issueSession(ctx, admin)
}

// Logout clears the account's session slot.
func (s *AuthService) Logout(ctx context.Context, adminID string) error {
	return s.repo.SetRefreshToken(ctx, adminID, "")
}

// ResetPassword replaces the stored hash after verifying the current password.
func (s *AuthService) ResetPassword(ctx context.Context, email, currentPassword, newPassword string) error {
	if email == "" || currentPassword == "" || newPassword == "" {
		return domain.ErrInvalidInput
	}

	admin, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(currentPassword)) != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	if err := s.repo.UpdatePassword(ctx, admin.ID, string(hash)); err != nil {
		return err
	}

	s.log.Info().Str("admin_id", admin.ID).Msg("password reset")
	return nil
}

// AddAdmin provisions a regular admin account with a generated temporary
// password. The plaintext is returned exactly once and only its bcrypt hash
// is stored.
func (s *AuthService) AddAdmin(ctx context.Context, email string) (*ports.ProvisionedAdmin, error) {
	if email == "" {
		return nil, domain.ErrInvalidInput
	}

	temp, err := password.Generate(email, password.MinLength)
	if err != nil {
		return nil, fmt.Errorf("add admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(temp), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("add admin: %w", err)
	}

	created, err := s.repo.Create(ctx, &domain.Admin{
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("admin_id", created.ID).Msg("admin provisioned")
	return &ports.ProvisionedAdmin{Admin: created.Sanitized(), TempPassword: temp}, nil
}

// RemoveAdmin deletes a non-superadmin account. The superadmin record can
// only leave the store through Handover.
func (s *AuthService) RemoveAdmin(ctx context.Context, id string) (*domain.Admin, error) {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("admin_id", id).Msg("admin removed")
	return removed.Sanitized(), nil
}

// Handover transfers the superadmin role from caller to the target account.
// Promotion of the target and deletion of the caller's record happen as one
// atomic unit in the store; afterwards the caller's tokens are dead because
// the record they reference no longer exists.
func (s *AuthService) Handover(ctx context.Context, caller *domain.Admin, targetID string) (*domain.Admin, error) {
	if !caller.IsSuperadmin() {
		return nil, domain.ErrForbidden
	}

	if _, err := s.repo.FindByID(ctx, targetID); err != nil {
		return nil, err
	}

	if targetID == caller.ID {
		return nil, domain.ErrSelfHandover
	}

	promoted, err := s.repo.TransferSuperadmin(ctx, caller.ID, targetID)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrHandoverFailed, err)
	}

	s.log.Info().
		Str("from", caller.ID).
		Str("to", promoted.ID).
		Msg("superadmin role handed over")
	return promoted.Sanitized(), nil
}

// ListAdmins returns all accounts without secret fields.
func (s *AuthService) ListAdmins(ctx context.Context) ([]*domain.Admin, error) {
	admins, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Admin, 0, len(admins))
	for _, a := range admins {
		out = append(out, a.Sanitized())
	}
	return out, nil
}

// issueSession signs a new token pair and persists the refresh token into
// the account's session slot.
func (s *AuthService) issueSession(ctx context.Context, admin *domain.Admin) (*ports.Session, error) {
	access, err := s.tokens.IssueAccessToken(admin)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.IssueRefreshToken(admin)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetRefreshToken(ctx, admin.ID, refresh); err != nil {
		return nil, fmt.Errorf("persist refresh token: %w", err)
	}
	return &ports.Session{
		AccessToken:  access,
		RefreshToken: refresh,
		Admin:        admin.Sanitized(),
	}, nil
}
