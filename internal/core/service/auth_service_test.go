package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/orgsite/cms-backend/internal/core/domain"
)

// stubAdminRepo is an in-memory AdminRepository that mirrors the storage
// guarantees of the Mongo implementation: unique emails, at most one
// superadmin, and an atomic handover.
type stubAdminRepo struct {
	mu           sync.Mutex
	seq          int
	admins       map[string]*domain.Admin
	failTransfer error
}

func newStubAdminRepo() *stubAdminRepo {
	return &stubAdminRepo{admins: make(map[string]*domain.Admin)}
}

func cloneAdmin(a *domain.Admin) *domain.Admin {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAdminRepo) Create(_ context.Context, admin *domain.Admin) (*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.admins {
		if existing.Email == admin.Email {
			return nil, domain.ErrEmailTaken
		}
		if admin.Role == domain.RoleSuperadmin && existing.Role == domain.RoleSuperadmin {
			return nil, domain.ErrSuperadminExists
		}
	}
	r.seq++
	copy := cloneAdmin(admin)
	copy.ID = fmt.Sprintf("admin-%d", r.seq)
	now := time.Now().UTC()
	copy.CreatedAt = now
	copy.UpdatedAt = now
	r.admins[copy.ID] = cloneAdmin(copy)
	return copy, nil
}

func (r *stubAdminRepo) FindByEmail(_ context.Context, email string) (*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.admins {
		if a.Email == email {
			return cloneAdmin(a), nil
		}
	}
	return nil, domain.ErrAdminNotFound
}

func (r *stubAdminRepo) FindByID(_ context.Context, id string) (*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.admins[id]
	if !ok {
		return nil, domain.ErrAdminNotFound
	}
	return cloneAdmin(a), nil
}

func (r *stubAdminRepo) List(_ context.Context) ([]*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Admin, 0, len(r.admins))
	for _, a := range r.admins {
		out = append(out, cloneAdmin(a))
	}
	return out, nil
}

func (r *stubAdminRepo) UpdatePassword(_ context.Context, id, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.admins[id]
	if !ok {
		return domain.ErrAdminNotFound
	}
	a.PasswordHash = hash
	a.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *stubAdminRepo) SetRefreshToken(_ context.Context, id, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.admins[id]
	if !ok {
		return domain.ErrAdminNotFound
	}
	a.RefreshToken = token
	a.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *stubAdminRepo) Delete(_ context.Context, id string) (*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.admins[id]
	if !ok {
		return nil, domain.ErrAdminNotFound
	}
	if a.Role == domain.RoleSuperadmin {
		return nil, domain.ErrSuperadminDelete
	}
	delete(r.admins, id)
	return cloneAdmin(a), nil
}

func (r *stubAdminRepo) TransferSuperadmin(_ context.Context, callerID, targetID string) (*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failTransfer != nil {
		return nil, r.failTransfer
	}
	caller, ok := r.admins[callerID]
	if !ok || caller.Role != domain.RoleSuperadmin {
		return nil, domain.ErrAdminNotFound
	}
	target, ok := r.admins[targetID]
	if !ok {
		return nil, domain.ErrAdminNotFound
	}
	delete(r.admins, callerID)
	target.Role = domain.RoleSuperadmin
	target.UpdatedAt = time.Now().UTC()
	return cloneAdmin(target), nil
}

func (r *stubAdminRepo) countSuperadmins() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, a := range r.admins {
		if a.Role == domain.RoleSuperadmin {
			n++
		}
	}
	return n
}

func (r *stubAdminRepo) CountSuperadmins(_ context.Context) (int64, error) {
	return r.countSuperadmins(), nil
}

// stubLimiter is a LoginLimiter that can be forced to throttle or fail.
type stubLimiter struct {
	allowErr error
	resets   int
}

func (l *stubLimiter) Allow(context.Context, string) error { return l.allowErr }
func (l *stubLimiter) Reset(context.Context, string) error { l.resets++; return nil }

func newTestAuthService(repo *stubAdminRepo, limiter *stubLimiter) *AuthService {
	tokens := NewTokenService(TokenConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     time.Minute,
		RefreshTTL:    time.Hour,
	})
	return NewAuthService(repo, tokens, limiter, zerolog.Nop())
}

func TestRegisterSuperadmin_First(t *testing.T) {
	repo := newStubAdminRepo()
	svc := newTestAuthService(repo, &stubLimiter{})

	admin, err := svc.RegisterSuperadmin(context.Background(), "root@example.org", "s3cret!pw")
	if err != nil {
		t.Fatalf("RegisterSuperadmin: %v", err)
	}
	if admin.Role != domain.RoleSuperadmin {
		t.Fatalf("role = %s, want superadmin", admin.Role)
	}
	if admin.PasswordHash != "" {
		t.Fatalf("sanitized admin leaks password hash")
	}
	if n := repo.countSuperadmins(); n != 1 {
		t.Fatalf("superadmin count = %d, want 1", n)
	}
}

func TestRegisterSuperadmin_SecondRejected(t *testing.T) {
	repo := newStubAdminRepo()
	svc := newTestAuthService(repo, &stubLimiter{})

	first, err := svc.RegisterSuperadmin(context.Background(), "root@example.org", "s3cret!pw")
	if err != nil {
		t.Fatalf("first RegisterSuperadmin: %v", err)
	}

	if _, err := svc.RegisterSuperadmin(context.Background(), "usurper@example.org", "other-pw"); !errors.Is(err, domain.ErrSuperadminExists) {
		t.Fatalf("expected ErrSuperadminExists, got %v", err)
	}

	// First record unaffected.
	kept, err := repo.FindByID(context.Background(), first.ID)
	if err != nil || kept.Role != domain.RoleSuperadmin {
		t.Fatalf("first superadmin disturbed: %v %+v", err, kept)
	}
	if n := repo.countSuperadmins(); n != 1 {
		t.Fatalf("superadmin count = %d, want 1", n)
	}
}

func TestRegisterSuperadmin_StoreHoldsInvariantPastTheCountCheck(t *testing.T) {
	// Simulates the check-then-act race: two creates that both passed the
	// count pre-check. The repository constraint must stop the second one.
	repo := newStubAdminRepo()
	mk := func(email string) error {
		_, err := repo.Create(context.Background(), &domain.Admin{
			Email: email, PasswordHash: "x", Role: domain.RoleSuperadmin,
		})
		return err
	}
	if err := mk("a@example.org"); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if err := mk("b@example.org"); !errors.Is(err, domain.ErrSuperadminExists) {
		t.Fatalf("expected ErrSuperadminExists, got %v", err)
	}
	if n := repo.countSuperadmins(); n != 1 {
		t.Fatalf("superadmin count = %d, want 1", n)
	}
}

func TestLogin_Success(t *testing.T) {
	repo := newStubAdminRepo()
	limiter := &stubLimiter{}
	svc := newTestAuthService(repo, limiter)

	if _, err := svc.RegisterSuperadmin(context.Background(), "root@example.org", "s3cret!pw"); err != nil {
		t.Fatalf("register: %v", err)
	}

	session, err := svc.Login(context.Background(), "root@example.org", "s3cret!pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if session.AccessToken == "" || session.RefreshToken == "" {
		t.Fatalf("missing tokens in session: %+v", session)
	}
	if session.Admin.PasswordHash != "" || session.Admin.RefreshToken != "" {
		t.Fatalf("session admin leaks secret fields")
	}
	if limiter.resets != 1 {
		t.Fatalf("limiter resets = %d, want 1", limiter.resets)
	}

	// The refresh token occupies the account's session slot.
	stored, _ := repo.FindByEmail(context.Background(), "root@example.org")
	if stored.RefreshToken != session.RefreshToken {
		t.Fatalf("refresh token not persisted into session slot")
	}

	claims, err := svc.tokens.VerifyAccessToken(session.AccessToken)
	if err != nil {
		t.Fatalf("access token does not verify: %v", err)
	}
	if claims.Subject != session.Admin.ID || claims.Email != "root@example.org" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newStubAdminRepo()
	svc := newTestAuthService(repo, &stubLimiter{})

	_, _ = svc.RegisterSuperadmin(context.Background(), "root@example.org", "good-pw")
	if _, err := svc.Login(context.Background(), "root@example.org", "bad-pw"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := newTestAuthService(newStubAdminRepo(), &stubLimiter{})
	if _, err := svc.Login(context.Background(), "ghost@example.org", "pw"); !errors.Is(err, domain.ErrAdminNotFound) {
		t.Fatalf("expected ErrAdminNotFound, got %v", err)
	}
}

func TestLogin_Throttled(t *testing.T) {
	svc := newTestAuthService(newStubAdminRepo(), &stubLimiter{allowErr: domain.ErrTooManyAttempts})
	if _, err := svc.Login(context.Background(), "root@example.org", "pw"); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestLogin_LimiterOutageDoesNotBlockLogin(t *testing.T) {
	repo := newStubAdminRepo()
	svc := newTestAuthService(repo, &stubLimiter{allowErr: errors.New("redis down")})

	_, _ = svc.RegisterSuperadmin(context.Background(), "root@example.org", "s3cret!pw")
	if _, err := svc.Login(context.Background(), "root@example.org", "s3cret!pw"); err != nil {
		t.Fatalf("login should survive limiter outage, got %v", err)
	}
}

func TestRefresh_RotatesSession(t *testing.T) {
	repo := newStubAdminRepo()
	svc := newTestAuthService(repo, &stubLimiter{})

	_, _ = svc.RegisterSuperadmin(context.Background(), "root@example.org", "s3cret!pw")
	first, err := svc.Login(context.Background(), "root@example.org", "s3cret!pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	second, err := svc.Refresh(context.Background(), first.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if second.AccessToken == "" {
		t.Fatalf("refresh yielded no access token")
	}

	// Every issuance carries a fresh jti, so the new token differs even when
	// both are signed within the same second.
	if second.RefreshToken == first.RefreshToken {
		t.Fatalf("refresh reissued an identical token")
	}

	// The old token left the slot; presenting it again must fail.
	if _, err := svc.Refresh(context.Background(), first.RefreshToken); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("replaced refresh token still accepted: %v", err)
	}
}

func TestRefresh_AfterLogout(t *testing.T) {
	repo := newStubAdminRepo()
	svc := newTestAuthService(repo, &stubLimiter{})

	_, _ = svc.RegisterSuperadmin(context.Background(), "root@example.org", "s3cret!pw")
	session, _ := svc.Login(context.Background(), "root@example.org", "s3cret!pw")

	if err := svc.Logout(context.Background(), session.Admin.ID); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), session.RefreshToken); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized after logout, got %v", err)
	}
}

func TestRefresh_SecondLoginInvalidatesFirstSession(t *testing.T) {
	repo := newStubAdminRepo()
	svc := newTestAuthService(repo, &stubLimiter{})

	_, _ = svc.RegisterSuperadmin(context.Background(), "root@example.org", "s3cret!pw")
	first, _ := svc.Login(context.Background(), "root@example.org", "s3cret!pw")
	second, err := svc.Login(context.Background(), "root@example.org", "s3cret!pw")
	if err != nil {
		t.Fatalf("second login: %v", err)
	}

	if first.RefreshToken == second.RefreshToken {
		t.Fatalf("both logins issued the same refresh token")
	}
	if _, err := svc.Refresh(context.Background(), first.RefreshToken); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("first session should be dead after second login, got %v", err)
	}
	if _, err := svc.Refresh(context.Background(), second.RefreshToken); err != nil {
		t.Fatalf("current session must stay valid: %v", err)
	}
}

func TestAddAdmin_TempPasswordWorks(t *testing.T) {
	repo := newStubAdminRepo()
	svc := newTestAuthService(repo, &stubLimiter{})

	provisioned, err := svc.AddAdmin(context.Background(), "editor@example.org")
	if err != nil {
		t.Fatalf("AddAdmin: %v", err)
	}
	if len(provisioned.TempPassword) < 8 {
		t.Fatalf("temp password too short: %q", provisioned.TempPassword)
	}
	if provisioned.Admin.Role != domain.RoleAdmin {
		t.Fatalf("role = %s, want admin", provisioned.Admin.Role)
	}

	// Only the hash is stored; the plaintext must authenticate.
	stored, _ := repo.FindByEmail(context.Background(), "editor@example.org")
	if stored.PasswordHash == provisioned.TempPassword || !strings.HasPrefix(stored.PasswordHash, "$2") {
		t.Fatalf("temp password not stored as bcrypt hash")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(provisioned.TempPassword)); err != nil {
		t.Fatalf("temp password does not match stored hash: %v", err)
	}
}

func TestAddAdmin_DuplicateEmail(t *testing.T) {
	repo := newStubAdminRepo()
	svc := newTestAuthService(repo, &stubLimiter{})

	_, _ = svc.AddAdmin(context.Background(), "editor@example.org")
	if _, err := svc.AddAdmin(context.Background(), "editor@example.org"); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRemoveAdmin_RejectsSuperadmin(t *testing.T) {
	repo := newStubAdminRepo()
	svc := newTestAuthService(repo, &stubLimiter{})

	root, _ := svc.RegisterSuperadmin(context.Background(), "root@example.org", "s3cret!pw")
	if _, err := svc.RemoveAdmin(context.Background(), root.ID); !errors.Is(err, domain.ErrSuperadminDelete) {
		t.Fatalf("expected ErrSuperadminDelete, got %v", err)
	}
	if _, err := repo.FindByID(context.Background(), root.ID); err != nil {
		t.Fatalf("superadmin was removed: %v", err)
	}
}

func TestRemoveAdmin_Success(t *testing.T) {
	repo := newStubAdminRepo()
	svc := newTestAuthService(repo, &stubLimiter{})

	provisioned, _ := svc.AddAdmin(context.Background(), "editor@example.org")
	removed, err := svc.RemoveAdmin(context.Background(), provisioned.Admin.ID)
	if err != nil {
		t.Fatalf("RemoveAdmin: %v", err)
	}
	if removed.Email != "editor@example.org" {
		t.Fatalf("unexpected removed record: %+v", removed)
	}
	if _, err := repo.FindByID(context.Background(), provisioned.Admin.ID); !errors.Is(err, domain.ErrAdminNotFound) {
		t.Fatalf("record still present after removal: %v", err)
	}
}

func handoverFixture(t *testing.T) (*stubAdminRepo, *AuthService, *domain.Admin, *domain.Admin) {
	t.Helper()
	repo := newStubAdminRepo()
	svc := newTestAuthService(repo, &stubLimiter{})

	root, err := svc.RegisterSuperadmin(context.Background(), "root@example.org", "s3cret!pw")
	if err != nil {
		t.Fatalf("register superadmin: %v", err)
	}
	provisioned, err := svc.AddAdmin(context.Background(), "heir@example.org")
	if err != nil {
		t.Fatalf("add admin: %v", err)
	}
	return repo, svc, root, provisioned.Admin
}

func TestHandover_Success(t *testing.T) {
	repo, svc, root, heir := handoverFixture(t)

	caller, _ := repo.FindByID(context.Background(), root.ID)
	promoted, err := svc.Handover(context.Background(), caller, heir.ID)
	if err != nil {
		t.Fatalf("Handover: %v", err)
	}
	if promoted.ID != heir.ID || promoted.Role != domain.RoleSuperadmin {
		t.Fatalf("unexpected promoted record: %+v", promoted)
	}

	// Caller record is gone; exactly one superadmin remains.
	if _, err := repo.FindByID(context.Background(), root.ID); !errors.Is(err, domain.ErrAdminNotFound) {
		t.Fatalf("outgoing superadmin still exists: %v", err)
	}
	if n := repo.countSuperadmins(); n != 1 {
		t.Fatalf("superadmin count = %d, want 1", n)
	}
}

func TestHandover_ForbiddenForRegularAdmin(t *testing.T) {
	repo, svc, root, heir := handoverFixture(t)

	caller, _ := repo.FindByID(context.Background(), heir.ID)
	if _, err := svc.Handover(context.Background(), caller, root.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestHandover_SelfRejected(t *testing.T) {
	repo, svc, root, _ := handoverFixture(t)

	caller, _ := repo.FindByID(context.Background(), root.ID)
	if _, err := svc.Handover(context.Background(), caller, root.ID); !errors.Is(err, domain.ErrSelfHandover) {
		t.Fatalf("expected ErrSelfHandover, got %v", err)
	}

	// Nothing changed.
	kept, _ := repo.FindByID(context.Background(), root.ID)
	if kept == nil || kept.Role != domain.RoleSuperadmin {
		t.Fatalf("caller record disturbed by rejected self-handover")
	}
}

func TestHandover_TargetNotFound(t *testing.T) {
	repo, svc, root, _ := handoverFixture(t)

	caller, _ := repo.FindByID(context.Background(), root.ID)
	if _, err := svc.Handover(context.Background(), caller, "missing-id"); !errors.Is(err, domain.ErrAdminNotFound) {
		t.Fatalf("expected ErrAdminNotFound, got %v", err)
	}
}

func TestHandover_TransferFailureRollsBack(t *testing.T) {
	repo, svc, root, heir := handoverFixture(t)
	repo.failTransfer = errors.New("transaction aborted")

	caller, _ := repo.FindByID(context.Background(), root.ID)
	_, err := svc.Handover(context.Background(), caller, heir.ID)
	if !errors.Is(err, domain.ErrHandoverFailed) {
		t.Fatalf("expected ErrHandoverFailed, got %v", err)
	}

	// Both records hold their prior state.
	keptRoot, _ := repo.FindByID(context.Background(), root.ID)
	keptHeir, _ := repo.FindByID(context.Background(), heir.ID)
	if keptRoot == nil || keptRoot.Role != domain.RoleSuperadmin {
		t.Fatalf("caller not superadmin after failed transfer")
	}
	if keptHeir == nil || keptHeir.Role != domain.RoleAdmin {
		t.Fatalf("target role changed by failed transfer")
	}
}

func TestResetPassword(t *testing.T) {
	repo := newStubAdminRepo()
	svc := newTestAuthService(repo, &stubLimiter{})

	_, _ = svc.RegisterSuperadmin(context.Background(), "root@example.org", "old-pass")

	if err := svc.ResetPassword(context.Background(), "root@example.org", "wrong", "new-pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	if err := svc.ResetPassword(context.Background(), "root@example.org", "old-pass", "new-pass"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}

	if _, err := svc.Login(context.Background(), "root@example.org", "old-pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("old password still accepted: %v", err)
	}
	if _, err := svc.Login(context.Background(), "root@example.org", "new-pass"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}

func TestListAdmins_Sanitized(t *testing.T) {
	repo := newStubAdminRepo()
	svc := newTestAuthService(repo, &stubLimiter{})

	_, _ = svc.RegisterSuperadmin(context.Background(), "root@example.org", "s3cret!pw")
	_, _ = svc.AddAdmin(context.Background(), "editor@example.org")
	_, _ = svc.Login(context.Background(), "root@example.org", "s3cret!pw")

	admins, err := svc.ListAdmins(context.Background())
	if err != nil {
		t.Fatalf("ListAdmins: %v", err)
	}
	if len(admins) != 2 {
		t.Fatalf("len = %d, want 2", len(admins))
	}
	for _, a := range admins {
		if a.PasswordHash != "" || a.RefreshToken != "" {
			t.Fatalf("listed admin leaks secret fields: %+v", a)
		}
	}
}
