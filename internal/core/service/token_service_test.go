package service

import (
	"errors"
	"testing"
	"time"

	"github.com/orgsite/cms-backend/internal/core/domain"
)

func testAdmin() *domain.Admin {
	return &domain.Admin{ID: "admin-1", Email: "root@example.org", Role: domain.RoleSuperadmin}
}

func TestTokenService_AccessRoundTrip(t *testing.T) {
	svc := NewTokenService(TokenConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     time.Minute,
	})

	token, err := svc.IssueAccessToken(testAdmin())
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}

	claims, err := svc.VerifyAccessToken(token)
	if err != nil {
		t.Fatalf("VerifyAccessToken: %v", err)
	}
	if claims.Subject != "admin-1" || claims.Email != "root@example.org" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestTokenService_ExpiredAccessToken(t *testing.T) {
	svc := NewTokenService(TokenConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     time.Millisecond,
	})

	token, err := svc.IssueAccessToken(testAdmin())
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}

	time.Sleep(10 * time.Millisecond)
	if _, err := svc.VerifyAccessToken(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for expired token, got %v", err)
	}
}

func TestTokenService_DistinctSecretsPerKind(t *testing.T) {
	svc := NewTokenService(TokenConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
	})

	refresh, err := svc.IssueRefreshToken(testAdmin())
	if err != nil {
		t.Fatalf("IssueRefreshToken: %v", err)
	}

	// A refresh token must never pass as an access token.
	if _, err := svc.VerifyAccessToken(refresh); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("refresh token accepted as access token: %v", err)
	}
	if _, err := svc.VerifyRefreshToken(refresh); err != nil {
		t.Fatalf("VerifyRefreshToken: %v", err)
	}
}

func TestTokenService_RefreshTokensDistinctWithinSameSecond(t *testing.T) {
	svc := NewTokenService(TokenConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
	})

	// iat/exp truncate to whole seconds; the jti is what keeps back-to-back
	// issuances from being byte-identical.
	first, err := svc.IssueRefreshToken(testAdmin())
	if err != nil {
		t.Fatalf("IssueRefreshToken: %v", err)
	}
	second, err := svc.IssueRefreshToken(testAdmin())
	if err != nil {
		t.Fatalf("IssueRefreshToken: %v", err)
	}
	if first == second {
		t.Fatalf("two issuances produced identical tokens")
	}

	claims, err := svc.VerifyRefreshToken(second)
	if err != nil {
		t.Fatalf("VerifyRefreshToken: %v", err)
	}
	if claims.ID == "" {
		t.Fatalf("refresh claims carry no token id")
	}
}

func TestTokenService_MalformedAndTampered(t *testing.T) {
	svc := NewTokenService(TokenConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
	})

	if _, err := svc.VerifyAccessToken("not-a-token"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for malformed token, got %v", err)
	}

	other := NewTokenService(TokenConfig{AccessSecret: "other", RefreshSecret: "other"})
	forged, err := other.IssueAccessToken(testAdmin())
	if err != nil {
		t.Fatalf("issue forged token: %v", err)
	}
	if _, err := svc.VerifyAccessToken(forged); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for wrong signature, got %v", err)
	}
}
