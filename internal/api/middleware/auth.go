package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/orgsite/cms-backend/internal/core/domain"
	"github.com/orgsite/cms-backend/internal/core/service"
)

// AccessCookieName is the fallback transport for the access token when no
// Authorization header is present (the dashboard relies on httpOnly cookies).
const AccessCookieName = "access_token"

// adminContextKey is the echo context key the authenticated admin is stored
// under. The stored value is always sanitized (no password hash, no refresh
// token).
const adminContextKey = "auth_admin"

// AccessTokenVerifier validates an access token and returns its claims.
type AccessTokenVerifier interface {
	VerifyAccessToken(token string) (*service.AccessClaims, error)
}

// AdminLoader fetches the account a verified token refers to.
type AdminLoader interface {
	FindByID(ctx context.Context, id string) (*domain.Admin, error)
}

// Auth verifies the bearer (or cookie) access token, loads the referenced
// admin, and attaches it to the request context. A token whose account no
// longer exists (for example after a superadmin handover deleted it) is
// rejected exactly like an invalid one.
func Auth(tokens AccessTokenVerifier, admins AdminLoader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := extractToken(c)
			if err != nil {
				return err
			}

			claims, err := tokens.VerifyAccessToken(raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			admin, err := admins.FindByID(c.Request().Context(), claims.Subject)
			if err != nil {
				if errors.Is(err, domain.ErrAdminNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, "account no longer exists")
				}
				// A store outage is not an authentication failure.
				return fmt.Errorf("load admin %s: %w", claims.Subject, err)
			}

			c.Set(adminContextKey, admin.Sanitized())
			return next(c)
		}
	}
}

// RequireSuperadmin runs after Auth and rejects any caller that does not
// hold the superadmin role. It performs no mutation of its own.
func RequireSuperadmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			admin := AdminFromContext(c)
			if admin == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
			}
			if !admin.IsSuperadmin() {
				return echo.NewHTTPError(http.StatusForbidden, "superadmin role required")
			}
			return next(c)
		}
	}
}

// AdminFromContext returns the authenticated admin attached by Auth, or nil.
func AdminFromContext(c echo.Context) *domain.Admin {
	admin, _ := c.Get(adminContextKey).(*domain.Admin)
	return admin
}

func extractToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
		}
		return parts[1], nil
	}

	cookie, err := c.Cookie(AccessCookieName)
	if err != nil || cookie.Value == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization")
	}
	return cookie.Value, nil
}
