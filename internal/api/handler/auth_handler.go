package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/orgsite/cms-backend/internal/api/metrics"
	"github.com/orgsite/cms-backend/internal/api/middleware"
	"github.com/orgsite/cms-backend/internal/core/domain"
	"github.com/orgsite/cms-backend/internal/core/ports"
)

const refreshCookieName = "refresh_token"

// AuthHandler exposes the account and session endpoints.
type AuthHandler struct {
	authService ports.AuthService
	accessTTL   time.Duration
	refreshTTL  time.Duration
}

func NewAuthHandler(authService ports.AuthService, accessTTL, refreshTTL time.Duration) *AuthHandler {
	return &AuthHandler{authService: authService, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// RegisterSuperadmin bootstraps the single superadmin account.
//
// @Summary      Register the first superadmin
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerSuperadminRequest  true  "Bootstrap credentials"
// @Success      201   {object}  adminResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/auth/register-superadmin [post]
func (h *AuthHandler) RegisterSuperadmin(c echo.Context) error {
	var req registerSuperadminRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	admin, err := h.authService.RegisterSuperadmin(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, adminResponse{Admin: admin})
}

// Login verifies credentials and opens a session. Both tokens are returned in
// the body and set as httpOnly cookies for the dashboard.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /v1/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	session, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	h.setSessionCookies(c, session)
	return c.JSON(http.StatusOK, sessionResponse{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		Admin:        session.Admin,
	})
}

// Refresh exchanges a live refresh token for a new session.
//
// @Summary      Refresh the session
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      refreshRequest  false  "Refresh token (falls back to cookie)"
// @Success      200   {object}  sessionResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/auth/refresh-token [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	_ = c.Bind(&req)

	token := req.RefreshToken
	if token == "" {
		cookie, err := c.Cookie(refreshCookieName)
		if err != nil || cookie.Value == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing refresh token")
		}
		token = cookie.Value
	}

	session, err := h.authService.Refresh(c.Request().Context(), token)
	if err != nil {
		return err
	}

	h.setSessionCookies(c, session)
	return c.JSON(http.StatusOK, sessionResponse{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		Admin:        session.Admin,
	})
}

// Logout clears the caller's session slot and both cookies.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	admin, err := ctxAdmin(c)
	if err != nil {
		return err
	}

	if err := h.authService.Logout(c.Request().Context(), admin.ID); err != nil {
		return err
	}

	clearSessionCookies(c)
	return c.JSON(http.StatusOK, messageResponse{Message: "logged out"})
}

// ResetPassword replaces the caller's password after verifying the current one.
//
// @Summary      Reset password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resetPasswordRequest  true  "Password change"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.ResetPassword(c.Request().Context(), req.Email, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "password updated"})
}

// Me returns the caller's own record, without secret fields.
//
// @Summary      Current admin
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  adminResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	admin, err := ctxAdmin(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, adminResponse{Admin: admin})
}

func (h *AuthHandler) setSessionCookies(c echo.Context, session *ports.Session) {
	c.SetCookie(sessionCookie(middleware.AccessCookieName, session.AccessToken, h.accessTTL))
	c.SetCookie(sessionCookie(refreshCookieName, session.RefreshToken, h.refreshTTL))
}

// clearSessionCookies expires both auth cookies; used on logout and after a
// successful handover (the caller's record no longer exists).
func clearSessionCookies(c echo.Context) {
	c.SetCookie(sessionCookie(middleware.AccessCookieName, "", -time.Second))
	c.SetCookie(sessionCookie(refreshCookieName, "", -time.Second))
}

func sessionCookie(name, value string, ttl time.Duration) *http.Cookie {
	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(ttl.Seconds()),
	}
	if ttl < 0 {
		cookie.MaxAge = -1
	}
	return cookie
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "bad_credentials"
	case errors.Is(err, domain.ErrAdminNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrTooManyAttempts):
		return "throttled"
	default:
		return "error"
	}
}
