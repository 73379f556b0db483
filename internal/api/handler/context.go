package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/orgsite/cms-backend/internal/api/middleware"
	"github.com/orgsite/cms-backend/internal/core/domain"
)

// ctxAdmin extracts the authenticated admin injected by the Auth middleware.
// Its presence proves the middleware ran; a nil value on a protected route is
// a wiring error and is rejected rather than dereferenced.
func ctxAdmin(c echo.Context) (*domain.Admin, error) {
	admin := middleware.AdminFromContext(c)
	if admin == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return admin, nil
}
