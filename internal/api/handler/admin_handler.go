package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/orgsite/cms-backend/internal/api/metrics"
	"github.com/orgsite/cms-backend/internal/core/ports"
)

// AdminHandler exposes superadmin-only account management: provisioning,
// listing, removal, and the role handover.
type AdminHandler struct {
	authService ports.AuthService
}

func NewAdminHandler(authService ports.AuthService) *AdminHandler {
	return &AdminHandler{authService: authService}
}

// Add provisions a new admin account with a generated temporary password.
//
// @Summary      Add an admin
// @Tags         admins
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addAdminRequest  true  "New admin email"
// @Success      201   {object}  provisionedAdminResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/admins [post]
func (h *AdminHandler) Add(c echo.Context) error {
	var req addAdminRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	provisioned, err := h.authService.AddAdmin(c.Request().Context(), req.Email)
	if err != nil {
		return err
	}
	metrics.AdminsProvisionedTotal.Inc()

	return c.JSON(http.StatusCreated, provisionedAdminResponse{
		Admin:        provisioned.Admin,
		TempPassword: provisioned.TempPassword,
	})
}

// List returns all admin accounts without secret fields.
//
// @Summary      List admins
// @Tags         admins
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  adminListResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/admins [get]
func (h *AdminHandler) List(c echo.Context) error {
	admins, err := h.authService.ListAdmins(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, adminListResponse{Admins: admins})
}

// Remove deletes a non-superadmin account.
//
// @Summary      Remove an admin
// @Tags         admins
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Admin ID"
// @Success      200  {object}  adminResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/admins/{id} [delete]
func (h *AdminHandler) Remove(c echo.Context) error {
	removed, err := h.authService.RemoveAdmin(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, adminResponse{Admin: removed})
}

// Handover transfers the superadmin role to another admin. On success the
// caller's record is gone and its tokens stop working; the response also
// clears the caller's cookies to reflect the forced logout.
//
// @Summary      Hand over the superadmin role
// @Tags         admins
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      handoverRequest  true  "Target admin"
// @Success      200   {object}  adminResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/admins/superadmin [put]
func (h *AdminHandler) Handover(c echo.Context) error {
	caller, err := ctxAdmin(c)
	if err != nil {
		return err
	}

	var req handoverRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	promoted, err := h.authService.Handover(c.Request().Context(), caller, req.NewSuperadminID)
	if err != nil {
		metrics.HandoversTotal.WithLabelValues("failure").Inc()
		return err
	}
	metrics.HandoversTotal.WithLabelValues("success").Inc()

	clearSessionCookies(c)
	return c.JSON(http.StatusOK, adminResponse{Admin: promoted})
}
