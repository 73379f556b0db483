package handler

import "github.com/orgsite/cms-backend/internal/core/domain"

type registerSuperadminRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// refreshRequest is optional: when the body carries no token the handler
// falls back to the refresh cookie.
type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type resetPasswordRequest struct {
	Email              string `json:"email" validate:"required,email"`
	CurrentPassword    string `json:"current_password" validate:"required"`
	NewPassword        string `json:"new_password" validate:"required,min=8"`
	ConfirmNewPassword string `json:"confirm_new_password" validate:"required,eqfield=NewPassword"`
}

type addAdminRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type handoverRequest struct {
	NewSuperadminID string `json:"new_superadmin_id" validate:"required"`
}

type sessionResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	Admin        *domain.Admin `json:"admin"`
}

type adminResponse struct {
	Admin *domain.Admin `json:"admin"`
}

type adminListResponse struct {
	Admins []*domain.Admin `json:"admins"`
}

// provisionedAdminResponse carries the generated temporary password exactly
// once; it is never persisted in plaintext.
type provisionedAdminResponse struct {
	Admin        *domain.Admin `json:"admin"`
	TempPassword string        `json:"temp_password"`
}

type messageResponse struct {
	Message string `json:"message"`
}
