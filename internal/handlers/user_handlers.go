package handlers

import (
	"net/http"

	"notehub/internal/common"
	"notehub/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// UserHandlers handles the authenticated account endpoints.
type UserHandlers struct {
	userSvc services.UserService
}

func NewUserHandlers(userSvc services.UserService) *UserHandlers {
	return &UserHandlers{userSvc: userSvc}
}

func currentUserID(c echo.Context) (uuid.UUID, bool) {
	return common.GetUserIDFromContext(c.Request().Context())
}

// Profile handles getting the current user's profile.
func (h *UserHandlers) Profile(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return respondUnauthorized(c)
	}

	summary, err := h.userSvc.Profile(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, http.StatusOK, "Profile retrieved", summary)
}

// UpdateProfileRequest represents the profile update payload. Omitted
// fields are left unchanged.
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
}

// UpdateProfile handles updating the current user's profile.
func (h *UserHandlers) UpdateProfile(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return respondUnauthorized(c)
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "Invalid request format")
	}

	summary, err := h.userSvc.UpdateProfile(c.Request().Context(), userID, req.FirstName, req.LastName, req.Email)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, http.StatusOK, "Profile updated successfully", summary)
}

// ChangePasswordRequest represents the password change payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// ChangePassword handles changing the current user's password.
func (h *UserHandlers) ChangePassword(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return respondUnauthorized(c)
	}

	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "Invalid request format")
	}

	err := h.userSvc.ChangePassword(c.Request().Context(), userID, req.CurrentPassword, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, http.StatusOK, "Password changed successfully", nil)
}

// Dashboard composes the profile with note statistics, recent and
// pinned notes and the count of notes updated today.
func (h *UserHandlers) Dashboard(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return respondUnauthorized(c)
	}

	dashboard, err := h.userSvc.Dashboard(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, http.StatusOK, "Dashboard retrieved", dashboard)
}

// DeactivateAccount soft-deletes the current user's account. Notes are
// not removed; repeating the call succeeds silently.
func (h *UserHandlers) DeactivateAccount(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return respondUnauthorized(c)
	}

	if err := h.userSvc.Deactivate(c.Request().Context(), userID); err != nil {
		return respondError(c, err)
	}
	return respondOK(c, http.StatusOK, "Account deactivated", nil)
}
