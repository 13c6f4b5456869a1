package handlers

import (
	"net/http"

	"notehub/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandlers handles the unauthenticated auth endpoints.
type AuthHandlers struct {
	userSvc services.UserService
}

func NewAuthHandlers(userSvc services.UserService) *AuthHandlers {
	return &AuthHandlers{userSvc: userSvc}
}

// RegisterRequest represents the registration payload.
type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Register handles user registration.
func (h *AuthHandlers) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "Invalid request format")
	}

	resp, err := h.userSvc.Register(c.Request().Context(), req.FirstName, req.LastName, req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, http.StatusCreated, "Account created successfully", resp)
}

// LoginRequest represents the login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles user login with email and password.
func (h *AuthHandlers) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "Invalid request format")
	}
	if req.Email == "" || req.Password == "" {
		return respondBadRequest(c, "Email and password are required")
	}

	resp, err := h.userSvc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, http.StatusOK, "Logged in successfully", resp)
}

// ForgotPasswordRequest represents the forgot-password payload.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword always reports success, whether or not the email
// exists, so the endpoint cannot be used to enumerate accounts. No
// reset token is issued.
func (h *AuthHandlers) ForgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "Invalid request format")
	}
	return respondOK(c, http.StatusOK, "If an account with that email exists, password reset instructions have been sent", nil)
}
