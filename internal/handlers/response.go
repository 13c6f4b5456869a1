package handlers

import (
	"errors"
	"net/http"

	"notehub/internal/common"

	"github.com/labstack/echo/v4"
)

func respondOK(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, common.SuccessResponse{Message: message, Data: data})
}

// respondError maps service errors onto the standard error envelope.
// Unknown errors are logged server-side and surface as a generic 500.
func respondError(c echo.Context, err error) error {
	if verr, ok := common.AsValidationError(err); ok {
		return c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Error:   "validation_error",
			Message: "Validation failed",
			Errors:  verr.Fields,
		})
	}

	switch {
	case errors.Is(err, common.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, common.ErrorResponse{
			Error: "invalid_credentials", Message: err.Error(),
		})
	case errors.Is(err, common.ErrAccountDeactivated):
		return c.JSON(http.StatusForbidden, common.ErrorResponse{
			Error: "account_deactivated", Message: err.Error(),
		})
	case errors.Is(err, common.ErrEmailTaken):
		return c.JSON(http.StatusConflict, common.ErrorResponse{
			Error: "conflict", Message: err.Error(),
		})
	case errors.Is(err, common.ErrNoteNotFound), errors.Is(err, common.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, common.ErrorResponse{
			Error: "not_found", Message: err.Error(),
		})
	case errors.Is(err, common.ErrSamePassword):
		return c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Error: "password_unchanged", Message: err.Error(),
		})
	default:
		c.Logger().Errorf("request failed: %v", err)
		return c.JSON(http.StatusInternalServerError, common.ErrorResponse{
			Error: "internal_error", Message: "Something went wrong",
		})
	}
}

func respondBadRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, common.ErrorResponse{
		Error: "bad_request", Message: message,
	})
}

func respondUnauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, common.ErrorResponse{
		Error: "unauthorized", Message: "Authentication required",
	})
}
