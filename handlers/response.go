package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"client_case_tracker/models"
	"client_case_tracker/services"

	"github.com/labstack/echo/v4"
)

func respondOK(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, models.APIResponse{Success: true, Data: data})
}

func respondMessage(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, models.APIResponse{Success: true, Message: message})
}

func respondFailure(c echo.Context, status int, message string) error {
	return c.JSON(status, models.APIResponse{Success: false, Error: message})
}

// respondError maps service errors to status codes. Unexpected errors are logged
// and reported generically.
func respondError(c echo.Context, err error) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, models.APIResponse{
			Success: false,
			Error:   verr.Message(),
			Fields:  verr.Fields,
		})
	case errors.Is(err, services.ErrCaseNotFound):
		return respondFailure(c, http.StatusNotFound, "Case not found")
	case errors.Is(err, services.ErrInvalidCredentials):
		return respondFailure(c, http.StatusUnauthorized, "Invalid credentials")
	default:
		log.Printf("[ERROR] %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
		return respondFailure(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

// parseID reads a positive integer id sent as a number or a string
func parseID(raw string) (uint, bool) {
	raw = strings.Trim(strings.TrimSpace(raw), `"`)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}
