package handlers

import (
	"errors"
	"net/http"

	"client_case_tracker/middleware"
	"client_case_tracker/services"

	"github.com/labstack/echo/v4"
)

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// LoginHandler checks the admin credentials and sets the session cookie
func LoginHandler(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return respondFailure(c, http.StatusBadRequest, "Invalid request body")
	}

	auth := services.NewAuthenticator(middleware.GetConfig(c))
	token, expiresAt, err := auth.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			services.Monitor.TrackFailedLogin(c.RealIP())
			services.LogSecurityEvent("LOGIN_FAILED", c.RealIP(), "invalid credentials")
		}
		return respondError(c, err)
	}

	middleware.SetSessionCookie(c, token, expiresAt)
	services.LogSecurityEvent("LOGIN", c.RealIP(), "admin signed in")

	return respondMessage(c, "Login successful")
}

// LogoutHandler replaces the session cookie with an expired one
func LogoutHandler(c echo.Context) error {
	middleware.ClearSessionCookie(c)
	return respondMessage(c, "Logout successful")
}

// GetSessionHandler returns the identity behind the current session
func GetSessionHandler(c echo.Context) error {
	claims := middleware.GetSession(c)
	if claims == nil {
		return respondFailure(c, http.StatusUnauthorized, "Unauthorized")
	}

	data := map[string]interface{}{
		"username": claims.Username,
		"role":     claims.Role,
	}
	if claims.ExpiresAt != nil {
		data["expiresAt"] = claims.ExpiresAt.Time
	}
	return respondOK(c, http.StatusOK, data)
}
