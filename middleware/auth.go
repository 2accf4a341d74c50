package middleware

import (
	"net/http"
	"time"

	"client_case_tracker/config"
	"client_case_tracker/models"
	"client_case_tracker/services"

	"github.com/labstack/echo/v4"
)

const (
	// SessionCookieName is the name of the session cookie
	SessionCookieName = "auth-token"
	// ContextKeyConfig is the context key for the application config
	ContextKeyConfig = "config"
	// ContextKeySession is the context key for the verified session claims
	ContextKeySession = "session"
)

// InjectConfig makes the immutable startup config available to handlers
func InjectConfig(cfg *config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(ContextKeyConfig, cfg)
			return next(c)
		}
	}
}

// GetConfig retrieves the config from context
func GetConfig(c echo.Context) *config.Config {
	cfg, ok := c.Get(ContextKeyConfig).(*config.Config)
	if !ok {
		return &config.Config{}
	}
	return cfg
}

// RequireAuth is middleware that requires a valid session token.
// Missing, malformed, expired or forged tokens all get the same 401.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				return unauthorized(c)
			}

			claims, err := services.NewAuthenticator(GetConfig(c)).ParseToken(cookie.Value)
			if err != nil {
				ClearSessionCookie(c)
				return unauthorized(c)
			}

			c.Set(ContextKeySession, claims)
			return next(c)
		}
	}
}

// GetSession retrieves the verified session claims from context
func GetSession(c echo.Context) *services.SessionClaims {
	claims, ok := c.Get(ContextKeySession).(*services.SessionClaims)
	if !ok {
		return nil
	}
	return claims
}

// SetSessionCookie delivers the session token as an HTTP-only, same-site strict cookie
func SetSessionCookie(c echo.Context, token string, expiresAt time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(services.SessionDuration.Seconds()),
		HttpOnly: true,
		Secure:   GetConfig(c).IsProduction(),
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearSessionCookie replaces the session cookie with an immediately expired one
func ClearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   GetConfig(c).IsProduction(),
		SameSite: http.SameSiteStrictMode,
	})
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, models.APIResponse{Success: false, Error: "Unauthorized"})
}
