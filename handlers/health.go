package handlers

import (
	"context"
	"net/http"
	"time"

	"client_case_tracker/db"

	"github.com/labstack/echo/v4"
)

// HealthHandler reports whether the database is reachable
func HealthHandler(c echo.Context) error {
	if db.DB == nil {
		return respondFailure(c, http.StatusServiceUnavailable, "Database not initialized")
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return respondFailure(c, http.StatusServiceUnavailable, "Database unavailable")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return respondFailure(c, http.StatusServiceUnavailable, "Database unavailable")
	}

	return respondOK(c, http.StatusOK, map[string]string{"status": "ok"})
}
