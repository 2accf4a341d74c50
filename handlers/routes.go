package handlers

import (
	"client_case_tracker/middleware"

	"github.com/labstack/echo/v4"
)

// RegisterRoutes mounts the public and session-protected API routes
func RegisterRoutes(e *echo.Echo) {
	// Public routes
	e.GET("/healthz", HealthHandler)
	e.POST("/api/auth", LoginHandler)

	// Protected routes
	protected := e.Group("/api")
	protected.Use(middleware.RequireAuth())
	{
		protected.GET("/auth", GetSessionHandler)
		protected.DELETE("/auth", LogoutHandler)

		protected.GET("/client-cases", GetClientCasesHandler)
		protected.POST("/client-cases", CreateClientCaseHandler)
		protected.PUT("/client-cases", UpdateClientCaseHandler)
		protected.DELETE("/client-cases", DeleteClientCaseHandler)
		protected.GET("/client-cases/view", GetClientCaseViewHandler)
		protected.GET("/client-cases/export", ExportClientCasesHandler)
		protected.POST("/client-cases/import", ImportClientCasesHandler)
		protected.GET("/case-options", GetCaseOptionsHandler)

		protected.GET("/case-notes", GetCaseNotesHandler)
		protected.POST("/case-notes", CreateCaseNoteHandler)
	}
}
