package main

import (
	"client_case_tracker/config"
	"client_case_tracker/db"
	"client_case_tracker/handlers"
	"client_case_tracker/middleware"
	"client_case_tracker/models"
	"client_case_tracker/services"
	"log"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Connect(cfg); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(&models.ClientCase{}, &models.CaseNote{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Rows written before status existed read as Active
	if n, err := services.BackfillCaseStatus(db.DB); err != nil {
		log.Printf("[WARNING] Status backfill failed: %v", err)
	} else if n > 0 {
		log.Printf("Backfilled status on %d client cases", n)
	}

	// Alert the admin on repeated failed logins
	services.InitSecurityMonitor(cfg)

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.RequestLogger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{echo.GET, echo.POST, echo.PUT, echo.DELETE},
		AllowCredentials: true,
	}))

	// Make config available to handlers
	e.Use(middleware.InjectConfig(cfg))
	e.Use(middleware.SecurityHeaders())

	handlers.RegisterRoutes(e)

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
