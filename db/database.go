package db

import (
	"database/sql"
	"fmt"
	"log"
	"strings"

	"client_case_tracker/config"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect opens the remote Turso database when configured and the local SQLite file otherwise
func Connect(cfg *config.Config) error {
	if cfg.TursoDatabaseURL != "" {
		return InitializeTurso(cfg.TursoDatabaseURL, cfg.TursoAuthToken, cfg.Environment)
	}
	return Initialize(cfg.DBPath, cfg.Environment)
}

// Initialize sets up the database connection with WAL mode for concurrency
func Initialize(dbPath string, environment string) error {
	var err error

	// Enable WAL mode for better concurrency support; foreign keys back the note cascade
	dsn := dbPath + "?_journal_mode=WAL&_foreign_keys=on"

	DB, err = gorm.Open(sqlite.Open(dsn), gormConfig(environment))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connection established (WAL mode enabled)")
	return nil
}

// InitializeTurso connects to a libSQL server through the SQLite dialect
func InitializeTurso(url, authToken, environment string) error {
	dsn := url
	if authToken != "" {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "authToken=" + authToken
	}

	conn, err := sql.Open("libsql", dsn)
	if err != nil {
		return fmt.Errorf("failed to open libsql connection: %w", err)
	}

	DB, err = gorm.Open(sqlite.New(sqlite.Config{DriverName: "libsql", Conn: conn}), gormConfig(environment))
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := DB.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		log.Printf("[WARNING] Could not enable foreign keys on libsql connection: %v", err)
	}

	log.Println("Database connection established (Turso/libSQL)")
	return nil
}

func gormConfig(environment string) *gorm.Config {
	// Determine log level based on environment
	logLevel := logger.Info
	if environment == "production" {
		logLevel = logger.Warn
	}
	return &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	}
}

// AutoMigrate runs database migrations for the provided models
func AutoMigrate(models ...interface{}) error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	err := DB.AutoMigrate(models...)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed")
	return nil
}

// Close closes the database connection
func Close() error {
	if DB == nil {
		return nil
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	return sqlDB.Close()
}
