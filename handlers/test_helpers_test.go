package handlers

import (
	"io"
	"net/http/httptest"
	"testing"

	"client_case_tracker/config"
	"client_case_tracker/db"
	"client_case_tracker/middleware"
	"client_case_tracker/models"
	"client_case_tracker/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	testAdminUser     = "admin"
	testAdminPassword = "s3cret-pass"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Use unique shared memory name to isolate tests while allowing shared cache across pooled connections
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000&_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)

	err = testDB.AutoMigrate(&models.ClientCase{}, &models.CaseNote{})
	assert.NoError(t, err)

	// Set global DB
	db.DB = testDB

	// Fresh monitor so failed-login counts do not leak between tests
	services.Monitor = services.NewSecurityEventMonitor(nil)

	t.Cleanup(func() {
		if sqlDB, err := testDB.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return testDB
}

func testConfig() *config.Config {
	return &config.Config{
		Environment:   "test",
		SessionSecret: "handler-test-secret-0123456789abcdef",
		Admin:         config.AdminCredentials{Username: testAdminUser, Password: testAdminPassword},
		Paralegals:    []string{"Andrea", "Carolina"},
		EmailTestMode: true,
	}
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Add config to context
	c.Set(middleware.ContextKeyConfig, testConfig())

	return e, c, rec
}

// newTestServer wires the full route table the way the server does
func newTestServer() *echo.Echo {
	e := echo.New()
	e.Use(middleware.InjectConfig(testConfig()))
	e.Use(middleware.SecurityHeaders())
	RegisterRoutes(e)
	return e
}

func stringToPtr(s string) *string {
	return &s
}
