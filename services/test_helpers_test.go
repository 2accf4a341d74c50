package services

import (
	"testing"
	"time"

	"client_case_tracker/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testParalegals = []string{"Andrea", "Carolina", "Daniela"}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Unique shared memory name isolates tests while letting pooled connections see the same data
	dsn := "file:mem_" + uuid.New().String() + "?mode=memory&cache=shared&_busy_timeout=5000&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.ClientCase{}, &models.CaseNote{}))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func stringPtr(s string) *string {
	return &s
}

func floatPtr(f float64) *float64 {
	return &f
}

// createTestCase stores a case directly, bypassing input parsing
func createTestCase(t *testing.T, db *gorm.DB, name string, createdAt time.Time) *models.ClientCase {
	t.Helper()
	c := &models.ClientCase{
		ClientName: name,
		CaseType:   models.CaseTypeGreenCard,
		Status:     models.CaseStatusActive,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

func createTestNote(t *testing.T, db *gorm.DB, caseID uint, content string, createdAt time.Time) *models.CaseNote {
	t.Helper()
	n := &models.CaseNote{ClientCaseID: caseID, Content: content, CreatedAt: createdAt}
	require.NoError(t, db.Create(n).Error)
	return n
}
