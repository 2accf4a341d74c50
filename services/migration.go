package services

import (
	"fmt"
	"log"
	"strings"

	"client_case_tracker/models"

	"gorm.io/gorm"
)

// LegacyNotesResult summarizes a legacy note migration run
type LegacyNotesResult struct {
	CasesScanned int
	Migrated     int
	Skipped      int
}

// MigrateLegacyNotes copies each case's legacy notes text into the note history,
// dated at the case's creation time. Cases that already hold a note with the same
// content are skipped, so the migration can be re-run safely.
func MigrateLegacyNotes(db *gorm.DB) (*LegacyNotesResult, error) {
	var cases []models.ClientCase
	if err := db.Where("notes IS NOT NULL AND TRIM(notes) <> ''").
		Order("id ASC").
		Find(&cases).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch cases with notes: %w", err)
	}

	result := &LegacyNotesResult{CasesScanned: len(cases)}
	for _, c := range cases {
		content := strings.TrimSpace(*c.Notes)

		var count int64
		if err := db.Model(&models.CaseNote{}).
			Where("client_case_id = ? AND content = ?", c.ID, content).
			Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to check notes for case %d: %w", c.ID, err)
		}
		if count > 0 {
			result.Skipped++
			continue
		}

		note := &models.CaseNote{
			ClientCaseID: c.ID,
			Content:      content,
			CreatedAt:    c.CreatedAt,
		}
		if err := db.Create(note).Error; err != nil {
			return nil, fmt.Errorf("failed to migrate note for case %d: %w", c.ID, err)
		}
		result.Migrated++
		log.Printf("[MIGRATE] Migrated note for case %d: %s", c.ID, c.ClientName)
	}

	return result, nil
}

// BackfillCaseStatus stores Active on rows created before status existed.
// The rows' updatedAt is left untouched since their effective status does not change.
func BackfillCaseStatus(db *gorm.DB) (int64, error) {
	result := db.Model(&models.ClientCase{}).
		Where("status IS NULL OR TRIM(status) = ''").
		UpdateColumn("status", models.CaseStatusActive)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to backfill case status: %w", result.Error)
	}
	return result.RowsAffected, nil
}
