package services

import (
	"errors"
	"fmt"
	"time"

	"client_case_tracker/models"

	"gorm.io/gorm"
)

// CreateClientCase persists a new case. Non-empty legacy notes also seed the case's first note.
func CreateClientCase(db *gorm.DB, fields CaseFields) (*models.ClientCase, error) {
	now := time.Now()
	clientCase := &models.ClientCase{
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyCaseFields(clientCase, fields)

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(clientCase).Error; err != nil {
			return fmt.Errorf("failed to create case: %w", err)
		}

		if text := fields.NoteText(); text != "" {
			note := &models.CaseNote{
				ClientCaseID: clientCase.ID,
				Content:      text,
				CreatedAt:    now,
			}
			if err := tx.Create(note).Error; err != nil {
				return fmt.Errorf("failed to create initial note: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return clientCase, nil
}

// GetClientCase returns one case with its latest note attached
func GetClientCase(db *gorm.DB, id uint) (*models.ClientCaseView, error) {
	clientCase, err := findClientCase(db, id)
	if err != nil {
		return nil, err
	}

	views, err := AttachLatestNotes(db, []models.ClientCase{*clientCase})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// ListClientCases returns every case, newest first, with its latest note attached
func ListClientCases(db *gorm.DB) ([]models.ClientCaseView, error) {
	var cases []models.ClientCase
	if err := db.Order("created_at DESC, id DESC").Find(&cases).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch cases: %w", err)
	}
	return AttachLatestNotes(db, cases)
}

// UpdateClientCase overwrites every mutable field of a case.
// Non-empty notes text replaces the content of the case's most recent note in place,
// or creates the first note when the case has none.
func UpdateClientCase(db *gorm.DB, id uint, fields CaseFields) (*models.ClientCase, error) {
	var clientCase *models.ClientCase

	err := db.Transaction(func(tx *gorm.DB) error {
		existing, err := findClientCase(tx, id)
		if err != nil {
			return err
		}

		applyCaseFields(existing, fields)
		existing.UpdatedAt = time.Now()
		if err := tx.Save(existing).Error; err != nil {
			return fmt.Errorf("failed to update case: %w", err)
		}
		clientCase = existing

		text := fields.NoteText()
		if text == "" {
			return nil
		}

		latest, err := findLatestNote(tx, existing.ID)
		if err != nil {
			return err
		}
		if latest != nil {
			if err := tx.Model(latest).Update("content", text).Error; err != nil {
				return fmt.Errorf("failed to update latest note: %w", err)
			}
			return nil
		}

		note := &models.CaseNote{ClientCaseID: existing.ID, Content: text}
		if err := tx.Create(note).Error; err != nil {
			return fmt.Errorf("failed to create note: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return clientCase, nil
}

// DeleteClientCase removes a case and all of its notes. Unknown ids are an error.
func DeleteClientCase(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := findClientCase(tx, id); err != nil {
			return err
		}

		if err := tx.Where("client_case_id = ?", id).Delete(&models.CaseNote{}).Error; err != nil {
			return fmt.Errorf("failed to delete case notes: %w", err)
		}

		result := tx.Delete(&models.ClientCase{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete case: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrCaseNotFound
		}
		return nil
	})
}

// ClientCaseExists reports whether a case with the given id is stored
func ClientCaseExists(db *gorm.DB, id uint) (bool, error) {
	var count int64
	if err := db.Model(&models.ClientCase{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check case: %w", err)
	}
	return count > 0, nil
}

func findClientCase(db *gorm.DB, id uint) (*models.ClientCase, error) {
	if id == 0 {
		return nil, ErrCaseNotFound
	}

	var clientCase models.ClientCase
	if err := db.First(&clientCase, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCaseNotFound
		}
		return nil, fmt.Errorf("failed to fetch case: %w", err)
	}
	return &clientCase, nil
}

func applyCaseFields(clientCase *models.ClientCase, fields CaseFields) {
	clientCase.ClientName = fields.ClientName
	clientCase.CaseType = fields.CaseType
	clientCase.Status = models.NormalizeCaseStatus(fields.Status)
	clientCase.Paralegal = fields.Paralegal
	clientCase.TotalContract = fields.TotalContract
	clientCase.Notes = fields.Notes
}
