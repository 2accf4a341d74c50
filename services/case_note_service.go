package services

import (
	"fmt"
	"strings"
	"time"

	"client_case_tracker/models"

	"gorm.io/gorm"
)

// AddCaseNote appends a note to an existing case
func AddCaseNote(db *gorm.DB, clientCaseID uint, content string) (*models.CaseNote, error) {
	verr := &ValidationError{}

	content = strings.TrimSpace(content)
	switch {
	case content == "":
		verr.add("content", "Content is required")
	case HasMarkup(content):
		verr.add("content", "Content must not contain markup")
	}

	if clientCaseID == 0 {
		verr.add("clientCaseId", "Client case ID is required")
	} else {
		exists, err := ClientCaseExists(db, clientCaseID)
		if err != nil {
			return nil, err
		}
		if !exists {
			verr.add("clientCaseId", "Client case does not exist")
		}
	}

	if err := verr.errOrNil(); err != nil {
		return nil, err
	}

	note := &models.CaseNote{
		ClientCaseID: clientCaseID,
		Content:      content,
		CreatedAt:    time.Now(),
	}
	if err := db.Create(note).Error; err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	return note, nil
}

// ListCaseNotes returns the full note history of a case, newest first
func ListCaseNotes(db *gorm.DB, clientCaseID uint) ([]models.CaseNote, error) {
	exists, err := ClientCaseExists(db, clientCaseID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrCaseNotFound
	}

	notes := []models.CaseNote{}
	if err := db.Where("client_case_id = ?", clientCaseID).
		Order("created_at DESC, id DESC").
		Find(&notes).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch notes: %w", err)
	}
	return notes, nil
}
