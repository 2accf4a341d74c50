package models

import (
	"time"
)

// CaseNote is a timestamped progress entry attached to one client case
type CaseNote struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	ClientCaseID uint      `gorm:"not null;index:idx_case_notes_case_created,priority:1" json:"clientCaseId"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	CreatedAt    time.Time `gorm:"index:idx_case_notes_case_created,priority:2" json:"createdAt"`
}

// TableName specifies the table name for CaseNote model
func (CaseNote) TableName() string {
	return "case_notes"
}
