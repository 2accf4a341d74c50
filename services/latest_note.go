package services

import (
	"fmt"

	"client_case_tracker/models"

	"gorm.io/gorm"
)

// latestNoteBatchSize keeps the IN list below SQLite's bound-parameter limit
const latestNoteBatchSize = 500

// latestNoteCondition keeps only the newest note of each case, highest id winning ties
const latestNoteCondition = `case_notes.id = (
	SELECT n2.id FROM case_notes AS n2
	WHERE n2.client_case_id = case_notes.client_case_id
	ORDER BY n2.created_at DESC, n2.id DESC
	LIMIT 1
)`

// AttachLatestNotes builds the read representation of each case with its most recent note.
// It reads at most one note per case and never writes.
func AttachLatestNotes(db *gorm.DB, cases []models.ClientCase) ([]models.ClientCaseView, error) {
	views := make([]models.ClientCaseView, len(cases))
	if len(cases) == 0 {
		return views, nil
	}

	latest := make(map[uint]models.CaseNote, len(cases))
	for start := 0; start < len(cases); start += latestNoteBatchSize {
		end := start + latestNoteBatchSize
		if end > len(cases) {
			end = len(cases)
		}

		ids := make([]uint, 0, end-start)
		for _, c := range cases[start:end] {
			ids = append(ids, c.ID)
		}

		var notes []models.CaseNote
		if err := db.Where("case_notes.client_case_id IN ?", ids).
			Where(latestNoteCondition).
			Find(&notes).Error; err != nil {
			return nil, fmt.Errorf("failed to fetch latest notes: %w", err)
		}
		for _, n := range notes {
			latest[n.ClientCaseID] = n
		}
	}

	for i, c := range cases {
		views[i] = models.ClientCaseView{ClientCase: c}
		if note, ok := latest[c.ID]; ok {
			content := note.Content
			createdAt := note.CreatedAt
			views[i].LatestNote = &content
			views[i].LatestNoteDate = &createdAt
		}
	}
	return views, nil
}

// findLatestNote returns the most recent note of a case, or nil when it has none
func findLatestNote(db *gorm.DB, clientCaseID uint) (*models.CaseNote, error) {
	var notes []models.CaseNote
	if err := db.Where("client_case_id = ?", clientCaseID).
		Order("created_at DESC, id DESC").
		Limit(1).
		Find(&notes).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch latest note: %w", err)
	}
	if len(notes) == 0 {
		return nil, nil
	}
	return &notes[0], nil
}
