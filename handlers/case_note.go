package handlers

import (
	"encoding/json"
	"net/http"

	"client_case_tracker/db"
	"client_case_tracker/services"

	"github.com/labstack/echo/v4"
)

type createNoteRequest struct {
	ClientCaseID json.RawMessage `json:"clientCaseId"`
	Content      string          `json:"content"`
}

// CreateCaseNoteHandler appends a note to a case
func CreateCaseNoteHandler(c echo.Context) error {
	var req createNoteRequest
	if err := c.Bind(&req); err != nil {
		return respondFailure(c, http.StatusBadRequest, "Invalid request body")
	}

	// An unparsable id is reported by the service as a missing one
	caseID, _ := parseID(string(req.ClientCaseID))

	note, err := services.AddCaseNote(db.DB, caseID, req.Content)
	if err != nil {
		return respondError(c, err)
	}

	return respondOK(c, http.StatusCreated, note)
}

// GetCaseNotesHandler returns all notes of a case, newest first
func GetCaseNotesHandler(c echo.Context) error {
	caseID, ok := parseID(c.QueryParam("clientCaseId"))
	if !ok {
		return respondFailure(c, http.StatusBadRequest, "Client case ID is required")
	}

	notes, err := services.ListCaseNotes(db.DB, caseID)
	if err != nil {
		return respondError(c, err)
	}

	return respondOK(c, http.StatusOK, notes)
}
