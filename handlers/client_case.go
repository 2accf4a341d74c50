package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"client_case_tracker/db"
	"client_case_tracker/middleware"
	"client_case_tracker/models"
	"client_case_tracker/services"

	"github.com/labstack/echo/v4"
)

type updateCaseRequest struct {
	ID json.RawMessage `json:"id"`
	services.CaseInput
}

// CreateClientCaseHandler registers a new case
func CreateClientCaseHandler(c echo.Context) error {
	var input services.CaseInput
	if err := c.Bind(&input); err != nil {
		return respondFailure(c, http.StatusBadRequest, "Invalid request body")
	}

	fields, err := input.Parse(middleware.GetConfig(c).Paralegals)
	if err != nil {
		return respondError(c, err)
	}

	clientCase, err := services.CreateClientCase(db.DB, fields)
	if err != nil {
		return respondError(c, err)
	}

	return respondOK(c, http.StatusCreated, clientCase)
}

// GetClientCasesHandler returns every case with its latest note, newest first.
// With ?id=N it returns that single case instead.
func GetClientCasesHandler(c echo.Context) error {
	if raw := c.QueryParam("id"); raw != "" {
		id, ok := parseID(raw)
		if !ok {
			return respondFailure(c, http.StatusBadRequest, "Invalid case ID")
		}
		clientCase, err := services.GetClientCase(db.DB, id)
		if err != nil {
			return respondError(c, err)
		}
		return respondOK(c, http.StatusOK, clientCase)
	}

	cases, err := services.ListClientCases(db.DB)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, http.StatusOK, cases)
}

// GetClientCaseViewHandler returns one filtered, sorted page of the case list
func GetClientCaseViewHandler(c echo.Context) error {
	state := services.NewCaseListState()
	if v := c.QueryParam("status"); v != "" {
		state = state.WithStatus(v)
	}
	if v := c.QueryParam("paralegal"); v != "" {
		state = state.WithParalegal(v)
	}
	state = state.WithSearch(c.QueryParam("search"))
	if field := services.ParseSortField(c.QueryParam("sort")); field != services.SortNone {
		// A new field starts ascending; selecting it again flips to descending
		state = state.WithSort(field)
		if services.ParseSortDirection(c.QueryParam("dir")) == services.SortDesc {
			state = state.WithSort(field)
		}
	}
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil {
		state = state.WithPage(p)
	}

	cases, err := services.ListClientCases(db.DB)
	if err != nil {
		return respondError(c, err)
	}

	return respondOK(c, http.StatusOK, services.ApplyCaseListQuery(cases, state))
}

// UpdateClientCaseHandler overwrites a case identified by the id in the body
func UpdateClientCaseHandler(c echo.Context) error {
	var req updateCaseRequest
	if err := c.Bind(&req); err != nil {
		return respondFailure(c, http.StatusBadRequest, "Invalid request body")
	}

	id, ok := parseID(string(req.ID))
	if !ok {
		return respondFailure(c, http.StatusBadRequest, "ID is required for update")
	}

	fields, err := req.CaseInput.Parse(middleware.GetConfig(c).Paralegals)
	if err != nil {
		return respondError(c, err)
	}

	clientCase, err := services.UpdateClientCase(db.DB, id, fields)
	if err != nil {
		return respondError(c, err)
	}

	return respondOK(c, http.StatusOK, clientCase)
}

// DeleteClientCaseHandler removes a case and its notes
func DeleteClientCaseHandler(c echo.Context) error {
	id, ok := parseID(c.QueryParam("id"))
	if !ok {
		return respondFailure(c, http.StatusBadRequest, "ID is required for deletion")
	}

	if err := services.DeleteClientCase(db.DB, id); err != nil {
		return respondError(c, err)
	}

	return respondMessage(c, "Client case deleted successfully")
}

// GetCaseOptionsHandler lists the values the case form and list filters accept
func GetCaseOptionsHandler(c echo.Context) error {
	paralegals := append([]string{}, middleware.GetConfig(c).Paralegals...)

	return respondOK(c, http.StatusOK, map[string]interface{}{
		"caseTypes":  models.CaseTypes,
		"statuses":   models.CaseStatuses,
		"paralegals": paralegals,
		"unassigned": models.ParalegalNotAssigned,
		"sortFields": services.SortFields,
		"pageSize":   services.CaseListPageSize,
		"filterAll":  services.FilterAll,
	})
}
