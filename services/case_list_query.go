package services

import (
	"sort"
	"strings"

	"client_case_tracker/models"
)

const (
	// CaseListPageSize is the fixed number of cases per page
	CaseListPageSize = 30
	// FilterAll disables a filter
	FilterAll = "All"
)

// SortField names the single column a case list can be ordered by
type SortField string

const (
	SortNone          SortField = ""
	SortClientName    SortField = "clientName"
	SortCaseType      SortField = "caseType"
	SortStatus        SortField = "status"
	SortParalegal     SortField = "paralegal"
	SortCreatedAt     SortField = "createdAt"
	SortTotalContract SortField = "totalContract"
	SortLatestNote    SortField = "latestNote"
)

// SortFields lists the sortable columns
var SortFields = []SortField{
	SortClientName,
	SortCaseType,
	SortStatus,
	SortParalegal,
	SortCreatedAt,
	SortTotalContract,
	SortLatestNote,
}

// ParseSortField matches a column name case-insensitively; unknown names mean no sort
func ParseSortField(value string) SortField {
	for _, f := range SortFields {
		if strings.EqualFold(string(f), strings.TrimSpace(value)) {
			return f
		}
	}
	return SortNone
}

// SortDirection is ascending or descending
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ParseSortDirection defaults to ascending
func ParseSortDirection(value string) SortDirection {
	if strings.EqualFold(strings.TrimSpace(value), string(SortDesc)) {
		return SortDesc
	}
	return SortAsc
}

// CaseListState is the filter, sort and page selection applied to a case list
type CaseListState struct {
	Status        string        `json:"status"`
	Paralegal     string        `json:"paralegal"`
	Search        string        `json:"search"`
	SortField     SortField     `json:"sort"`
	SortDirection SortDirection `json:"dir"`
	Page          int           `json:"page"`
}

// NewCaseListState returns the unfiltered, unsorted first page
func NewCaseListState() CaseListState {
	return CaseListState{
		Status:        FilterAll,
		Paralegal:     FilterAll,
		SortDirection: SortAsc,
		Page:          1,
	}
}

// WithStatus selects a status filter; a change returns to page 1
func (s CaseListState) WithStatus(status string) CaseListState {
	if s.Status != status {
		s.Status = status
		s.Page = 1
	}
	return s
}

// WithParalegal selects a paralegal filter; a change returns to page 1
func (s CaseListState) WithParalegal(paralegal string) CaseListState {
	if s.Paralegal != paralegal {
		s.Paralegal = paralegal
		s.Page = 1
	}
	return s
}

// WithSearch sets the client name query; a change returns to page 1
func (s CaseListState) WithSearch(search string) CaseListState {
	if s.Search != search {
		s.Search = search
		s.Page = 1
	}
	return s
}

// WithSort selects a sort column. Selecting the current column again flips the direction,
// a new column starts ascending. Either way the list returns to page 1.
func (s CaseListState) WithSort(field SortField) CaseListState {
	if field == s.SortField && field != SortNone {
		if s.SortDirection == SortAsc {
			s.SortDirection = SortDesc
		} else {
			s.SortDirection = SortAsc
		}
	} else {
		s.SortField = field
		s.SortDirection = SortAsc
	}
	s.Page = 1
	return s
}

// WithPage moves to a page; bounds are applied when the state is evaluated
func (s CaseListState) WithPage(page int) CaseListState {
	s.Page = page
	return s
}

// CaseListPage is one page of a filtered and sorted case list
type CaseListPage struct {
	Items      []models.ClientCaseView `json:"items"`
	Page       int                     `json:"page"`
	PageSize   int                     `json:"pageSize"`
	TotalItems int                     `json:"totalItems"`
	TotalPages int                     `json:"totalPages"`
	State      CaseListState           `json:"state"`
}

// ApplyCaseListQuery filters by status, then paralegal, then client name, sorts, and paginates.
// The input slice is not modified.
func ApplyCaseListQuery(cases []models.ClientCaseView, state CaseListState) CaseListPage {
	filtered := make([]models.ClientCaseView, 0, len(cases))
	search := strings.ToLower(strings.TrimSpace(state.Search))
	for _, c := range cases {
		if !matchesStatus(c, state.Status) || !matchesParalegal(c, state.Paralegal) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(c.ClientName), search) {
			continue
		}
		filtered = append(filtered, c)
	}

	sortCases(filtered, state.SortField, state.SortDirection)

	total := len(filtered)
	totalPages := (total + CaseListPageSize - 1) / CaseListPageSize
	if totalPages < 1 {
		totalPages = 1
	}
	page := state.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * CaseListPageSize
	end := start + CaseListPageSize
	if end > total {
		end = total
	}

	state.Page = page
	return CaseListPage{
		Items:      filtered[start:end],
		Page:       page,
		PageSize:   CaseListPageSize,
		TotalItems: total,
		TotalPages: totalPages,
		State:      state,
	}
}

func isFilterAll(value string) bool {
	value = strings.TrimSpace(value)
	return value == "" || strings.EqualFold(value, FilterAll)
}

func matchesStatus(c models.ClientCaseView, status string) bool {
	if isFilterAll(status) {
		return true
	}
	return strings.EqualFold(string(models.NormalizeCaseStatus(c.Status)), strings.TrimSpace(status))
}

func matchesParalegal(c models.ClientCaseView, paralegal string) bool {
	if isFilterAll(paralegal) {
		return true
	}
	return strings.EqualFold(c.ParalegalName(), strings.TrimSpace(paralegal))
}

func sortCases(cases []models.ClientCaseView, field SortField, dir SortDirection) {
	less := lessFunc(field)
	if less == nil {
		return
	}
	sort.SliceStable(cases, func(i, j int) bool {
		if dir == SortDesc {
			return less(cases[j], cases[i])
		}
		return less(cases[i], cases[j])
	})
}

func lessFunc(field SortField) func(a, b models.ClientCaseView) bool {
	switch field {
	case SortClientName:
		return byText(func(c models.ClientCaseView) string { return c.ClientName })
	case SortCaseType:
		return byText(func(c models.ClientCaseView) string { return string(c.CaseType) })
	case SortStatus:
		return byText(func(c models.ClientCaseView) string { return string(models.NormalizeCaseStatus(c.Status)) })
	case SortParalegal:
		return byText(func(c models.ClientCaseView) string { return deref(c.Paralegal) })
	case SortLatestNote:
		return byText(func(c models.ClientCaseView) string { return deref(c.LatestNote) })
	case SortCreatedAt:
		return func(a, b models.ClientCaseView) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case SortTotalContract:
		return func(a, b models.ClientCaseView) bool { return amount(a.TotalContract) < amount(b.TotalContract) }
	default:
		return nil
	}
}

func byText(key func(models.ClientCaseView) string) func(a, b models.ClientCaseView) bool {
	return func(a, b models.ClientCaseView) bool {
		return strings.ToLower(key(a)) < strings.ToLower(key(b))
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func amount(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
