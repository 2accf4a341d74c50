package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// CaseStatus is the lifecycle state of a client case
type CaseStatus string

// Case status constants
const (
	CaseStatusActive    CaseStatus = "Active"
	CaseStatusCompleted CaseStatus = "Completed"
	CaseStatusOther     CaseStatus = "Other" // kept for records created by earlier revisions
)

// CaseStatuses lists the accepted statuses in display order
var CaseStatuses = []CaseStatus{CaseStatusActive, CaseStatusCompleted, CaseStatusOther}

// NormalizeCaseStatus maps the legacy empty status to Active
func NormalizeCaseStatus(s CaseStatus) CaseStatus {
	if strings.TrimSpace(string(s)) == "" {
		return CaseStatusActive
	}
	return s
}

// ParseCaseStatus matches a status case-insensitively. An empty value is Active.
func ParseCaseStatus(value string) (CaseStatus, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return CaseStatusActive, true
	}
	for _, s := range CaseStatuses {
		if strings.EqualFold(string(s), value) {
			return s, true
		}
	}
	return "", false
}

// CaseType is the kind of immigration matter handled for the client
type CaseType string

const (
	CaseTypeGreenCard              CaseType = "Green Card"
	CaseTypeTNVisa                 CaseType = "TN Visa"
	CaseTypeInvestorVisa           CaseType = "Investor Visa"
	CaseTypeWorkVisa               CaseType = "Work Visa"
	CaseTypeNationalInterestVisa   CaseType = "National Interest Visa"
	CaseTypeCitizenship            CaseType = "Citizenship"
	CaseTypeFOIA                   CaseType = "FOIA"
	CaseTypeConsularEmbassyProcess CaseType = "Consular-Embassy Process"
	CaseTypeDACA                   CaseType = "DACA"
	CaseTypeFianceVisa             CaseType = "Fiancé(e) Visa"
	CaseTypeTouristVisa            CaseType = "Tourist Visa"
)

// CaseTypes lists the accepted case types in display order
var CaseTypes = []CaseType{
	CaseTypeGreenCard,
	CaseTypeTNVisa,
	CaseTypeInvestorVisa,
	CaseTypeWorkVisa,
	CaseTypeNationalInterestVisa,
	CaseTypeCitizenship,
	CaseTypeFOIA,
	CaseTypeConsularEmbassyProcess,
	CaseTypeDACA,
	CaseTypeFianceVisa,
	CaseTypeTouristVisa,
}

// older records spell the fiancé visa without the accent
var caseTypeAliases = map[string]CaseType{
	"fiance(e) visa": CaseTypeFianceVisa,
}

// ParseCaseType matches a case type case-insensitively, accepting legacy spellings
func ParseCaseType(value string) (CaseType, bool) {
	value = strings.TrimSpace(value)
	for _, t := range CaseTypes {
		if strings.EqualFold(string(t), value) {
			return t, true
		}
	}
	if t, ok := caseTypeAliases[strings.ToLower(value)]; ok {
		return t, true
	}
	return "", false
}

// ClientCase represents a client's legal matter
type ClientCase struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	ClientName    string     `gorm:"size:255;not null" json:"clientName"`
	CaseType      CaseType   `gorm:"size:100;not null" json:"caseType"`
	Status        CaseStatus `gorm:"size:20;not null;default:Active;index" json:"status"`
	Paralegal     *string    `gorm:"size:100;index" json:"paralegal"`
	TotalContract *float64   `gorm:"type:decimal(12,2)" json:"totalContract"`

	// Legacy free-text notes, superseded by CaseNote
	Notes *string `gorm:"type:text" json:"notes"`

	CaseNotes []CaseNote `gorm:"foreignKey:ClientCaseID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for ClientCase model
func (ClientCase) TableName() string {
	return "client_cases"
}

// AfterFind applies the Active default to rows stored before status existed
func (c *ClientCase) AfterFind(tx *gorm.DB) error {
	c.Status = NormalizeCaseStatus(c.Status)
	return nil
}

// ParalegalName returns the assigned paralegal or the unassigned bucket name
func (c *ClientCase) ParalegalName() string {
	if c.Paralegal == nil || strings.TrimSpace(*c.Paralegal) == "" {
		return ParalegalNotAssigned
	}
	return *c.Paralegal
}

// ParalegalNotAssigned is the filter bucket for cases without a paralegal
const ParalegalNotAssigned = "Not assigned"

// ClientCaseView is the read representation of a case with its latest note attached
type ClientCaseView struct {
	ClientCase
	LatestNote     *string    `json:"latestNote"`
	LatestNoteDate *time.Time `json:"latestNoteDate"`
}
