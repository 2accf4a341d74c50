package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"math"
	"reflect"
	"strconv"
	"strings"

	"client_case_tracker/models"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

var (
	validate   = newCaseValidator()
	textPolicy = bluemonday.StrictPolicy()
)

// fieldLabels are the human-readable names used in validation messages
var fieldLabels = map[string]string{
	"clientName":    "Client name",
	"caseType":      "Case type",
	"status":        "Status",
	"paralegal":     "Paralegal",
	"totalContract": "Total contract",
	"notes":         "Notes",
}

func newCaseValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("case_type", func(fl validator.FieldLevel) bool {
		_, ok := models.ParseCaseType(fl.Field().String())
		return ok
	})
	v.RegisterValidation("case_status", func(fl validator.FieldLevel) bool {
		_, ok := models.ParseCaseStatus(fl.Field().String())
		return ok
	})

	return v
}

// HasMarkup reports whether the strict policy would strip anything from s.
// Plain text, including a bare "<" or "&", comes back unchanged.
func HasMarkup(s string) bool {
	return html.UnescapeString(textPolicy.Sanitize(s)) != html.UnescapeString(s)
}

// ContractAmount accepts a JSON number, a numeric string, an empty string or null.
// Empty and null mean "not specified".
type ContractAmount struct {
	value   *float64
	invalid bool
}

// NewContractAmount returns a specified amount
func NewContractAmount(v float64) ContractAmount {
	return ContractAmount{value: &v}
}

// ParseContractAmount reads an amount from free text such as a form or CSV cell
func ParseContractAmount(raw string) ContractAmount {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ContractAmount{}
	}
	raw = strings.ReplaceAll(strings.TrimPrefix(raw, "$"), ",", "")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return ContractAmount{invalid: true}
	}
	return ContractAmount{value: &v}
}

// UnmarshalJSON implements json.Unmarshaler
func (a *ContractAmount) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*a = ContractAmount{}
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = ParseContractAmount(s)
		return nil
	}
	*a = ParseContractAmount(raw)
	return nil
}

// MarshalJSON implements json.Marshaler
func (a ContractAmount) MarshalJSON() ([]byte, error) {
	if a.value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*a.value)
}

// CaseInput is the raw, untrusted shape of a case submitted by a client
type CaseInput struct {
	ClientName    string         `json:"clientName" validate:"required,max=255"`
	CaseType      string         `json:"caseType" validate:"required,max=100,case_type"`
	Status        string         `json:"status" validate:"omitempty,case_status"`
	Paralegal     string         `json:"paralegal"`
	TotalContract ContractAmount `json:"totalContract" validate:"-"`
	Notes         *string        `json:"notes"`
}

// CaseFields is a validated case ready to be written to the store
type CaseFields struct {
	ClientName    string
	CaseType      models.CaseType
	Status        models.CaseStatus
	Paralegal     *string
	TotalContract *float64
	Notes         *string
}

// NoteText returns the trimmed legacy notes text, or "" when none was supplied
func (f CaseFields) NoteText() string {
	if f.Notes == nil {
		return ""
	}
	return strings.TrimSpace(*f.Notes)
}

// Parse validates the input against the case rules and the paralegal roster.
// All failing fields are reported together in one ValidationError.
func (in CaseInput) Parse(paralegals []string) (CaseFields, error) {
	in.ClientName = strings.TrimSpace(in.ClientName)
	in.CaseType = strings.TrimSpace(in.CaseType)
	in.Status = strings.TrimSpace(in.Status)

	verr := &ValidationError{}
	if err := validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return CaseFields{}, fmt.Errorf("failed to validate case input: %w", err)
		}
		for _, fe := range fieldErrs {
			verr.add(fe.Field(), fieldMessage(fe))
		}
	}

	if HasMarkup(in.ClientName) {
		verr.add("clientName", "Client name must not contain markup")
	}

	fields := CaseFields{ClientName: in.ClientName}
	if t, ok := models.ParseCaseType(in.CaseType); ok {
		fields.CaseType = t
	}
	if s, ok := models.ParseCaseStatus(in.Status); ok {
		fields.Status = s
	}

	paralegal, ok := matchParalegal(in.Paralegal, paralegals)
	if !ok {
		verr.add("paralegal", "Paralegal is not on the staff roster")
	}
	fields.Paralegal = paralegal

	switch {
	case in.TotalContract.invalid:
		verr.add("totalContract", "Total contract must be a number")
	case in.TotalContract.value != nil && *in.TotalContract.value <= 0:
		verr.add("totalContract", "Total contract must be a positive number")
	case in.TotalContract.value != nil:
		amount := *in.TotalContract.value
		fields.TotalContract = &amount
	}

	if in.Notes != nil {
		if notes := strings.TrimSpace(*in.Notes); notes != "" {
			if HasMarkup(notes) {
				verr.add("notes", "Notes must not contain markup")
			}
			fields.Notes = &notes
		}
	}

	if err := verr.errOrNil(); err != nil {
		return CaseFields{}, err
	}
	return fields, nil
}

// matchParalegal resolves a submitted name against the roster.
// Blank and "Not assigned" mean no paralegal.
func matchParalegal(name string, roster []string) (*string, bool) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, models.ParalegalNotAssigned) {
		return nil, true
	}
	for _, p := range roster {
		if strings.EqualFold(p, name) {
			matched := p
			return &matched, true
		}
	}
	return nil, false
}

func fieldMessage(fe validator.FieldError) string {
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = fe.Field()
	}
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "max":
		return label + " is too long"
	case "case_type":
		return label + " is not a recognized case type"
	case "case_status":
		return label + " must be Active, Completed or Other"
	default:
		return label + " is invalid"
	}
}
