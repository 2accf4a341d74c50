package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ErrUnsupportedImportFormat is returned for files that are neither CSV nor XLSX
var ErrUnsupportedImportFormat = errors.New("unsupported import format: use .csv or .xlsx")

// Import column order, after a header row
const (
	importColClientName = iota
	importColCaseType
	importColStatus
	importColNotes
	importColTotalContract
	importColParalegal
)

// ImportResult contains the summary of the import process
type ImportResult struct {
	TotalProcessed int      `json:"totalProcessed"`
	SuccessCount   int      `json:"successCount"`
	FailedCount    int      `json:"failedCount"`
	Errors         []string `json:"errors"`
}

// ImportCases reads cases from a CSV or XLSX file, chosen by the file name's extension
func ImportCases(db *gorm.DB, filename string, file io.Reader, paralegals []string) (*ImportResult, error) {
	var (
		rows [][]string
		err  error
	)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		rows, err = readCSVRows(file)
	case ".xlsx":
		rows, err = readExcelRows(file)
	default:
		return nil, ErrUnsupportedImportFormat
	}
	if err != nil {
		return nil, err
	}

	return importRows(db, rows, paralegals), nil
}

func readCSVRows(file io.Reader) ([][]string, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return rows, nil
}

func readExcelRows(file io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}

// importRows creates one case per data row. The first row is a header.
// Invalid rows are reported and skipped; they never stop the batch.
func importRows(db *gorm.DB, rows [][]string, paralegals []string) *ImportResult {
	result := &ImportResult{Errors: []string{}}
	if len(rows) <= 1 {
		result.Errors = append(result.Errors, "File must contain a header row and at least one data row")
		return result
	}

	for i, row := range rows[1:] {
		rowNum := i + 2
		if isBlankRow(row) {
			continue
		}
		result.TotalProcessed++

		notes := cell(row, importColNotes)
		input := CaseInput{
			ClientName:    cell(row, importColClientName),
			CaseType:      cell(row, importColCaseType),
			Status:        cell(row, importColStatus),
			Paralegal:     cell(row, importColParalegal),
			TotalContract: ParseContractAmount(cell(row, importColTotalContract)),
			Notes:         &notes,
		}

		fields, err := input.Parse(paralegals)
		if err != nil {
			result.FailedCount++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %s", rowNum, describeImportError(err)))
			continue
		}

		if _, err := CreateClientCase(db, fields); err != nil {
			result.FailedCount++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: could not save case", rowNum))
			log.Printf("[IMPORT] Row %d failed: %v", rowNum, err)
			continue
		}
		result.SuccessCount++
	}

	log.Printf("[IMPORT] Processed %d rows: %d created, %d failed", result.TotalProcessed, result.SuccessCount, result.FailedCount)
	return result
}

func describeImportError(err error) string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Message()
	}
	return err.Error()
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
