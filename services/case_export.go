package services

import (
	"bytes"
	"fmt"
	"time"

	"client_case_tracker/models"

	"github.com/xuri/excelize/v2"
)

const (
	exportSheetName   = "Cases"
	exportDateLayout  = "2006-01-02 15:04"
	XLSXContentType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportFilePattern = "client-cases-%s.xlsx"
)

var exportHeaders = []string{
	"ID", "Client Name", "Case Type", "Status", "Paralegal", "Total Contract",
	"Latest Note", "Latest Note Date", "Created At", "Updated At",
}

// ExportFileName returns the download name for an export taken at the given time
func ExportFileName(at time.Time) string {
	return fmt.Sprintf(exportFilePattern, at.Format("20060102-150405"))
}

// ExportCasesToExcel renders projected cases as a single-sheet workbook
func ExportCasesToExcel(cases []models.ClientCaseView) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", exportSheetName)

	for i, h := range exportHeaders {
		cellName, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(exportSheetName, cellName, h)
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	lastHeader, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	f.SetCellStyle(exportSheetName, "A1", lastHeader, headerStyle)

	for r, c := range cases {
		row := []interface{}{
			c.ID,
			c.ClientName,
			string(c.CaseType),
			string(models.NormalizeCaseStatus(c.Status)),
			c.ParalegalName(),
			nil,
			deref(c.LatestNote),
			"",
			c.CreatedAt.Format(exportDateLayout),
			c.UpdatedAt.Format(exportDateLayout),
		}
		if c.TotalContract != nil {
			row[5] = *c.TotalContract
		}
		if c.LatestNoteDate != nil {
			row[7] = c.LatestNoteDate.Format(exportDateLayout)
		}

		start, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(exportSheetName, start, &row); err != nil {
			return nil, fmt.Errorf("failed to write row for case %d: %w", c.ID, err)
		}
	}

	f.SetColWidth(exportSheetName, "B", "B", 30)
	f.SetColWidth(exportSheetName, "C", "E", 22)
	f.SetColWidth(exportSheetName, "G", "G", 60)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, nil
}
