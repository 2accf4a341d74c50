package services

import (
	"bytes"
	"strings"
	"testing"

	"client_case_tracker/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestImportCasesCSV(t *testing.T) {
	db := setupTestDB(t)

	csvData := strings.Join([]string{
		"Client Name,Case Type,Status,Notes,Total Contract,Paralegal",
		`Jane Doe,Green Card,Active,Filed I-485,"$5,000",Andrea`,
		"John Roe,TN Visa,,,,",
		",DACA,,,,",
		"Bad Type,Moon Visa,,,,",
		",,,,,",
		"Ann Lee,Citizenship,Completed,,abc,",
	}, "\n")

	result, err := ImportCases(db, "cases.csv", strings.NewReader(csvData), testParalegals)
	require.NoError(t, err)

	assert.Equal(t, 5, result.TotalProcessed)
	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 3, result.FailedCount)
	require.Len(t, result.Errors, 3)
	assert.Equal(t, "Row 4: Client name is required", result.Errors[0])
	assert.True(t, strings.HasPrefix(result.Errors[1], "Row 5: "))
	assert.Equal(t, "Row 7: Total contract must be a number", result.Errors[2])

	cases, err := ListClientCases(db)
	require.NoError(t, err)
	require.Len(t, cases, 2)

	var jane models.ClientCaseView
	for _, c := range cases {
		if c.ClientName == "Jane Doe" {
			jane = c
		}
	}
	require.NotNil(t, jane.TotalContract)
	assert.Equal(t, 5000.0, *jane.TotalContract)
	assert.Equal(t, "Andrea", *jane.Paralegal)
	require.NotNil(t, jane.LatestNote)
	assert.Equal(t, "Filed I-485", *jane.LatestNote)
}

func TestImportCasesExcel(t *testing.T) {
	db := setupTestDB(t)

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"Client Name", "Case Type", "Status", "Notes", "Total Contract", "Paralegal"},
		{"Maria Garcia", "Work Visa", "Active", "", 1200, "carolina"},
	}
	for i, row := range rows {
		cellName, _ := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, f.SetSheetRow(sheet, cellName, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	f.Close()

	result, err := ImportCases(db, "cases.XLSX", bytes.NewReader(buf.Bytes()), testParalegals)
	require.NoError(t, err)
	assert.Equal(t, 1, result.SuccessCount)
	assert.Empty(t, result.Errors)

	cases, err := ListClientCases(db)
	require.NoError(t, err)
	require.Len(t, cases, 1)
	assert.Equal(t, models.CaseTypeWorkVisa, cases[0].CaseType)
	assert.Equal(t, "Carolina", *cases[0].Paralegal)
	assert.Nil(t, cases[0].LatestNote)
}

func TestImportCasesRejectsOtherFormats(t *testing.T) {
	db := setupTestDB(t)

	_, err := ImportCases(db, "cases.pdf", strings.NewReader("x"), testParalegals)
	assert.ErrorIs(t, err, ErrUnsupportedImportFormat)
}

func TestImportCasesHeaderOnly(t *testing.T) {
	db := setupTestDB(t)

	result, err := ImportCases(db, "cases.csv", strings.NewReader("Client Name,Case Type\n"), testParalegals)
	require.NoError(t, err)
	assert.Equal(t, 0, result.TotalProcessed)
	assert.Len(t, result.Errors, 1)
}
