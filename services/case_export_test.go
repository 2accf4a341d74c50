package services

import (
	"testing"
	"time"

	"client_case_tracker/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportCasesToExcel(t *testing.T) {
	noteDate := time.Date(2024, 3, 2, 10, 15, 0, 0, time.UTC)
	cases := []models.ClientCaseView{
		{
			ClientCase: models.ClientCase{
				ID:            7,
				ClientName:    "Jane Doe",
				CaseType:      models.CaseTypeGreenCard,
				Status:        models.CaseStatusActive,
				Paralegal:     stringPtr("Andrea"),
				TotalContract: floatPtr(5000),
				CreatedAt:     noteDate,
				UpdatedAt:     noteDate,
			},
			LatestNote:     stringPtr("Filed I-485"),
			LatestNoteDate: &noteDate,
		},
		{
			ClientCase: models.ClientCase{
				ID:         8,
				ClientName: "John Roe",
				CaseType:   models.CaseTypeDACA,
			},
		},
	}

	buf, err := ExportCasesToExcel(cases)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{exportSheetName}, f.GetSheetList())

	rows, err := f.GetRows(exportSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, exportHeaders, rows[0])

	assert.Equal(t, "7", rows[1][0])
	assert.Equal(t, "Jane Doe", rows[1][1])
	assert.Equal(t, "Green Card", rows[1][2])
	assert.Equal(t, "Andrea", rows[1][4])
	assert.Equal(t, "5000", rows[1][5])
	assert.Equal(t, "Filed I-485", rows[1][6])
	assert.Equal(t, "2024-03-02 10:15", rows[1][7])

	assert.Equal(t, "Active", rows[2][3])
	assert.Equal(t, models.ParalegalNotAssigned, rows[2][4])
}

func TestExportFileName(t *testing.T) {
	at := time.Date(2024, 12, 31, 23, 59, 1, 0, time.UTC)
	assert.Equal(t, "client-cases-20241231-235901.xlsx", ExportFileName(at))
}
