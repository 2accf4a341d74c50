package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"client_case_tracker/db"
	"client_case_tracker/middleware"
	"client_case_tracker/services"

	"github.com/labstack/echo/v4"
)

// ExportClientCasesHandler downloads every case as an XLSX workbook
func ExportClientCasesHandler(c echo.Context) error {
	cases, err := services.ListClientCases(db.DB)
	if err != nil {
		return respondError(c, err)
	}

	buf, err := services.ExportCasesToExcel(cases)
	if err != nil {
		return respondError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+services.ExportFileName(time.Now())+`"`)
	return c.Blob(http.StatusOK, services.XLSXContentType, buf.Bytes())
}

// ImportClientCasesHandler creates cases from an uploaded CSV or XLSX file
func ImportClientCasesHandler(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return respondFailure(c, http.StatusBadRequest, "File is required")
	}
	if err := services.ValidateImportUpload(fileHeader); err != nil {
		if errors.Is(err, services.ErrUnsupportedImportFormat) {
			return respondFailure(c, http.StatusBadRequest, "Unsupported file type. Use .csv or .xlsx")
		}
		return respondError(c, err)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer file.Close()

	result, err := services.ImportCases(db.DB, fileHeader.Filename, file, middleware.GetConfig(c).Paralegals)
	if err != nil {
		log.Printf("[IMPORT] Failed to read %s: %v", fileHeader.Filename, err)
		return respondFailure(c, http.StatusBadRequest, "Could not read the uploaded file")
	}

	status := http.StatusOK
	if result.SuccessCount > 0 {
		status = http.StatusCreated
	}
	return respondOK(c, status, result)
}
