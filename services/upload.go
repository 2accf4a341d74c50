package services

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
)

const (
	MaxImportSize = 10 * 1024 * 1024 // 10MB
)

// xlsxMagic is the zip local-file header every XLSX workbook starts with
var xlsxMagic = []byte("PK\x03\x04")

// ValidateImportUpload checks if the uploaded file is a CSV or XLSX file within size limits.
// A wrong extension yields ErrUnsupportedImportFormat; other problems a ValidationError on "file".
func ValidateImportUpload(fileHeader *multipart.FileHeader) error {
	// Check file size
	if fileHeader.Size > MaxImportSize {
		return NewValidationError("file", "File size exceeds maximum allowed size of 10MB")
	}

	// Check file extension
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext != ".csv" && ext != ".xlsx" {
		return ErrUnsupportedImportFormat
	}

	// Open file to check content
	file, err := fileHeader.Open()
	if err != nil {
		return fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	// Read first 512 bytes to detect content type
	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read file content: %w", err)
	}
	buffer = buffer[:n]

	if n == 0 {
		return NewValidationError("file", "File is empty")
	}

	switch ext {
	case ".xlsx":
		if !bytes.HasPrefix(buffer, xlsxMagic) {
			return NewValidationError("file", "File is not a valid Excel workbook")
		}
	case ".csv":
		// Binary content renamed to .csv
		if bytes.IndexByte(buffer, 0) >= 0 || bytes.HasPrefix(buffer, xlsxMagic) {
			return NewValidationError("file", "File is not a valid CSV file")
		}
	}

	return nil
}
