package main

import (
	"client_case_tracker/config"
	"client_case_tracker/db"
	"client_case_tracker/models"
	"client_case_tracker/services"
	"flag"
	"log"
	"os"
	"path/filepath"
)

func main() {
	path := flag.String("file", "", "CSV or XLSX file to import")
	flag.Parse()

	if *path == "" {
		log.Fatal("Usage: import-cases -file cases.xlsx")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Connect(cfg); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(&models.ClientCase{}, &models.CaseNote{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	file, err := os.Open(*path)
	if err != nil {
		log.Fatalf("Failed to open %s: %v", *path, err)
	}
	defer file.Close()

	result, err := services.ImportCases(db.DB, filepath.Base(*path), file, cfg.Paralegals)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	for _, line := range result.Errors {
		log.Printf("[WARNING] %s", line)
	}
	log.Printf("Processed %d rows: %d imported, %d failed",
		result.TotalProcessed, result.SuccessCount, result.FailedCount)
}
