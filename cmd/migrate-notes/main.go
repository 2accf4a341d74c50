package main

import (
	"client_case_tracker/config"
	"client_case_tracker/db"
	"client_case_tracker/models"
	"client_case_tracker/services"
	"log"
)

func main() {
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

	log.Println("Backfilling missing case statuses...")
	updated, err := services.BackfillCaseStatus(db.DB)
	if err != nil {
		log.Fatalf("Failed to backfill status: %v", err)
	}
	log.Printf("Set status on %d cases", updated)

	log.Println("Copying legacy case notes into the note history...")
	result, err := services.MigrateLegacyNotes(db.DB)
	if err != nil {
		log.Fatalf("Failed to migrate notes: %v", err)
	}

	log.Printf("Scanned %d cases: %d notes migrated, %d already present",
		result.CasesScanned, result.Migrated, result.Skipped)
	log.Println("Note migration completed successfully!")
}
