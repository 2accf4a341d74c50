package main

import (
	"client_case_tracker/config"
	"client_case_tracker/db"
	"client_case_tracker/services"
	"context"
	"log"
	"time"
)

// Writes an XLSX snapshot of every case to R2, or to EXPORT_DIR when R2 is not configured
func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Connect(cfg); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	cases, err := services.ListClientCases(db.DB)
	if err != nil {
		log.Fatalf("Failed to load cases: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	store := services.NewStorage(ctx, cfg)
	snapshot, err := services.StoreExport(ctx, store, cases, time.Now(), time.Hour)
	if err != nil {
		log.Fatalf("Failed to export cases: %v", err)
	}

	log.Printf("Exported %d cases to %s (%d bytes)", snapshot.CaseCount, snapshot.Key, snapshot.FileSize)
	if snapshot.DownloadURL != "" {
		log.Printf("Download link (valid 1h): %s", snapshot.DownloadURL)
	}
}
