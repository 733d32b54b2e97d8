package database

import (
	"fmt"

	"gorm.io/gorm"
)

// RunMigrations executes all database migrations
func RunMigrations(db *gorm.DB) error {
	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}

// createIndexes creates database indexes
func createIndexes(db *gorm.DB) error {
	// Dashboard listing is always newest first
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_cases_submitted_at
		ON cases(submitted_at DESC)
	`).Error; err != nil {
		return err
	}

	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_cases_status
		ON cases(status)
	`).Error; err != nil {
		return err
	}

	return nil
}
