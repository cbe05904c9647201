package repository

import (
	"fmt"

	"github.com/fadilmartias/job-intel/internal/model"
	"gorm.io/gorm"
)

// Migrate creates or updates the tables the pipeline reads and writes.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.ApplicationRecord{}, &model.AnalysisLog{}, &model.QuotaCounter{}); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}
