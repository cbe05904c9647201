package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/fadilmartias/job-intel/internal/model"
	"gorm.io/gorm"
)

var ErrAnalysisNotFound = errors.New("analysis not found")

type AnalysisRepository struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) *AnalysisRepository {
	return &AnalysisRepository{db}
}

func (r *AnalysisRepository) Append(ctx context.Context, entry *model.AnalysisLog) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to append analysis log: %w", err)
	}
	return nil
}

func (r *AnalysisRepository) FindByID(ctx context.Context, userID, id string) (*model.AnalysisLog, error) {
	var entry model.AnalysisLog
	err := r.db.WithContext(ctx).First(&entry, "id = ? AND user_id = ?", id, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAnalysisNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find analysis log: %w", err)
	}
	return &entry, nil
}
