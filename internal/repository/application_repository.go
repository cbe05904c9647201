package repository

import (
	"context"
	"fmt"

	"github.com/fadilmartias/job-intel/internal/model"
	"gorm.io/gorm"
)

type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db}
}

func (r *ApplicationRepository) ListByStatuses(ctx context.Context, userID string, statuses []model.ApplicationStatus) ([]model.ApplicationRecord, error) {
	var records []model.ApplicationRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status IN ?", userID, statuses).
		Order("date_applied ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return records, nil
}

// CountByStatuses reports how many of the user's records sit in each status.
func (r *ApplicationRepository) CountByStatuses(ctx context.Context, userID string, statuses []model.ApplicationStatus) (map[model.ApplicationStatus]int, error) {
	var rows []struct {
		Status model.ApplicationStatus
		Total  int
	}
	err := r.db.WithContext(ctx).
		Model(&model.ApplicationRecord{}).
		Select("status, COUNT(*) AS total").
		Where("user_id = ? AND status IN ?", userID, statuses).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count applications: %w", err)
	}
	counts := make(map[model.ApplicationStatus]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

// MergeAnalysis attaches result as the record's latest analysis. Only records
// owned by userID are touched.
func (r *ApplicationRepository) MergeAnalysis(ctx context.Context, userID, applicationID string, result model.AnalysisResult) error {
	res := r.db.WithContext(ctx).
		Model(&model.ApplicationRecord{}).
		Where("id = ? AND user_id = ?", applicationID, userID).
		Select("latest_analysis").
		Updates(&model.ApplicationRecord{LatestAnalysis: &result})
	if res.Error != nil {
		return fmt.Errorf("failed to merge analysis: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("application %s not found", applicationID)
	}
	return nil
}
