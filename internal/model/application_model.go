package model

import (
	"time"
)

type ApplicationStatus string

const (
	StatusApplied            ApplicationStatus = "Applied"
	StatusPhoneScreen        ApplicationStatus = "Phone Screen"
	StatusTechnicalInterview ApplicationStatus = "Technical Interview"
	StatusFinalRound         ApplicationStatus = "Final Round"
	StatusOffer              ApplicationStatus = "Offer"
	StatusRejected           ApplicationStatus = "Rejected"

	// Brief-only vocabulary. Records written by the tracker never carry
	// these two values.
	StatusInterview ApplicationStatus = "Interview"
	StatusScreening ApplicationStatus = "Screening"
)

// ApplicationRecord is owned by the record layer; the pipeline only reads it
// and merges LatestAnalysis.
type ApplicationRecord struct {
	ID              string            `gorm:"type:varchar(64);primaryKey" json:"id"`
	UserID          string            `gorm:"type:varchar(128);index;not null" json:"userId"`
	Company         string            `gorm:"type:text" json:"company"`
	Role            string            `gorm:"type:text" json:"role"`
	Status          ApplicationStatus `gorm:"type:varchar(50);index" json:"status"`
	DateApplied     time.Time         `json:"dateApplied"`
	LastUpdated     *time.Time        `json:"lastUpdated,omitempty"`
	VisaSponsorship bool              `json:"visaSponsorship"`
	LatestAnalysis  *AnalysisResult   `gorm:"serializer:json;type:jsonb" json:"latestAnalysis,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

func (ApplicationRecord) TableName() string {
	return "applications"
}

// LastActivity is LastUpdated when set, otherwise DateApplied.
func (a *ApplicationRecord) LastActivity() time.Time {
	if a.LastUpdated != nil {
		return *a.LastUpdated
	}
	return a.DateApplied
}
