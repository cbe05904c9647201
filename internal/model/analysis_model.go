package model

import (
	"time"

	"github.com/google/uuid"
)

type AnalysisResult struct {
	FitScore              int      `json:"fitScore"`
	MatchAnalysis         string   `json:"matchAnalysis"`
	MissingKeywords       []string `json:"missingKeywords"`
	SuggestedImprovements []string `json:"suggestedImprovements"`
	GhostingRisk          int      `json:"ghostingRisk"`
	TacticalSignal        string   `json:"tacticalSignal"`
	UrgencyLevel          int      `json:"urgencyLevel"`
}

// AnalysisLog is the append-only record of every successful analysis.
type AnalysisLog struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        string         `gorm:"type:varchar(128);index;not null" json:"userId"`
	ApplicationID *string        `gorm:"type:varchar(64);index" json:"applicationId,omitempty"`
	Result        AnalysisResult `gorm:"serializer:json;type:jsonb" json:"result"`
	CreatedAt     time.Time      `json:"createdAt"`
}

func (AnalysisLog) TableName() string {
	return "analysis_logs"
}
