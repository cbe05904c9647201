package handler

import (
	"context"

	"github.com/fadilmartias/job-intel/internal/dto"
	"github.com/fadilmartias/job-intel/internal/model"
	"github.com/fadilmartias/job-intel/internal/service"
	"github.com/fadilmartias/job-intel/internal/usecase"
)

type Analyzer interface {
	Analyze(ctx context.Context, userID string, in usecase.AnalyzeInput) (string, model.AnalysisResult, error)
	GetAnalysis(ctx context.Context, userID, analysisID string) (*model.AnalysisLog, error)
}

type Ingester interface {
	Ingest(ctx context.Context, userID, rawURL string) dto.IngestedJobDraft
}

type Searcher interface {
	Search(ctx context.Context, userID string, params service.SearchParams) (*service.SearchResult, error)
}

type BriefGenerator interface {
	Generate(ctx context.Context, userID string) (dto.TacticalBrief, error)
}
