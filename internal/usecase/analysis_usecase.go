package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fadilmartias/job-intel/internal/config"
	"github.com/fadilmartias/job-intel/internal/model"
	"github.com/fadilmartias/job-intel/internal/repository"
	"github.com/fadilmartias/job-intel/internal/service"
	"github.com/fadilmartias/job-intel/internal/util"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"google.golang.org/genai"
)

const analysisFailedMessage = "Failed to analyze resume. Please try again."

type AnalysisLogStore interface {
	Append(ctx context.Context, entry *model.AnalysisLog) error
	FindByID(ctx context.Context, userID, id string) (*model.AnalysisLog, error)
}

type AnalysisMerger interface {
	MergeAnalysis(ctx context.Context, userID, applicationID string, result model.AnalysisResult) error
}

type AnalyzeInput struct {
	ResumeText     string
	JobDescription string
	ApplicationID  *string
}

type AnalysisUsecase struct {
	quota        repository.QuotaStore
	limits       *config.QuotaConfig
	completion   service.CompletionService
	logs         AnalysisLogStore
	applications AnalysisMerger
}

func NewAnalysisUsecase(quota repository.QuotaStore, limits *config.QuotaConfig, completion service.CompletionService, logs AnalysisLogStore, applications AnalysisMerger) *AnalysisUsecase {
	return &AnalysisUsecase{
		quota:        quota,
		limits:       limits,
		completion:   completion,
		logs:         logs,
		applications: applications,
	}
}

// Analyze scores a resume against a job description. One quota unit is spent
// before the provider is called, so failed completions still count.
func (uc *AnalysisUsecase) Analyze(ctx context.Context, userID string, in AnalyzeInput) (string, model.AnalysisResult, error) {
	var result model.AnalysisResult

	if strings.TrimSpace(in.ResumeText) == "" || strings.TrimSpace(in.JobDescription) == "" {
		return "", result, util.InvalidArgument("resumeText and jobDescription are required")
	}

	if err := checkQuota(ctx, uc.quota, userID, config.FeatureDailyAnalysis, uc.limits.Limit(config.FeatureDailyAnalysis)); err != nil {
		return "", result, err
	}

	raw, err := uc.completion.GenerateStructured(ctx, buildAnalysisPrompt(in.ResumeText, in.JobDescription), analysisSchema)
	if err != nil {
		slog.Error("analysis provider call failed",
			"user_id", userID,
			"class", service.ClassifyProviderError(err),
			"error", err,
		)
		return "", result, util.Internal(analysisFailedMessage, err)
	}

	result, err = ParseAnalysisResult(raw)
	if err != nil {
		slog.Error("analysis response could not be parsed",
			"user_id", userID,
			"raw_response", raw,
			"error", err,
		)
		return "", model.AnalysisResult{}, util.Internal(analysisFailedMessage, err)
	}

	entry := &model.AnalysisLog{
		ID:            uuid.New(),
		UserID:        userID,
		ApplicationID: in.ApplicationID,
		Result:        result,
	}
	if err := uc.logs.Append(ctx, entry); err != nil {
		slog.Error("failed to store analysis", "user_id", userID, "error", err)
		return "", model.AnalysisResult{}, util.Internal(analysisFailedMessage, err)
	}

	if in.ApplicationID != nil && *in.ApplicationID != "" {
		if err := uc.applications.MergeAnalysis(ctx, userID, *in.ApplicationID, result); err != nil {
			slog.Warn("failed to merge analysis into application",
				"user_id", userID,
				"application_id", *in.ApplicationID,
				"error", err,
			)
		}
	}

	slog.Info("analysis completed",
		"user_id", userID,
		"analysis_id", entry.ID.String(),
		"fit_score", result.FitScore,
	)
	return entry.ID.String(), result, nil
}

// GetAnalysis returns a stored analysis owned by userID. Lookups do not
// spend quota.
func (uc *AnalysisUsecase) GetAnalysis(ctx context.Context, userID, analysisID string) (*model.AnalysisLog, error) {
	if _, err := uuid.Parse(analysisID); err != nil {
		return nil, util.InvalidArgument("analysis id must be a UUID")
	}
	entry, err := uc.logs.FindByID(ctx, userID, analysisID)
	switch {
	case err == nil:
		return entry, nil
	case errors.Is(err, repository.ErrAnalysisNotFound):
		return nil, util.NotFound("Analysis not found.")
	default:
		slog.Error("failed to load analysis", "user_id", userID, "analysis_id", analysisID, "error", err)
		return nil, util.Internal("Failed to load analysis.", err)
	}
}

// checkQuota translates the ledger outcome into the caller-facing error.
func checkQuota(ctx context.Context, quota repository.QuotaStore, userID, feature string, limit int) error {
	err := quota.CheckAndIncrement(ctx, userID, feature, limit)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrQuotaExhausted):
		slog.Info("quota exhausted", "user_id", userID, "feature", feature, "limit", limit)
		return util.ResourceExhausted(fmt.Sprintf("Daily limit of %d reached. Try again tomorrow.", limit), err)
	default:
		slog.Error("quota check failed", "user_id", userID, "feature", feature, "error", err)
		return util.Internal("Could not verify usage quota.", err)
	}
}

func buildAnalysisPrompt(resume, jobDescription string) string {
	return fmt.Sprintf(`You are a senior technical recruiter and career strategist.
Compare the candidate's resume with the job description below and assess how well they fit.

Return your answer STRICTLY as JSON with this shape:
{
  "fitScore": <integer 0-100, overall alignment of the resume with the role>,
  "matchAnalysis": "<short paragraph on strengths and gaps>",
  "missingKeywords": ["<important skill or keyword from the job description absent in the resume>"],
  "suggestedImprovements": ["<concrete change to the resume for this role>"],
  "ghostingRisk": <integer 0-100, likelihood the application receives no response>,
  "tacticalSignal": "<one actionable next step for the candidate>",
  "urgencyLevel": <integer 1-5, how soon the candidate should act>
}

Resume:
%s

Job Description:
%s
`, resume, jobDescription)
}

var analysisSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"fitScore":      {Type: genai.TypeInteger, Minimum: genai.Ptr(0.0), Maximum: genai.Ptr(100.0)},
		"matchAnalysis": {Type: genai.TypeString},
		"missingKeywords": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
		"suggestedImprovements": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
		"ghostingRisk":   {Type: genai.TypeInteger, Minimum: genai.Ptr(0.0), Maximum: genai.Ptr(100.0)},
		"tacticalSignal": {Type: genai.TypeString},
		"urgencyLevel":   {Type: genai.TypeInteger, Minimum: genai.Ptr(1.0), Maximum: genai.Ptr(5.0)},
	},
	Required: []string{
		"fitScore", "matchAnalysis", "missingKeywords", "suggestedImprovements",
		"ghostingRisk", "tacticalSignal", "urgencyLevel",
	},
	PropertyOrdering: []string{
		"fitScore", "matchAnalysis", "missingKeywords", "suggestedImprovements",
		"ghostingRisk", "tacticalSignal", "urgencyLevel",
	},
}

// ParseAnalysisResult strips code fences and checks the document against
// the analysis schema, including value ranges.
func ParseAnalysisResult(raw string) (model.AnalysisResult, error) {
	var result model.AnalysisResult

	text := util.StripCodeFence(raw)
	if !gjson.Valid(text) {
		return result, fmt.Errorf("response is not valid JSON")
	}
	doc := gjson.Parse(text)
	if !doc.IsObject() {
		return result, fmt.Errorf("response is not a JSON object")
	}

	ranges := []struct {
		field    string
		min, max int64
	}{
		{"fitScore", 0, 100},
		{"ghostingRisk", 0, 100},
		{"urgencyLevel", 1, 5},
	}
	for _, r := range ranges {
		v := doc.Get(r.field)
		if v.Type != gjson.Number {
			return result, fmt.Errorf("%s must be a number", r.field)
		}
		// 85.0 and 8.5e1 are integral but will not decode into an int
		if strings.ContainsAny(v.Raw, ".eE") {
			return result, fmt.Errorf("%s must be an integer literal: %s", r.field, v.Raw)
		}
		if v.Int() < r.min || v.Int() > r.max {
			return result, fmt.Errorf("%s out of range [%d,%d]: %d", r.field, r.min, r.max, v.Int())
		}
	}
	for _, field := range []string{"matchAnalysis", "tacticalSignal"} {
		if doc.Get(field).Type != gjson.String {
			return result, fmt.Errorf("%s must be a string", field)
		}
	}
	for _, field := range []string{"missingKeywords", "suggestedImprovements"} {
		if !doc.Get(field).IsArray() {
			return result, fmt.Errorf("%s must be an array", field)
		}
	}

	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return model.AnalysisResult{}, fmt.Errorf("decode analysis: %w", err)
	}
	return result, nil
}
