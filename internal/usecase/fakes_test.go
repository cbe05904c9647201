package usecase

import (
	"context"
	"sync"

	"github.com/fadilmartias/job-intel/internal/config"
	"github.com/fadilmartias/job-intel/internal/model"
	"github.com/fadilmartias/job-intel/internal/repository"
	"github.com/fadilmartias/job-intel/internal/service"
	"google.golang.org/genai"
)

func testLimits() *config.QuotaConfig {
	return &config.QuotaConfig{
		Backend: config.QuotaBackendMemory,
		Limits: map[string]int{
			config.FeatureDailyAnalysis: 5,
			config.FeatureDailySearch:   20,
		},
	}
}

type fakeCompletion struct {
	mu      sync.Mutex
	text    string
	err     error
	calls   int
	prompts []string
}

func (f *fakeCompletion) GenerateStructured(_ context.Context, prompt string, _ *genai.Schema) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.prompts = append(f.prompts, prompt)
	return f.text, f.err
}

type fakeLogStore struct {
	mu      sync.Mutex
	entries []*model.AnalysisLog
	err     error
}

func (f *fakeLogStore) Append(_ context.Context, entry *model.AnalysisLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeLogStore) FindByID(_ context.Context, userID, id string) (*model.AnalysisLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, e := range f.entries {
		if e.ID.String() == id && e.UserID == userID {
			return e, nil
		}
	}
	return nil, repository.ErrAnalysisNotFound
}

type mergeCall struct {
	userID, applicationID string
	result                model.AnalysisResult
}

type fakeMerger struct {
	calls []mergeCall
	err   error
}

func (f *fakeMerger) MergeAnalysis(_ context.Context, userID, applicationID string, result model.AnalysisResult) error {
	f.calls = append(f.calls, mergeCall{userID, applicationID, result})
	return f.err
}

type fakeSearcher struct {
	result  *service.SearchResult
	err     error
	panics  bool
	queries []service.SearchParams
}

func (f *fakeSearcher) Search(_ context.Context, params service.SearchParams) (*service.SearchResult, error) {
	f.queries = append(f.queries, params)
	if f.panics {
		panic("search exploded")
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.result == nil {
		return &service.SearchResult{}, nil
	}
	return f.result, nil
}

type fakePages struct {
	title string
	err   error
	urls  []string
}

func (f *fakePages) FetchTitle(_ context.Context, url string) (string, error) {
	f.urls = append(f.urls, url)
	return f.title, f.err
}

type fakeApplications struct {
	records  []model.ApplicationRecord
	counts   map[model.ApplicationStatus]int
	err      error
	statuses []model.ApplicationStatus
}

func (f *fakeApplications) ListByStatuses(_ context.Context, _ string, statuses []model.ApplicationStatus) ([]model.ApplicationRecord, error) {
	f.statuses = statuses
	if f.err != nil {
		return nil, f.err
	}
	allowed := make(map[model.ApplicationStatus]bool, len(statuses))
	for _, s := range statuses {
		allowed[s] = true
	}
	var out []model.ApplicationRecord
	for _, r := range f.records {
		if allowed[r.Status] {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeApplications) CountByStatuses(_ context.Context, _ string, statuses []model.ApplicationStatus) (map[model.ApplicationStatus]int, error) {
	counts := map[model.ApplicationStatus]int{}
	for _, s := range statuses {
		if n, ok := f.counts[s]; ok {
			counts[s] = n
		}
	}
	return counts, nil
}
