package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/fadilmartias/job-intel/internal/config"
	"github.com/fadilmartias/job-intel/internal/repository"
	"github.com/fadilmartias/job-intel/internal/service"
	"github.com/fadilmartias/job-intel/internal/util"
)

type SearchUsecase struct {
	quota    repository.QuotaStore
	limits   *config.QuotaConfig
	searcher service.JobSearcher
}

func NewSearchUsecase(quota repository.QuotaStore, limits *config.QuotaConfig, searcher service.JobSearcher) *SearchUsecase {
	return &SearchUsecase{quota: quota, limits: limits, searcher: searcher}
}

// Search runs a user-facing job search against the daily search quota.
func (uc *SearchUsecase) Search(ctx context.Context, userID string, params service.SearchParams) (*service.SearchResult, error) {
	if strings.TrimSpace(params.Query) == "" {
		return nil, util.InvalidArgument("query is required")
	}
	if params.Page < 1 {
		params.Page = 1
	}
	params.NumPages = 1

	if err := checkQuota(ctx, uc.quota, userID, config.FeatureDailySearch, uc.limits.Limit(config.FeatureDailySearch)); err != nil {
		return nil, err
	}

	result, err := uc.searcher.Search(ctx, params)
	if err != nil {
		attrs := []any{"user_id", userID, "query", params.Query, "page", params.Page, "error", err}
		var upstream *service.UpstreamError
		if errors.As(err, &upstream) {
			attrs = append(attrs, "upstream_status", upstream.StatusCode, "upstream_body", upstream.Body)
		}
		slog.Error("job search failed", attrs...)
		return nil, util.Internal("Job search is unavailable right now.", err)
	}
	return result, nil
}
