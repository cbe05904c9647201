package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/fadilmartias/job-intel/internal/dto"
	"github.com/fadilmartias/job-intel/internal/service"
	"github.com/fadilmartias/job-intel/internal/util"
)

const (
	unknownCompany     = "Unknown (New Listing)"
	unindexedNote      = "This listing is not indexed by our job search provider yet. Please review and complete the details manually."
	errorDraftNote     = "We could not read this listing automatically. Please fill in the details manually."
	errorDraftCompany  = "Unknown"
	errorDraftRoleName = "Unknown Role"
)

// queryStrategy turns a job URL into a search string. ok is false when the
// strategy found no usable signal.
type queryStrategy struct {
	source string
	run    func(ctx context.Context, u *url.URL) (query string, ok bool)
}

type IngestionUsecase struct {
	pages      service.PageTitleFetcher
	searcher   service.JobSearcher
	strategies []queryStrategy
}

func NewIngestionUsecase(pages service.PageTitleFetcher, searcher service.JobSearcher) *IngestionUsecase {
	uc := &IngestionUsecase{pages: pages, searcher: searcher}
	uc.strategies = []queryStrategy{
		{source: dto.SourcePageTitle, run: uc.queryFromPageTitle},
		{source: dto.SourceURLSlug, run: queryFromSlug},
	}
	return uc
}

// Ingest resolves rawURL into a draft for userID. It never fails: problems
// are encoded in the draft's IsFallback/IsError flags.
func (uc *IngestionUsecase) Ingest(ctx context.Context, userID, rawURL string) (draft dto.IngestedJobDraft) {
	log := slog.With("user_id", userID, "url", rawURL)
	defer func() {
		if r := recover(); r != nil {
			log.Error("ingestion panicked", "panic", r)
			draft = errorDraft(rawURL, fmt.Errorf("unexpected failure: %v", r))
		}
	}()

	draft, err := uc.resolve(ctx, log, rawURL)
	if err != nil {
		log.Warn("ingestion failed, returning minimal draft", "error", err)
		return errorDraft(rawURL, err)
	}
	return draft
}

func (uc *IngestionUsecase) resolve(ctx context.Context, log *slog.Logger, rawURL string) (dto.IngestedJobDraft, error) {
	u, err := util.NormalizeURL(rawURL)
	if err != nil {
		return dto.IngestedJobDraft{}, err
	}

	query, source := uc.bestQuery(ctx, u)
	if query == "" {
		return dto.IngestedJobDraft{}, fmt.Errorf("no usable search query in %s", u.String())
	}
	result, err := uc.searcher.Search(ctx, service.SearchParams{Query: query, Page: 1, NumPages: 1})
	if err != nil {
		return dto.IngestedJobDraft{}, fmt.Errorf("search %q: %w", query, err)
	}

	if len(result.Listings) == 0 {
		log.Info("no listing found, returning degraded draft", "query", query)
		return dto.IngestedJobDraft{
			Company:     unknownCompany,
			Role:        query,
			Description: unindexedNote,
			ApplyLink:   u.String(),
			IsFallback:  true,
			Source:      source,
		}, nil
	}

	top := result.Listings[0]
	applyLink := top.ApplyLink
	if applyLink == "" {
		applyLink = u.String()
	}
	return dto.IngestedJobDraft{
		Company:     top.EmployerName,
		Role:        top.JobTitle,
		Description: top.JobDescription,
		ApplyLink:   applyLink,
		Location:    top.Location(),
		Logo:        top.EmployerLogo,
		PostedAt:    top.PostedAt,
		Source:      source,
	}, nil
}

// bestQuery folds over the strategies and returns the first usable query.
// The site name is the terminal default.
func (uc *IngestionUsecase) bestQuery(ctx context.Context, u *url.URL) (string, string) {
	for _, s := range uc.strategies {
		if q, ok := s.run(ctx, u); ok {
			return q, s.source
		}
	}
	return util.HostLabel(u.Hostname()), dto.SourceURLSlug
}

func (uc *IngestionUsecase) queryFromPageTitle(ctx context.Context, u *url.URL) (string, bool) {
	title, err := uc.pages.FetchTitle(ctx, u.String())
	if err != nil {
		slog.Debug("page title unavailable", "url", u.String(), "error", err)
		return "", false
	}
	return util.CleanJobTitle(title)
}

func queryFromSlug(_ context.Context, u *url.URL) (string, bool) {
	q := util.SlugQuery(u)
	return q, q != ""
}

// errorDraft is built from the URL alone and must not fail itself.
func errorDraft(rawURL string, cause error) dto.IngestedJobDraft {
	return dto.IngestedJobDraft{
		Company:     errorDraftCompany,
		Role:        safeSlugRole(rawURL),
		Description: errorDraftNote,
		ApplyLink:   strings.TrimSpace(rawURL),
		IsFallback:  true,
		IsError:     true,
		Error:       cause.Error(),
		Source:      dto.SourceURLSlug,
	}
}

func safeSlugRole(rawURL string) (role string) {
	defer func() {
		if recover() != nil {
			role = errorDraftRoleName
		}
	}()
	u, err := util.NormalizeURL(rawURL)
	if err != nil {
		return errorDraftRoleName
	}
	if q := util.SlugQuery(u); q != "" {
		return q
	}
	return errorDraftRoleName
}
