package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fadilmartias/job-intel/internal/config"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

type SearchParams struct {
	Query          string
	Page           int
	NumPages       int
	DatePosted     string
	RemoteJobsOnly bool
}

// JobListing is the subset of a JSearch result the pipeline maps into drafts.
type JobListing struct {
	EmployerName   string `json:"employerName"`
	EmployerLogo   string `json:"employerLogo,omitempty"`
	JobTitle       string `json:"jobTitle"`
	JobDescription string `json:"jobDescription"`
	ApplyLink      string `json:"applyLink"`
	City           string `json:"city,omitempty"`
	State          string `json:"state,omitempty"`
	Country        string `json:"country,omitempty"`
	PostedAt       string `json:"postedAt,omitempty"`
}

// Location joins the non-empty parts as "city, state, country".
func (l JobListing) Location() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{l.City, l.State, l.Country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

type SearchResult struct {
	// Raw is the upstream payload, passed through to API callers untouched.
	Raw      json.RawMessage
	Listings []JobListing
}

// UpstreamError is a non-2xx answer from the search provider.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("job search upstream returned %d: %s", e.StatusCode, e.Body)
}

type JobSearcher interface {
	Search(ctx context.Context, params SearchParams) (*SearchResult, error)
}

type JobSearchService struct {
	client *resty.Client
	apiKey string
	host   string
}

func NewJobSearchService(cfg *config.JSearchConfig) *JobSearchService {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(15 * time.Second).
		SetHeader("Accept", "application/json")
	return &JobSearchService{
		client: client,
		apiKey: cfg.APIKey,
		host:   cfg.Host,
	}
}

func (s *JobSearchService) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	if strings.TrimSpace(params.Query) == "" {
		return nil, fmt.Errorf("search query cannot be empty")
	}
	if params.Page < 1 {
		params.Page = 1
	}
	if params.NumPages < 1 {
		params.NumPages = 1
	}

	query := map[string]string{
		"query":     params.Query,
		"page":      strconv.Itoa(params.Page),
		"num_pages": strconv.Itoa(params.NumPages),
	}
	if params.DatePosted != "" {
		query["date_posted"] = params.DatePosted
	}
	if params.RemoteJobsOnly {
		query["remote_jobs_only"] = "true"
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("X-RapidAPI-Key", s.apiKey).
		SetHeader("X-RapidAPI-Host", s.host).
		SetQueryParams(query).
		Get("/search")
	if err != nil {
		return nil, fmt.Errorf("job search request failed: %w", err)
	}
	if resp.IsError() {
		return nil, &UpstreamError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}

	body := resp.Body()
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("job search returned invalid JSON")
	}

	return &SearchResult{
		Raw:      json.RawMessage(body),
		Listings: parseListings(body),
	}, nil
}

func parseListings(body []byte) []JobListing {
	data := gjson.GetBytes(body, "data")
	listings := make([]JobListing, 0, len(data.Array()))
	data.ForEach(func(_, job gjson.Result) bool {
		listings = append(listings, JobListing{
			EmployerName:   job.Get("employer_name").String(),
			EmployerLogo:   job.Get("employer_logo").String(),
			JobTitle:       job.Get("job_title").String(),
			JobDescription: job.Get("job_description").String(),
			ApplyLink:      job.Get("job_apply_link").String(),
			City:           job.Get("job_city").String(),
			State:          job.Get("job_state").String(),
			Country:        job.Get("job_country").String(),
			PostedAt:       job.Get("job_posted_at_datetime_utc").String(),
		})
		return true
	})
	return listings
}
