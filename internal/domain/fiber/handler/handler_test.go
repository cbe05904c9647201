package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fadilmartias/job-intel/internal/config"
	"github.com/fadilmartias/job-intel/internal/dto"
	"github.com/fadilmartias/job-intel/internal/middleware"
	"github.com/fadilmartias/job-intel/internal/model"
	"github.com/fadilmartias/job-intel/internal/repository"
	"github.com/fadilmartias/job-intel/internal/service"
	"github.com/fadilmartias/job-intel/internal/usecase"
	"github.com/fadilmartias/job-intel/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAuth = &config.AuthConfig{JWTSecret: "handler-secret"}

type fakeAnalyzer struct {
	inputs []usecase.AnalyzeInput
	users  []string
	err    error
}

func (f *fakeAnalyzer) Analyze(_ context.Context, userID string, in usecase.AnalyzeInput) (string, model.AnalysisResult, error) {
	f.users = append(f.users, userID)
	f.inputs = append(f.inputs, in)
	if f.err != nil {
		return "", model.AnalysisResult{}, f.err
	}
	return "analysis-1", model.AnalysisResult{FitScore: 70, UrgencyLevel: 2}, nil
}

func (f *fakeAnalyzer) GetAnalysis(_ context.Context, userID, analysisID string) (*model.AnalysisLog, error) {
	f.users = append(f.users, userID)
	if f.err != nil {
		return nil, f.err
	}
	return &model.AnalysisLog{UserID: userID, Result: model.AnalysisResult{FitScore: 70, UrgencyLevel: 2}}, nil
}

type fakeIngester struct {
	draft dto.IngestedJobDraft
	users []string
	urls  []string
}

func (f *fakeIngester) Ingest(_ context.Context, userID, rawURL string) dto.IngestedJobDraft {
	f.users = append(f.users, userID)
	f.urls = append(f.urls, rawURL)
	return f.draft
}

type fakeSearch struct {
	params []service.SearchParams
	result *service.SearchResult
	err    error
}

func (f *fakeSearch) Search(_ context.Context, _ string, params service.SearchParams) (*service.SearchResult, error) {
	f.params = append(f.params, params)
	return f.result, f.err
}

type fakeBrief struct {
	brief dto.TacticalBrief
}

func (f *fakeBrief) Generate(context.Context, string) (dto.TacticalBrief, error) {
	return f.brief, nil
}

type testDeps struct {
	analyzer *fakeAnalyzer
	ingester *fakeIngester
	search   *fakeSearch
	brief    *fakeBrief
}

func newTestApp(t *testing.T) (*fiber.App, *testDeps) {
	t.Helper()
	deps := &testDeps{
		analyzer: &fakeAnalyzer{},
		ingester: &fakeIngester{},
		search:   &fakeSearch{result: &service.SearchResult{Raw: json.RawMessage(`{"status":"OK","data":[]}`)}},
		brief:    &fakeBrief{},
	}
	app := fiber.New()
	api := app.Group("/api/v1", middleware.RequireAuth(testAuth))

	analysis := NewAnalysisHandler(deps.analyzer)
	analysis.extractText = func(string) (string, error) { return "extracted resume text", nil }
	analysis.RegisterRoutes(api)
	NewIngestHandler(deps.ingester).RegisterRoutes(api)
	NewSearchHandler(deps.search).RegisterRoutes(api)
	NewBriefHandler(deps.brief).RegisterRoutes(api)
	return app, deps
}

func bearer(t *testing.T) string {
	t.Helper()
	token, err := middleware.SignToken(testAuth, "user-7", jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	require.NoError(t, err)
	return "Bearer " + token
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, auth bool) (*http.Response, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if auth {
		req.Header.Set("Authorization", bearer(t))
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func TestRoutesRequireAuth(t *testing.T) {
	app, _ := newTestApp(t)
	for _, route := range []struct{ method, path string }{
		{"POST", "/api/v1/analyze"},
		{"POST", "/api/v1/analyze/upload"},
		{"POST", "/api/v1/ingest"},
		{"GET", "/api/v1/jobs/search?query=go"},
		{"GET", "/api/v1/brief"},
	} {
		resp, _ := doJSON(t, app, route.method, route.path, nil, false)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, route.path)
	}
}

func TestAnalyze(t *testing.T) {
	app, deps := newTestApp(t)

	resp, body := doJSON(t, app, "POST", "/api/v1/analyze", map[string]any{
		"resumeText":     "resume",
		"jobDescription": "jd",
		"applicationId":  "app-9",
	}, true)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "analysis-1", body["analysisId"])
	assert.Equal(t, float64(70), body["data"].(map[string]any)["fitScore"])

	require.Len(t, deps.analyzer.inputs, 1)
	assert.Equal(t, "user-7", deps.analyzer.users[0])
	require.NotNil(t, deps.analyzer.inputs[0].ApplicationID)
	assert.Equal(t, "app-9", *deps.analyzer.inputs[0].ApplicationID)
}

func TestAnalyze_MissingField(t *testing.T) {
	app, deps := newTestApp(t)

	resp, body := doJSON(t, app, "POST", "/api/v1/analyze", map[string]any{"resumeText": "resume"}, true)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Empty(t, deps.analyzer.inputs)
}

func TestAnalyze_ErrorKinds(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{util.ResourceExhausted("Daily limit of 5 reached.", repository.ErrQuotaExhausted), fiber.StatusTooManyRequests},
		{util.Internal("Failed to analyze resume.", errors.New("provider down")), fiber.StatusInternalServerError},
		{errors.New("untyped"), fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		app, deps := newTestApp(t)
		deps.analyzer.err = tt.err

		resp, body := doJSON(t, app, "POST", "/api/v1/analyze", map[string]any{
			"resumeText": "r", "jobDescription": "j",
		}, true)
		assert.Equal(t, tt.status, resp.StatusCode)
		assert.Equal(t, false, body["success"])
	}
}

func TestGetAnalysis(t *testing.T) {
	app, deps := newTestApp(t)

	resp, body := doJSON(t, app, "GET", "/api/v1/analyses/9b2c1f7e-1234-4abc-9def-0123456789ab", nil, true)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	result := body["data"].(map[string]any)["result"].(map[string]any)
	assert.Equal(t, float64(70), result["fitScore"])
	assert.Equal(t, []string{"user-7"}, deps.analyzer.users)
}

func TestGetAnalysis_NotFound(t *testing.T) {
	app, deps := newTestApp(t)
	deps.analyzer.err = util.NotFound("Analysis not found.")

	resp, body := doJSON(t, app, "GET", "/api/v1/analyses/9b2c1f7e-1234-4abc-9def-0123456789ab", nil, true)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, false, body["success"])
}

func TestAnalyzeUpload(t *testing.T) {
	app, deps := newTestApp(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("jobDescription", "Senior Go engineer"))
	part, err := w.CreateFormFile("resume", "cv.pdf")
	require.NoError(t, err)
	_, _ = part.Write([]byte("%PDF-1.4 fake"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/api/v1/analyze/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", bearer(t))
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Len(t, deps.analyzer.inputs, 1)
	assert.Equal(t, "extracted resume text", deps.analyzer.inputs[0].ResumeText)
	assert.Equal(t, "Senior Go engineer", deps.analyzer.inputs[0].JobDescription)
	assert.Nil(t, deps.analyzer.inputs[0].ApplicationID)
}

func TestAnalyzeUpload_RejectsNonPDF(t *testing.T) {
	app, deps := newTestApp(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("jobDescription", "jd"))
	part, err := w.CreateFormFile("resume", "cv.docx")
	require.NoError(t, err)
	_, _ = part.Write([]byte("not a pdf"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/api/v1/analyze/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", bearer(t))
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, deps.analyzer.inputs)
}

func TestIngest(t *testing.T) {
	app, deps := newTestApp(t)
	deps.ingester.draft = dto.IngestedJobDraft{
		Company:    "Unknown (New Listing)",
		Role:       "Platform Engineer",
		IsFallback: true,
		Source:     dto.SourceURLSlug,
	}

	resp, body := doJSON(t, app, "POST", "/api/v1/ingest", map[string]any{"url": "https://example.com/jobs/platform-engineer"}, true)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]any)
	assert.Equal(t, "Platform Engineer", data["role"])
	assert.Equal(t, true, data["isFallback"])
	assert.Equal(t, []string{"https://example.com/jobs/platform-engineer"}, deps.ingester.urls)
	assert.Equal(t, []string{"user-7"}, deps.ingester.users)
}

func TestIngest_MissingURL(t *testing.T) {
	app, deps := newTestApp(t)

	resp, _ := doJSON(t, app, "POST", "/api/v1/ingest", map[string]any{"url": " "}, true)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, deps.ingester.urls)
}

func TestSearch(t *testing.T) {
	app, deps := newTestApp(t)

	resp, body := doJSON(t, app, "GET", "/api/v1/jobs/search?query=golang&page=2&date_posted=week&remote_jobs_only=true", nil, true)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", body["data"].(map[string]any)["status"])
	assert.Equal(t, float64(2), body["pagination"].(map[string]any)["page"])

	require.Len(t, deps.search.params, 1)
	assert.Equal(t, service.SearchParams{
		Query:          "golang",
		Page:           2,
		DatePosted:     "week",
		RemoteJobsOnly: true,
	}, deps.search.params[0])
}

func TestSearch_Errors(t *testing.T) {
	app, deps := newTestApp(t)

	resp, _ := doJSON(t, app, "GET", "/api/v1/jobs/search", nil, true)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, deps.search.params)

	deps.search.err = util.ResourceExhausted("Daily limit of 20 reached.", repository.ErrQuotaExhausted)
	resp, _ = doJSON(t, app, "GET", "/api/v1/jobs/search?query=go", nil, true)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}

func TestBrief(t *testing.T) {
	app, deps := newTestApp(t)
	deps.brief.brief = dto.TacticalBrief{
		Date:        "2024-07-15",
		TotalActive: 1,
		Items: []dto.TacticalItem{{
			ApplicationID: "a1", Action: "archive as ghosted", Urgency: 1,
			RiskLevel: dto.RiskCritical, DaysSinceActivity: 40,
		}},
	}

	resp, body := doJSON(t, app, "GET", "/api/v1/brief", nil, true)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]any)
	assert.Equal(t, "2024-07-15", data["date"])
	assert.Equal(t, float64(1), data["totalActive"])
	items := data["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "critical", items[0].(map[string]any)["riskLevel"])
}
