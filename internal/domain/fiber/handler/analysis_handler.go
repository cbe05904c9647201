package handler

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fadilmartias/job-intel/internal/dto"
	"github.com/fadilmartias/job-intel/internal/middleware"
	"github.com/fadilmartias/job-intel/internal/usecase"
	"github.com/fadilmartias/job-intel/internal/util"
	"github.com/gofiber/fiber/v2"
)

const maxResumeSize = 5 * 1024 * 1024

type AnalysisHandler struct {
	uc Analyzer
	// extractText reads a stored PDF; swapped in tests.
	extractText func(path string) (string, error)
}

func NewAnalysisHandler(uc Analyzer) *AnalysisHandler {
	return &AnalysisHandler{uc: uc, extractText: util.ExtractResumeText}
}

func (h *AnalysisHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/analyze", h.Analyze)
	router.Post("/analyze/upload", h.AnalyzeUpload)
	router.Get("/analyses/:id", h.GetAnalysis)
}

func (h *AnalysisHandler) Analyze(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return util.HandleError(c, err)
	}

	var req dto.AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return util.HandleError(c, util.InvalidArgument("invalid request body"))
	}

	fields := map[string]string{}
	if strings.TrimSpace(req.ResumeText) == "" {
		fields["resumeText"] = "required"
	}
	if strings.TrimSpace(req.JobDescription) == "" {
		fields["jobDescription"] = "required"
	}
	if len(fields) > 0 {
		return util.HandleError(c, util.NewFormError("resumeText and jobDescription are required", fields))
	}

	return h.analyze(c, userID, usecase.AnalyzeInput{
		ResumeText:     req.ResumeText,
		JobDescription: req.JobDescription,
		ApplicationID:  req.ApplicationID,
	})
}

// AnalyzeUpload accepts the resume as a PDF file instead of plain text.
func (h *AnalysisHandler) AnalyzeUpload(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return util.HandleError(c, err)
	}

	jobDescription := c.FormValue("jobDescription")
	if strings.TrimSpace(jobDescription) == "" {
		return util.HandleError(c, util.NewFormError("jobDescription is required", map[string]string{"jobDescription": "required"}))
	}

	resumeText, err := h.readResume(c)
	if err != nil {
		return util.HandleError(c, err)
	}

	in := usecase.AnalyzeInput{ResumeText: resumeText, JobDescription: jobDescription}
	if appID := c.FormValue("applicationId"); appID != "" {
		in.ApplicationID = &appID
	}
	return h.analyze(c, userID, in)
}

func (h *AnalysisHandler) GetAnalysis(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return util.HandleError(c, err)
	}

	entry, err := h.uc.GetAnalysis(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Analysis found",
		Data:    entry,
	})
}

func (h *AnalysisHandler) analyze(c *fiber.Ctx, userID string, in usecase.AnalyzeInput) error {
	analysisID, result, err := h.uc.Analyze(c.UserContext(), userID, in)
	if err != nil {
		return util.HandleError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(dto.AnalyzeResponse{
		Success:    true,
		Message:    "Analysis completed",
		AnalysisID: analysisID,
		Data:       result,
	})
}

func (h *AnalysisHandler) readResume(c *fiber.Ctx) (string, error) {
	file, err := c.FormFile("resume")
	if err != nil {
		return "", util.NewFormError("resume file is required", map[string]string{"resume": "required"})
	}
	if file.Size > maxResumeSize {
		return "", util.NewFormError("resume file is too large (max 5MB)", map[string]string{"resume": "too large"})
	}
	if strings.ToLower(filepath.Ext(file.Filename)) != ".pdf" {
		return "", util.NewFormError("resume must be a PDF", map[string]string{"resume": "unsupported file type"})
	}

	tmp, err := os.CreateTemp("", "resume-*.pdf")
	if err != nil {
		return "", util.Internal("cannot store resume", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := c.SaveFile(file, tmpPath); err != nil {
		return "", util.Internal("cannot store resume", err)
	}

	text, err := h.extractText(tmpPath)
	if err != nil {
		slog.Warn("resume text extraction failed", "filename", file.Filename, "error", err)
		return "", util.InvalidArgument(fmt.Sprintf("could not read resume: %v", err))
	}
	return text, nil
}
