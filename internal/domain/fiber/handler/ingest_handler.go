package handler

import (
	"strings"

	"github.com/fadilmartias/job-intel/internal/dto"
	"github.com/fadilmartias/job-intel/internal/middleware"
	"github.com/fadilmartias/job-intel/internal/util"
	"github.com/gofiber/fiber/v2"
)

type IngestHandler struct {
	uc Ingester
}

func NewIngestHandler(uc Ingester) *IngestHandler {
	return &IngestHandler{uc: uc}
}

func (h *IngestHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/ingest", h.Ingest)
}

// Ingest always answers 200 once the URL is present; a degraded result is
// flagged inside the draft.
func (h *IngestHandler) Ingest(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return util.HandleError(c, err)
	}

	var req dto.IngestRequest
	if err := c.BodyParser(&req); err != nil {
		return util.HandleError(c, util.InvalidArgument("invalid request body"))
	}
	if strings.TrimSpace(req.URL) == "" {
		return util.HandleError(c, util.NewFormError("url is required", map[string]string{"url": "required"}))
	}

	draft := h.uc.Ingest(c.UserContext(), userID, req.URL)
	message := "Job ingested"
	if draft.IsFallback {
		message = "Job ingested with incomplete details"
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: message,
		Data:    draft,
	})
}
