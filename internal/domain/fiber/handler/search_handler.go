package handler

import (
	"strings"

	"github.com/fadilmartias/job-intel/internal/dto"
	"github.com/fadilmartias/job-intel/internal/middleware"
	"github.com/fadilmartias/job-intel/internal/response"
	"github.com/fadilmartias/job-intel/internal/service"
	"github.com/fadilmartias/job-intel/internal/util"
	"github.com/gofiber/fiber/v2"
)

// JSearch returns at most this many listings per page.
const searchPageSize = 10

type SearchHandler struct {
	uc Searcher
}

func NewSearchHandler(uc Searcher) *SearchHandler {
	return &SearchHandler{uc: uc}
}

func (h *SearchHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/jobs/search", h.Search)
}

func (h *SearchHandler) Search(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return util.HandleError(c, err)
	}

	var req dto.SearchJobsRequest
	if err := c.QueryParser(&req); err != nil {
		return util.HandleError(c, util.InvalidArgument("invalid query parameters"))
	}
	if strings.TrimSpace(req.Query) == "" {
		return util.HandleError(c, util.NewFormError("query is required", map[string]string{"query": "required"}))
	}
	if req.Page < 1 {
		req.Page = 1
	}

	result, err := h.uc.Search(c.UserContext(), userID, service.SearchParams{
		Query:          req.Query,
		Page:           req.Page,
		DatePosted:     req.DatePosted,
		RemoteJobsOnly: req.RemoteJobsOnly,
	})
	if err != nil {
		return util.HandleError(c, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Jobs found",
		Data:       result.Raw,
		Pagination: response.NewOpenPagination(req.Page, searchPageSize, len(result.Listings)),
	})
}
