package handler

import (
	"github.com/fadilmartias/job-intel/internal/middleware"
	"github.com/fadilmartias/job-intel/internal/util"
	"github.com/gofiber/fiber/v2"
)

type BriefHandler struct {
	uc BriefGenerator
}

func NewBriefHandler(uc BriefGenerator) *BriefHandler {
	return &BriefHandler{uc: uc}
}

func (h *BriefHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/brief", h.Brief)
}

func (h *BriefHandler) Brief(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return util.HandleError(c, err)
	}

	brief, err := h.uc.Generate(c.UserContext(), userID)
	if err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Tactical brief generated",
		Data:    brief,
	})
}
