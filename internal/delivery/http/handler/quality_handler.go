package handler

import (
	"talentlink/internal/delivery/http/dto"
	"talentlink/internal/delivery/http/middleware"
	"talentlink/internal/pkg/response"
	"talentlink/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type QualityHandler struct {
	uc usecase.QualityUsecase
}

func NewQualityHandler(uc usecase.QualityUsecase) *QualityHandler {
	return &QualityHandler{uc: uc}
}

func (h *QualityHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/matches/:match_id/quality", h.AssessMatch)
}

func (h *QualityHandler) AssessMatch(c fiber.Ctx) error {
	matchID, err := uuid.Parse(c.Params("match_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	report, err := h.uc.AssessMatch(c.Context(), matchID)
	if err != nil {
		return mapMatchError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewQualityReportResponse(report))
}
