package handler

import (
	"talentlink/internal/delivery/http/dto"
	"talentlink/internal/delivery/http/middleware"
	"talentlink/internal/domain/posting"
	"talentlink/internal/pkg/response"
	"talentlink/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type BatchHandler struct {
	uc usecase.BatchUsecase
}

func NewBatchHandler(uc usecase.BatchUsecase) *BatchHandler {
	return &BatchHandler{uc: uc}
}

func (h *BatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/matches/batch", h.Generate)
}

func (h *BatchHandler) Generate(c fiber.Ctx) error {
	var req dto.BatchGenerateRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().Body(&req); err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}
	}

	res, err := h.uc.Generate(c.Context(), usecase.BatchParams{
		CompanyIDs: req.CompanyIDs,
		StudentIDs: req.StudentIDs,
		Kind:       posting.Kind(req.Type),
	})
	if err != nil {
		return mapMatchError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewBatchResultResponse(res))
}
