package handler

import (
	"errors"
	"strconv"

	"talentlink/internal/delivery/http/dto"
	"talentlink/internal/delivery/http/middleware"
	"talentlink/internal/domain/company"
	"talentlink/internal/domain/match"
	"talentlink/internal/domain/posting"
	"talentlink/internal/domain/student"
	"talentlink/internal/pkg/response"
	"talentlink/internal/repository"
	"talentlink/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type MatchHandler struct {
	uc usecase.MatchingUsecase
}

func NewMatchHandler(uc usecase.MatchingUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/students/:student_id/matches", h.GetStudentMatches)
	r.Get("/companies/:company_id/matches", h.GetCompanyMatches)

	matches := r.Group("/matches")
	matches.Get("/:match_id", h.GetMatch)
	matches.Patch("/:match_id/status", h.UpdateMatchStatus)
	matches.Get("/:match_id/breakdown", h.GetMatchBreakdown)
}

func (h *MatchHandler) GetStudentMatches(c fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("student_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	limit, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	minScore, err := parseQueryFloatStrict(c, "min_score", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	forceRefresh, err := parseQueryBoolStrict(c, "force_refresh")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	res, err := h.uc.GetMatchesForStudent(c.Context(), studentID, usecase.StudentMatchParams{
		Limit:        limit,
		MinScore:     minScore,
		Scope:        posting.Kind(c.Query("scope")),
		ForceRefresh: forceRefresh,
	})
	if err != nil {
		return mapMatchError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchListResponse(res.Matches, res.FromCache))
}

func (h *MatchHandler) GetCompanyMatches(c fiber.Ctx) error {
	companyID, err := uuid.Parse(c.Params("company_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	limit, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	minScore, err := parseQueryFloatStrict(c, "min_score", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	forceRefresh, err := parseQueryBoolStrict(c, "force_refresh")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	jobID, err := parseQueryUUID(c, "job_id")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	internshipID, err := parseQueryUUID(c, "internship_id")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	res, err := h.uc.GetMatchesForCompany(c.Context(), companyID, usecase.CompanyMatchParams{
		Limit:        limit,
		MinScore:     minScore,
		JobID:        jobID,
		InternshipID: internshipID,
		ForceRefresh: forceRefresh,
	})
	if err != nil {
		return mapMatchError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchListResponse(res.Matches, res.FromCache))
}

func (h *MatchHandler) GetMatch(c fiber.Ctx) error {
	matchID, err := uuid.Parse(c.Params("match_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	m, err := h.uc.GetMatch(c.Context(), matchID)
	if err != nil {
		return mapMatchError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchResponse(m))
}

func (h *MatchHandler) UpdateMatchStatus(c fiber.Ctx) error {
	matchID, err := uuid.Parse(c.Params("match_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req dto.UpdateMatchStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	m, err := h.uc.UpdateMatchStatus(c.Context(), matchID, match.Status(req.Status), match.Actor(req.PerformedBy), req.Metadata)
	if err != nil {
		return mapMatchError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchResponse(m))
}

func (h *MatchHandler) GetMatchBreakdown(c fiber.Ctx) error {
	matchID, err := uuid.Parse(c.Params("match_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	components, err := h.uc.GetMatchBreakdown(c.Context(), matchID)
	if err != nil {
		return mapMatchError(err)
	}

	out := make(map[string]dto.ComponentResponse, len(components))
	for name, comp := range components {
		out[name] = dto.ComponentResponse{
			Score:        comp.Score,
			MatchedItems: comp.MatchedItems,
			MissingItems: comp.MissingItems,
		}
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return v, nil
}

func parseQueryFloatStrict(c fiber.Ctx, key string, defaultVal float64) (float64, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return v, nil
}

func parseQueryBoolStrict(c fiber.Ctx, key string) (bool, error) {
	s := c.Query(key)
	if s == "" {
		return false, nil
	}
	return strconv.ParseBool(s)
}

func parseQueryUUID(c fiber.Ctx, key string) (*uuid.UUID, error) {
	s := c.Query(key)
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func mapMatchError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, match.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Match not found", nil, err)
	case errors.Is(err, student.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Student not found", nil, err)
	case errors.Is(err, company.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Company not found", nil, err)
	case errors.Is(err, posting.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Posting not found", nil, err)
	case errors.Is(err, repository.ErrConflict):
		return middleware.NewAppError(fiber.StatusConflict, "Conflicting update, retry the request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
