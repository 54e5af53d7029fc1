package handler

import (
	"errors"

	"talenthub/internal/delivery/http/dto"
	"talenthub/internal/delivery/http/middleware"
	"talenthub/internal/pkg/response"
	"talenthub/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type MatchHandler struct {
	uc usecase.MatchingUsecase
}

type generateMatchRequest struct {
	ResumeID uuid.UUID `json:"resume_id"`
}

func NewMatchHandler(uc usecase.MatchingUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/generate", h.Generate)
	r.Get("/", h.List)
}

func (h *MatchHandler) Generate(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req generateMatchRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if req.ResumeID == uuid.Nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, nil)
	}

	res, err := h.uc.GenerateMatch(c.Context(), userID, req.ResumeID)
	if err != nil {
		return mapMatchUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, matchResponseFromResult(res))
}

func (h *MatchHandler) List(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	matches, err := h.uc.ListMatches(c.Context(), userID)
	if err != nil {
		return mapMatchUsecaseError(err)
	}

	out := make([]dto.MatchedJobResponse, 0, len(matches))
	for _, m := range matches {
		out = append(out, matchedJobResponse(m))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func matchResponseFromResult(res usecase.MatchResult) dto.MatchResponse {
	out := dto.MatchResponse{
		Matches:     make([]dto.MatchedJobResponse, 0, len(res.Matches)),
		Explanation: res.Explanation,
	}
	for _, m := range res.Matches {
		out.Matches = append(out.Matches, matchedJobResponse(m))
	}
	return out
}

func matchedJobResponse(m usecase.MatchedJob) dto.MatchedJobResponse {
	return dto.MatchedJobResponse{
		MatchID:     m.Match.ID,
		Score:       m.Match.MatchScore,
		Explanation: m.Match.Explanation,
		Job:         m.Job,
	}
}

func mapMatchUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrResumeNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Resume not found", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
