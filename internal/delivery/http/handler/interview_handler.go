package handler

import (
	"errors"
	"time"

	"talenthub/internal/delivery/http/middleware"
	"talenthub/internal/pkg/response"
	"talenthub/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type InterviewHandler struct {
	uc usecase.InterviewUsecase
}

type scheduleInterviewRequest struct {
	ApplicationID uuid.UUID `json:"application_id"`
	ScheduledAt   time.Time `json:"scheduled_at"`
	Location      string    `json:"location"`
	MeetingLink   string    `json:"meeting_link"`
	Notes         string    `json:"notes"`
}

type updateInterviewRequest struct {
	ScheduledAt *time.Time `json:"scheduled_at"`
	Location    *string    `json:"location"`
	MeetingLink *string    `json:"meeting_link"`
	Status      *string    `json:"status"`
	Notes       *string    `json:"notes"`
}

func NewInterviewHandler(uc usecase.InterviewUsecase) *InterviewHandler {
	return &InterviewHandler{uc: uc}
}

func (h *InterviewHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/:interview_id", h.Get)
	r.Get("/application/:application_id", h.ListByApplication)
}

func (h *InterviewHandler) RegisterRecruiterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/", h.Schedule)
	r.Patch("/:interview_id", h.Update)
}

func (h *InterviewHandler) Schedule(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req scheduleInterviewRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if req.ApplicationID == uuid.Nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, nil)
	}

	out, err := h.uc.Schedule(c.Context(), userID, usecase.ScheduleInterviewInput{
		ApplicationID: req.ApplicationID,
		ScheduledAt:   req.ScheduledAt,
		Location:      req.Location,
		MeetingLink:   req.MeetingLink,
		Notes:         req.Notes,
	})
	if err != nil {
		return mapInterviewUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, out)
}

func (h *InterviewHandler) Get(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "interview_id")
	if err != nil {
		return err
	}

	out, err := h.uc.Get(c.Context(), userID, id)
	if err != nil {
		return mapInterviewUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *InterviewHandler) ListByApplication(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	applicationID, err := parseUUIDParam(c, "application_id")
	if err != nil {
		return err
	}

	out, err := h.uc.ListByApplication(c.Context(), userID, applicationID)
	if err != nil {
		return mapInterviewUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *InterviewHandler) Update(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "interview_id")
	if err != nil {
		return err
	}

	var req updateInterviewRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	out, err := h.uc.Update(c.Context(), userID, id, usecase.InterviewUpdateInput{
		ScheduledAt: req.ScheduledAt,
		Location:    req.Location,
		MeetingLink: req.MeetingLink,
		Status:      req.Status,
		Notes:       req.Notes,
	})
	if err != nil {
		return mapInterviewUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func mapInterviewUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInterviewNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Interview not found", nil, err)
	case errors.Is(err, usecase.ErrApplicationNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Application not found", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
