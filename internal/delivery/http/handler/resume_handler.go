package handler

import (
	"errors"

	"talenthub/internal/delivery/http/middleware"
	"talenthub/internal/domain/resume"
	"talenthub/internal/pkg/response"
	"talenthub/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ResumeHandler struct {
	uc usecase.ResumeUsecase
}

type resumeRequest struct {
	Title          string                 `json:"title"`
	PersonalInfo   resume.PersonalInfo    `json:"personal_info"`
	Summary        string                 `json:"summary"`
	Education      []resume.Education     `json:"education"`
	Experience     []resume.Experience    `json:"experience"`
	Certifications []resume.Certification `json:"certifications"`
	Projects       []resume.Project       `json:"projects"`
	Skills         []string               `json:"skills"`
	Languages      []string               `json:"languages"`
	Hobbies        []string               `json:"hobbies"`
	Website        string                 `json:"website"`
	LinkedIn       string                 `json:"linkedin"`
	GitHub         string                 `json:"github"`
	PhotoURL       string                 `json:"photo_url"`
}

func NewResumeHandler(uc usecase.ResumeUsecase) *ResumeHandler {
	return &ResumeHandler{uc: uc}
}

func (h *ResumeHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/", h.Create)
	r.Get("/", h.ListMine)
	r.Get("/:resume_id", h.Get)
	r.Put("/:resume_id", h.Update)
	r.Delete("/:resume_id", h.Delete)
}

func (h *ResumeHandler) Create(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req resumeRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	out, err := h.uc.Create(c.Context(), userID, resumeFromRequest(req))
	if err != nil {
		return mapResumeUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, out)
}

func (h *ResumeHandler) Get(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "resume_id")
	if err != nil {
		return err
	}

	out, err := h.uc.Get(c.Context(), userID, id)
	if err != nil {
		return mapResumeUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *ResumeHandler) ListMine(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	out, err := h.uc.ListByUser(c.Context(), userID)
	if err != nil {
		return mapResumeUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *ResumeHandler) Update(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "resume_id")
	if err != nil {
		return err
	}

	var req resumeRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	out, err := h.uc.Update(c.Context(), userID, id, resumeFromRequest(req))
	if err != nil {
		return mapResumeUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *ResumeHandler) Delete(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "resume_id")
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Context(), userID, id); err != nil {
		return mapResumeUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func resumeFromRequest(req resumeRequest) resume.Resume {
	return resume.Resume{
		Title:          req.Title,
		PersonalInfo:   req.PersonalInfo,
		Summary:        req.Summary,
		Education:      req.Education,
		Experience:     req.Experience,
		Certifications: req.Certifications,
		Projects:       req.Projects,
		Skills:         req.Skills,
		Languages:      req.Languages,
		Hobbies:        req.Hobbies,
		Website:        req.Website,
		LinkedIn:       req.LinkedIn,
		GitHub:         req.GitHub,
		PhotoURL:       req.PhotoURL,
	}
}

func mapResumeUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrResumeNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Resume not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
