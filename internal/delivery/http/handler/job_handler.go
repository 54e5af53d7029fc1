package handler

import (
	"errors"
	"time"

	"talenthub/internal/delivery/http/dto"
	"talenthub/internal/delivery/http/middleware"
	"talenthub/internal/importer"
	"talenthub/internal/pkg/response"
	"talenthub/internal/repository"
	"talenthub/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type JobHandler struct {
	uc       usecase.JobUsecase
	importer *importer.Importer
}

type jobRequest struct {
	CompanyID       uuid.UUID  `json:"company_id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	HardSkills      []string   `json:"hard_skills"`
	SoftSkills      []string   `json:"soft_skills"`
	ExperienceLevel string     `json:"experience_level"`
	Industry        string     `json:"industry"`
	Location        string     `json:"location"`
	SalaryMin       int        `json:"salary_min"`
	SalaryMax       int        `json:"salary_max"`
	Deadline        *time.Time `json:"deadline"`
}

type importJobRequest struct {
	URL string `json:"url"`
}

type importJobBatchRequest struct {
	URLs []string `json:"urls"`
}

func NewJobHandler(uc usecase.JobUsecase, imp *importer.Importer) *JobHandler {
	return &JobHandler{uc: uc, importer: imp}
}

func (h *JobHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.List)
	r.Get("/:job_id", h.Get)
}

func (h *JobHandler) RegisterRecruiterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/", h.Create)
	r.Post("/import", h.Import)
	r.Post("/import/batch", h.ImportBatch)
	r.Put("/:job_id", h.Update)
	r.Post("/:job_id/close", h.Close)
	r.Delete("/:job_id", h.Delete)
}

func (h *JobHandler) Create(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req jobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if req.CompanyID == uuid.Nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, nil)
	}

	out, err := h.uc.Create(c.Context(), userID, req.CompanyID, jobInputFromRequest(req))
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, out)
}

// Import extracts a draft posting from an external URL. The recruiter
// reviews the draft and submits it through Create.
func (h *JobHandler) Import(c fiber.Ctx) error {
	if _, err := currentUserID(c); err != nil {
		return err
	}

	var req importJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	draft, err := h.importer.Import(c.Context(), req.URL)
	if err != nil {
		switch {
		case errors.Is(err, importer.ErrInvalidURL):
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid posting URL", nil, err)
		case errors.Is(err, importer.ErrEmptyPage), errors.Is(err, importer.ErrUnusableDraft):
			return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Could not extract a posting from that page", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.ImportResponse{Draft: draft})
}

func (h *JobHandler) ImportBatch(c fiber.Ctx) error {
	if _, err := currentUserID(c); err != nil {
		return err
	}

	var req importJobBatchRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	items, err := h.importer.ImportBatch(c.Context(), req.URLs)
	if err != nil {
		if errors.Is(err, importer.ErrTooManyURLs) {
			return middleware.NewAppError(fiber.StatusBadRequest, "Too many URLs in one batch", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *JobHandler) Get(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "job_id")
	if err != nil {
		return err
	}

	out, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *JobHandler) List(c fiber.Ctx) error {
	f := repository.JobListFilter{
		Status:          c.Query("status"),
		Industry:        c.Query("industry"),
		ExperienceLevel: c.Query("experience_level"),
		Limit:           fiber.Query(c, "limit", 20),
		Offset:          fiber.Query(c, "offset", 0),
	}
	if raw := c.Query("company_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}
		f.CompanyID = id
	}

	out, err := h.uc.List(c.Context(), f)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *JobHandler) Update(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "job_id")
	if err != nil {
		return err
	}

	var req jobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	out, err := h.uc.Update(c.Context(), userID, id, jobInputFromRequest(req))
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *JobHandler) Close(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "job_id")
	if err != nil {
		return err
	}

	if err := h.uc.Close(c.Context(), userID, id); err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *JobHandler) Delete(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "job_id")
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Context(), userID, id); err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func jobInputFromRequest(req jobRequest) usecase.JobInput {
	return usecase.JobInput{
		Title:           req.Title,
		Description:     req.Description,
		HardSkills:      req.HardSkills,
		SoftSkills:      req.SoftSkills,
		ExperienceLevel: req.ExperienceLevel,
		Industry:        req.Industry,
		Location:        req.Location,
		SalaryMin:       req.SalaryMin,
		SalaryMax:       req.SalaryMax,
		Deadline:        req.Deadline,
	}
}

func mapJobUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrCompanyNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Company not found", nil, err)
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
