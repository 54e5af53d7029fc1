package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"talenthub/internal/infrastructure/cache"
	"talenthub/internal/repository"

	"github.com/google/uuid"
)

var ErrJobNotFound = errors.New("job not found")

const jobListCacheTTL = 5 * time.Minute

type JobInput struct {
	Title           string
	Description     string
	HardSkills      []string
	SoftSkills      []string
	ExperienceLevel string
	Industry        string
	Location        string
	SalaryMin       int
	SalaryMax       int
	Deadline        *time.Time
}

type JobUsecase interface {
	Create(ctx context.Context, recruiterID, companyID uuid.UUID, in JobInput) (repository.Job, error)
	Get(ctx context.Context, id uuid.UUID) (repository.Job, error)
	List(ctx context.Context, f repository.JobListFilter) ([]repository.Job, error)
	Update(ctx context.Context, recruiterID, id uuid.UUID, in JobInput) (repository.Job, error)
	Close(ctx context.Context, recruiterID, id uuid.UUID) error
	Delete(ctx context.Context, recruiterID, id uuid.UUID) error
}

type Jobs struct {
	jobs      repository.JobRepository
	companies repository.CompanyRepository
	cache     *cache.Redis
}

func NewJobUsecase(jobs repository.JobRepository, companies repository.CompanyRepository, c *cache.Redis) *Jobs {
	return &Jobs{jobs: jobs, companies: companies, cache: c}
}

func (u *Jobs) Create(ctx context.Context, recruiterID, companyID uuid.UUID, in JobInput) (repository.Job, error) {
	if err := u.checkCompanyOwner(ctx, recruiterID, companyID); err != nil {
		return repository.Job{}, err
	}
	if strings.TrimSpace(in.Title) == "" {
		return repository.Job{}, ErrInvalidInput
	}
	if in.ExperienceLevel != "" && !repository.ValidExperienceLevel(in.ExperienceLevel) {
		return repository.Job{}, ErrInvalidInput
	}

	j := repository.Job{
		ID:              uuid.New(),
		CompanyID:       companyID,
		Title:           strings.TrimSpace(in.Title),
		Description:     in.Description,
		HardSkills:      in.HardSkills,
		SoftSkills:      in.SoftSkills,
		ExperienceLevel: in.ExperienceLevel,
		Industry:        strings.TrimSpace(in.Industry),
		Location:        strings.TrimSpace(in.Location),
		SalaryMin:       in.SalaryMin,
		SalaryMax:       in.SalaryMax,
		Status:          repository.JobStatusActive,
		Deadline:        in.Deadline,
	}
	if j.ExperienceLevel == "" {
		j.ExperienceLevel = "Junior"
	}

	if err := u.jobs.Create(ctx, j); err != nil {
		return repository.Job{}, ErrInternal
	}
	u.invalidateListings(ctx)

	created, err := u.jobs.GetByID(ctx, j.ID)
	if err != nil {
		return repository.Job{}, ErrInternal
	}
	return created, nil
}

// Get returns the job and counts the view. The counter write is fire-and-
// forget relative to the read; a failed increment never fails the request.
func (u *Jobs) Get(ctx context.Context, id uuid.UUID) (repository.Job, error) {
	j, err := u.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return repository.Job{}, ErrJobNotFound
		}
		return repository.Job{}, ErrInternal
	}

	if err := u.jobs.IncrementViews(ctx, id); err == nil {
		j.Views++
	}
	return j, nil
}

func (u *Jobs) List(ctx context.Context, f repository.JobListFilter) ([]repository.Job, error) {
	key := jobListCacheKey(f)

	var cached []repository.Job
	if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	out, err := u.jobs.List(ctx, f)
	if err != nil {
		return nil, ErrInternal
	}

	_ = u.cache.SetJSON(ctx, key, out, jobListCacheTTL)
	return out, nil
}

func (u *Jobs) Update(ctx context.Context, recruiterID, id uuid.UUID, in JobInput) (repository.Job, error) {
	j, err := u.ownedJob(ctx, recruiterID, id)
	if err != nil {
		return repository.Job{}, err
	}

	if strings.TrimSpace(in.Title) != "" {
		j.Title = strings.TrimSpace(in.Title)
	}
	if in.ExperienceLevel != "" {
		if !repository.ValidExperienceLevel(in.ExperienceLevel) {
			return repository.Job{}, ErrInvalidInput
		}
		j.ExperienceLevel = in.ExperienceLevel
	}
	j.Description = in.Description
	j.HardSkills = in.HardSkills
	j.SoftSkills = in.SoftSkills
	j.Industry = strings.TrimSpace(in.Industry)
	j.Location = strings.TrimSpace(in.Location)
	j.SalaryMin = in.SalaryMin
	j.SalaryMax = in.SalaryMax
	j.Deadline = in.Deadline

	if err := u.jobs.Update(ctx, j); err != nil {
		return repository.Job{}, ErrInternal
	}
	u.invalidateListings(ctx)
	return j, nil
}

func (u *Jobs) Close(ctx context.Context, recruiterID, id uuid.UUID) error {
	if _, err := u.ownedJob(ctx, recruiterID, id); err != nil {
		return err
	}
	if err := u.jobs.UpdateStatus(ctx, id, repository.JobStatusClosed); err != nil {
		return ErrInternal
	}
	u.invalidateListings(ctx)
	return nil
}

func (u *Jobs) Delete(ctx context.Context, recruiterID, id uuid.UUID) error {
	if _, err := u.ownedJob(ctx, recruiterID, id); err != nil {
		return err
	}
	if err := u.jobs.Delete(ctx, id); err != nil {
		return ErrInternal
	}
	u.invalidateListings(ctx)
	return nil
}

func (u *Jobs) ownedJob(ctx context.Context, recruiterID, id uuid.UUID) (repository.Job, error) {
	j, err := u.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return repository.Job{}, ErrJobNotFound
		}
		return repository.Job{}, ErrInternal
	}
	if err := u.checkCompanyOwner(ctx, recruiterID, j.CompanyID); err != nil {
		return repository.Job{}, err
	}
	return j, nil
}

func (u *Jobs) checkCompanyOwner(ctx context.Context, recruiterID, companyID uuid.UUID) error {
	if recruiterID == uuid.Nil {
		return ErrUnauthorized
	}
	c, err := u.companies.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			return ErrCompanyNotFound
		}
		return ErrInternal
	}
	if c.OwnerID != recruiterID {
		return ErrForbidden
	}
	return nil
}

func (u *Jobs) invalidateListings(ctx context.Context) {
	_ = u.cache.InvalidateJobCaches(ctx)
}

func jobListCacheKey(f repository.JobListFilter) string {
	return fmt.Sprintf("jobs:list:%s:%s:%s:%s:%d:%d",
		f.Status, f.Industry, f.ExperienceLevel, f.CompanyID, f.Limit, f.Offset)
}
