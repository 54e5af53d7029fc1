package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"talenthub/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrAlreadyApplied      = errors.New("already applied to this job")
	ErrJobNotOpen          = errors.New("job is not open for applications")
)

type ApplyInput struct {
	JobID       uuid.UUID
	ResumeID    uuid.UUID
	CoverLetter string
}

type ApplicationUsecase interface {
	Apply(ctx context.Context, userID uuid.UUID, in ApplyInput) (repository.Application, error)
	Get(ctx context.Context, userID uuid.UUID, id uuid.UUID) (repository.Application, error)
	ListByJob(ctx context.Context, recruiterID, jobID uuid.UUID) ([]repository.Application, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]repository.Application, error)
	UpdateStatus(ctx context.Context, recruiterID, id uuid.UUID, status, note string) (repository.Application, error)
}

type Applications struct {
	applications repository.ApplicationRepository
	jobs         repository.JobRepository
	resumes      repository.ResumeRepository
	companies    repository.CompanyRepository
	notifier     Notifier

	now func() time.Time
}

func NewApplicationUsecase(
	applications repository.ApplicationRepository,
	jobs repository.JobRepository,
	resumes repository.ResumeRepository,
	companies repository.CompanyRepository,
	notifier Notifier,
) *Applications {
	return &Applications{
		applications: applications,
		jobs:         jobs,
		resumes:      resumes,
		companies:    companies,
		notifier:     notifier,
		now:          time.Now,
	}
}

func (u *Applications) Apply(ctx context.Context, userID uuid.UUID, in ApplyInput) (repository.Application, error) {
	if userID == uuid.Nil {
		return repository.Application{}, ErrUnauthorized
	}

	rs, err := u.resumes.GetByID(ctx, in.ResumeID)
	if err != nil {
		if errors.Is(err, repository.ErrResumeNotFound) {
			return repository.Application{}, ErrResumeNotFound
		}
		return repository.Application{}, ErrInternal
	}
	if rs.UserID != userID {
		return repository.Application{}, ErrResumeNotFound
	}

	job, err := u.jobs.GetByID(ctx, in.JobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return repository.Application{}, ErrJobNotFound
		}
		return repository.Application{}, ErrInternal
	}
	// Ending Soon jobs stay open; the freshness sweep closes them at the
	// deadline.
	if job.Status == repository.JobStatusClosed {
		return repository.Application{}, ErrJobNotOpen
	}

	a := repository.Application{
		ID:          uuid.New(),
		JobID:       job.ID,
		UserID:      userID,
		ResumeID:    rs.ID,
		CoverLetter: in.CoverLetter,
		Status:      repository.ApplicationStatusPending,
		StatusHistory: []repository.StatusChange{{
			Status:    repository.ApplicationStatusPending,
			Note:      "Application submitted",
			ChangedAt: u.now().UTC(),
		}},
	}

	if err := u.applications.Create(ctx, a); err != nil {
		if errors.Is(err, repository.ErrDuplicateApplication) {
			return repository.Application{}, ErrAlreadyApplied
		}
		return repository.Application{}, ErrInternal
	}

	// Counter drift on failure is acceptable; the count is informational.
	_ = u.jobs.IncrementApplicationCount(ctx, job.ID)

	return a, nil
}

func (u *Applications) Get(ctx context.Context, userID uuid.UUID, id uuid.UUID) (repository.Application, error) {
	a, err := u.applications.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return repository.Application{}, ErrApplicationNotFound
		}
		return repository.Application{}, ErrInternal
	}

	if a.UserID == userID {
		return a, nil
	}
	// The job's recruiter may also read the application.
	if err := u.checkJobRecruiter(ctx, userID, a.JobID); err != nil {
		return repository.Application{}, err
	}
	return a, nil
}

func (u *Applications) ListByJob(ctx context.Context, recruiterID, jobID uuid.UUID) ([]repository.Application, error) {
	if err := u.checkJobRecruiter(ctx, recruiterID, jobID); err != nil {
		return nil, err
	}
	out, err := u.applications.ListByJobID(ctx, jobID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Applications) ListByUser(ctx context.Context, userID uuid.UUID) ([]repository.Application, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	out, err := u.applications.ListByUserID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

// UpdateStatus moves the application to any status in the enum and appends
// the transition to the history. There is no transition matrix; the history
// is the audit trail.
func (u *Applications) UpdateStatus(ctx context.Context, recruiterID, id uuid.UUID, status, note string) (repository.Application, error) {
	if !repository.ValidApplicationStatus(status) {
		return repository.Application{}, ErrInvalidInput
	}

	a, err := u.applications.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return repository.Application{}, ErrApplicationNotFound
		}
		return repository.Application{}, ErrInternal
	}

	if err := u.checkJobRecruiter(ctx, recruiterID, a.JobID); err != nil {
		return repository.Application{}, err
	}

	a.Status = status
	a.StatusHistory = append(a.StatusHistory, repository.StatusChange{
		Status:    status,
		Note:      note,
		ChangedAt: u.now().UTC(),
	})

	if err := u.applications.UpdateStatus(ctx, a.ID, a.Status, a.StatusHistory); err != nil {
		return repository.Application{}, ErrInternal
	}

	if u.notifier != nil {
		u.notifier.Notify(ctx, a.UserID, NotificationTypeApplicationStatus,
			"Application update",
			fmt.Sprintf("Your application status changed to %s.", status))
	}
	return a, nil
}

func (u *Applications) checkJobRecruiter(ctx context.Context, recruiterID, jobID uuid.UUID) error {
	if recruiterID == uuid.Nil {
		return ErrUnauthorized
	}
	job, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return ErrJobNotFound
		}
		return ErrInternal
	}
	c, err := u.companies.GetByID(ctx, job.CompanyID)
	if err != nil {
		return ErrInternal
	}
	if c.OwnerID != recruiterID {
		return ErrForbidden
	}
	return nil
}
