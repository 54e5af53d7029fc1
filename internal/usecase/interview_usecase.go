package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"talenthub/internal/repository"

	"github.com/google/uuid"
)

var ErrInterviewNotFound = errors.New("interview not found")

type ScheduleInterviewInput struct {
	ApplicationID uuid.UUID
	ScheduledAt   time.Time
	Location      string
	MeetingLink   string
	Notes         string
}

type InterviewUpdateInput struct {
	ScheduledAt *time.Time
	Location    *string
	MeetingLink *string
	Status      *string
	Notes       *string
}

type InterviewUsecase interface {
	Schedule(ctx context.Context, recruiterID uuid.UUID, in ScheduleInterviewInput) (repository.Interview, error)
	Get(ctx context.Context, userID, id uuid.UUID) (repository.Interview, error)
	ListByApplication(ctx context.Context, userID, applicationID uuid.UUID) ([]repository.Interview, error)
	Update(ctx context.Context, recruiterID, id uuid.UUID, in InterviewUpdateInput) (repository.Interview, error)
}

type Interviews struct {
	interviews   repository.InterviewRepository
	applications repository.ApplicationRepository
	jobs         repository.JobRepository
	companies    repository.CompanyRepository
	notifier     Notifier
}

func NewInterviewUsecase(
	interviews repository.InterviewRepository,
	applications repository.ApplicationRepository,
	jobs repository.JobRepository,
	companies repository.CompanyRepository,
	notifier Notifier,
) *Interviews {
	return &Interviews{
		interviews:   interviews,
		applications: applications,
		jobs:         jobs,
		companies:    companies,
		notifier:     notifier,
	}
}

func (u *Interviews) Schedule(ctx context.Context, recruiterID uuid.UUID, in ScheduleInterviewInput) (repository.Interview, error) {
	if in.ScheduledAt.IsZero() {
		return repository.Interview{}, ErrInvalidInput
	}

	a, err := u.recruiterApplication(ctx, recruiterID, in.ApplicationID)
	if err != nil {
		return repository.Interview{}, err
	}

	iv := repository.Interview{
		ID:            uuid.New(),
		ApplicationID: a.ID,
		ScheduledAt:   in.ScheduledAt,
		Location:      in.Location,
		MeetingLink:   in.MeetingLink,
		Status:        repository.InterviewStatusScheduled,
		Notes:         in.Notes,
	}
	if err := u.interviews.Create(ctx, iv); err != nil {
		return repository.Interview{}, ErrInternal
	}

	if u.notifier != nil {
		u.notifier.Notify(ctx, a.UserID, NotificationTypeInterview,
			"Interview scheduled",
			fmt.Sprintf("An interview has been scheduled for %s.", in.ScheduledAt.Format(time.RFC1123)))
	}
	return iv, nil
}

func (u *Interviews) Get(ctx context.Context, userID, id uuid.UUID) (repository.Interview, error) {
	iv, err := u.interviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrInterviewNotFound) {
			return repository.Interview{}, ErrInterviewNotFound
		}
		return repository.Interview{}, ErrInternal
	}

	if err := u.checkParticipant(ctx, userID, iv.ApplicationID); err != nil {
		return repository.Interview{}, err
	}
	return iv, nil
}

func (u *Interviews) ListByApplication(ctx context.Context, userID, applicationID uuid.UUID) ([]repository.Interview, error) {
	if err := u.checkParticipant(ctx, userID, applicationID); err != nil {
		return nil, err
	}
	out, err := u.interviews.ListByApplicationID(ctx, applicationID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Interviews) Update(ctx context.Context, recruiterID, id uuid.UUID, in InterviewUpdateInput) (repository.Interview, error) {
	iv, err := u.interviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrInterviewNotFound) {
			return repository.Interview{}, ErrInterviewNotFound
		}
		return repository.Interview{}, ErrInternal
	}

	a, err := u.recruiterApplication(ctx, recruiterID, iv.ApplicationID)
	if err != nil {
		return repository.Interview{}, err
	}

	rescheduled := false
	if in.ScheduledAt != nil && !in.ScheduledAt.IsZero() && !in.ScheduledAt.Equal(iv.ScheduledAt) {
		iv.ScheduledAt = *in.ScheduledAt
		iv.Status = repository.InterviewStatusRescheduled
		rescheduled = true
	}
	if in.Location != nil {
		iv.Location = *in.Location
	}
	if in.MeetingLink != nil {
		iv.MeetingLink = *in.MeetingLink
	}
	if in.Status != nil {
		if !repository.ValidInterviewStatus(*in.Status) {
			return repository.Interview{}, ErrInvalidInput
		}
		iv.Status = *in.Status
	}
	if in.Notes != nil {
		iv.Notes = *in.Notes
	}

	if err := u.interviews.Update(ctx, iv); err != nil {
		return repository.Interview{}, ErrInternal
	}

	if u.notifier != nil {
		title := "Interview update"
		body := fmt.Sprintf("Your interview is now %s.", iv.Status)
		if rescheduled {
			body = fmt.Sprintf("Your interview was rescheduled to %s.", iv.ScheduledAt.Format(time.RFC1123))
		}
		u.notifier.Notify(ctx, a.UserID, NotificationTypeInterview, title, body)
	}
	return iv, nil
}

func (u *Interviews) recruiterApplication(ctx context.Context, recruiterID, applicationID uuid.UUID) (repository.Application, error) {
	a, err := u.applications.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return repository.Application{}, ErrApplicationNotFound
		}
		return repository.Application{}, ErrInternal
	}

	job, err := u.jobs.GetByID(ctx, a.JobID)
	if err != nil {
		return repository.Application{}, ErrInternal
	}
	c, err := u.companies.GetByID(ctx, job.CompanyID)
	if err != nil {
		return repository.Application{}, ErrInternal
	}
	if c.OwnerID != recruiterID {
		return repository.Application{}, ErrForbidden
	}
	return a, nil
}

// checkParticipant allows both the candidate and the job's recruiter.
func (u *Interviews) checkParticipant(ctx context.Context, userID, applicationID uuid.UUID) error {
	if userID == uuid.Nil {
		return ErrUnauthorized
	}

	a, err := u.applications.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return ErrApplicationNotFound
		}
		return ErrInternal
	}
	if a.UserID == userID {
		return nil
	}

	_, err = u.recruiterApplication(ctx, userID, applicationID)
	return err
}
