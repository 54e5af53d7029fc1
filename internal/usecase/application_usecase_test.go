package usecase

import (
	"context"
	"errors"
	"testing"

	"talenthub/internal/domain/resume"
	"talenthub/internal/repository"

	"github.com/google/uuid"
)

func applicationFixtures() (uuid.UUID, resume.Resume, repository.Company, repository.Job) {
	userID := uuid.New()
	rs := resume.Resume{ID: uuid.New(), UserID: userID}
	company := repository.Company{ID: uuid.New(), OwnerID: uuid.New(), Name: "Acme"}
	job := repository.Job{ID: uuid.New(), CompanyID: company.ID, Title: "Backend", Status: repository.JobStatusActive}
	return userID, rs, company, job
}

func TestApplications_Apply_Success(t *testing.T) {
	userID, rs, company, job := applicationFixtures()

	apps := newFakeApplicationRepo()
	uc := NewApplicationUsecase(apps, newFakeJobRepo(job), newFakeResumeRepo(rs), newFakeCompanyRepo(company), nil)

	a, err := uc.Apply(context.Background(), userID, ApplyInput{JobID: job.ID, ResumeID: rs.ID})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if a.Status != repository.ApplicationStatusPending {
		t.Fatalf("expected pending status, got %q", a.Status)
	}
	if len(a.StatusHistory) != 1 || a.StatusHistory[0].Status != repository.ApplicationStatusPending {
		t.Fatalf("expected submission entry in history, got %+v", a.StatusHistory)
	}
}

func TestApplications_Apply_ClosedJob(t *testing.T) {
	userID, rs, company, job := applicationFixtures()
	job.Status = repository.JobStatusClosed

	uc := NewApplicationUsecase(newFakeApplicationRepo(), newFakeJobRepo(job), newFakeResumeRepo(rs), newFakeCompanyRepo(company), nil)

	_, err := uc.Apply(context.Background(), userID, ApplyInput{JobID: job.ID, ResumeID: rs.ID})
	if !errors.Is(err, ErrJobNotOpen) {
		t.Fatalf("expected ErrJobNotOpen, got %v", err)
	}
}

func TestApplications_Apply_EndingSoonJobStillOpen(t *testing.T) {
	userID, rs, company, job := applicationFixtures()
	job.Status = repository.JobStatusEndingSoon

	uc := NewApplicationUsecase(newFakeApplicationRepo(), newFakeJobRepo(job), newFakeResumeRepo(rs), newFakeCompanyRepo(company), nil)

	if _, err := uc.Apply(context.Background(), userID, ApplyInput{JobID: job.ID, ResumeID: rs.ID}); err != nil {
		t.Fatalf("ending-soon jobs accept applications until closed, got %v", err)
	}
}

func TestApplications_Apply_Duplicate(t *testing.T) {
	userID, rs, company, job := applicationFixtures()

	apps := newFakeApplicationRepo()
	apps.createErr = repository.ErrDuplicateApplication
	uc := NewApplicationUsecase(apps, newFakeJobRepo(job), newFakeResumeRepo(rs), newFakeCompanyRepo(company), nil)

	_, err := uc.Apply(context.Background(), userID, ApplyInput{JobID: job.ID, ResumeID: rs.ID})
	if !errors.Is(err, ErrAlreadyApplied) {
		t.Fatalf("expected ErrAlreadyApplied, got %v", err)
	}
}

func TestApplications_Apply_ForeignResume(t *testing.T) {
	userID, rs, company, job := applicationFixtures()
	rs.UserID = uuid.New()

	uc := NewApplicationUsecase(newFakeApplicationRepo(), newFakeJobRepo(job), newFakeResumeRepo(rs), newFakeCompanyRepo(company), nil)

	_, err := uc.Apply(context.Background(), userID, ApplyInput{JobID: job.ID, ResumeID: rs.ID})
	if !errors.Is(err, ErrResumeNotFound) {
		t.Fatalf("expected ErrResumeNotFound, got %v", err)
	}
}

func TestApplications_UpdateStatus_RecruiterOnly(t *testing.T) {
	userID, rs, company, job := applicationFixtures()

	a := repository.Application{
		ID: uuid.New(), JobID: job.ID, UserID: userID, ResumeID: rs.ID,
		Status:        repository.ApplicationStatusPending,
		StatusHistory: []repository.StatusChange{{Status: repository.ApplicationStatusPending}},
	}
	apps := newFakeApplicationRepo(a)
	notifier := &fakeNotifier{}
	uc := NewApplicationUsecase(apps, newFakeJobRepo(job), newFakeResumeRepo(rs), newFakeCompanyRepo(company), notifier)

	// A random user is not the job's recruiter.
	if _, err := uc.UpdateStatus(context.Background(), uuid.New(), a.ID, repository.ApplicationStatusReviewed, ""); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	out, err := uc.UpdateStatus(context.Background(), company.OwnerID, a.ID, repository.ApplicationStatusReviewed, "looks solid")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out.Status != repository.ApplicationStatusReviewed {
		t.Fatalf("expected reviewed status, got %q", out.Status)
	}
	if len(out.StatusHistory) != 2 {
		t.Fatalf("expected appended history entry, got %+v", out.StatusHistory)
	}
	if len(notifier.calls) != 1 || notifier.calls[0].UserID != userID {
		t.Fatalf("candidate must be notified of the status change")
	}
}

func TestApplications_UpdateStatus_InvalidStatus(t *testing.T) {
	_, _, company, job := applicationFixtures()

	uc := NewApplicationUsecase(newFakeApplicationRepo(), newFakeJobRepo(job), newFakeResumeRepo(), newFakeCompanyRepo(company), nil)
	if _, err := uc.UpdateStatus(context.Background(), company.OwnerID, uuid.New(), "promoted", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
