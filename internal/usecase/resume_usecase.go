package usecase

import (
	"context"
	"errors"
	"strings"

	"talenthub/internal/domain/resume"
	"talenthub/internal/repository"

	"github.com/google/uuid"
)

var ErrResumeNotFound = errors.New("resume not found")

type ResumeUsecase interface {
	Create(ctx context.Context, userID uuid.UUID, in resume.Resume) (resume.Resume, error)
	Get(ctx context.Context, userID, id uuid.UUID) (resume.Resume, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]resume.Resume, error)
	Update(ctx context.Context, userID, id uuid.UUID, in resume.Resume) (resume.Resume, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type Resumes struct {
	repo repository.ResumeRepository
}

func NewResumeUsecase(repo repository.ResumeRepository) *Resumes {
	return &Resumes{repo: repo}
}

func (u *Resumes) Create(ctx context.Context, userID uuid.UUID, in resume.Resume) (resume.Resume, error) {
	if userID == uuid.Nil {
		return resume.Resume{}, ErrUnauthorized
	}
	if strings.TrimSpace(in.Title) == "" && in.PersonalInfo == (resume.PersonalInfo{}) {
		return resume.Resume{}, ErrInvalidInput
	}

	in.ID = uuid.New()
	in.UserID = userID
	in.CompletionPercentage = in.CalculateCompletion()

	if err := u.repo.Create(ctx, in); err != nil {
		return resume.Resume{}, ErrInternal
	}

	created, err := u.repo.GetByID(ctx, in.ID)
	if err != nil {
		return resume.Resume{}, ErrInternal
	}
	return created, nil
}

func (u *Resumes) Get(ctx context.Context, userID, id uuid.UUID) (resume.Resume, error) {
	return u.ownedResume(ctx, userID, id)
}

func (u *Resumes) ListByUser(ctx context.Context, userID uuid.UUID) ([]resume.Resume, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	out, err := u.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

// Update replaces the resume contents and recomputes the completion
// percentage, so the stored value always reflects the stored sections.
func (u *Resumes) Update(ctx context.Context, userID, id uuid.UUID, in resume.Resume) (resume.Resume, error) {
	existing, err := u.ownedResume(ctx, userID, id)
	if err != nil {
		return resume.Resume{}, err
	}

	in.ID = existing.ID
	in.UserID = existing.UserID
	in.CreatedAt = existing.CreatedAt
	in.CompletionPercentage = in.CalculateCompletion()

	if err := u.repo.Update(ctx, in); err != nil {
		return resume.Resume{}, ErrInternal
	}

	updated, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return resume.Resume{}, ErrInternal
	}
	return updated, nil
}

func (u *Resumes) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := u.ownedResume(ctx, userID, id); err != nil {
		return err
	}
	if err := u.repo.Delete(ctx, id); err != nil {
		return ErrInternal
	}
	return nil
}

func (u *Resumes) ownedResume(ctx context.Context, userID, id uuid.UUID) (resume.Resume, error) {
	if userID == uuid.Nil {
		return resume.Resume{}, ErrUnauthorized
	}
	rs, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrResumeNotFound) {
			return resume.Resume{}, ErrResumeNotFound
		}
		return resume.Resume{}, ErrInternal
	}
	if rs.UserID != userID {
		return resume.Resume{}, ErrResumeNotFound
	}
	return rs, nil
}
