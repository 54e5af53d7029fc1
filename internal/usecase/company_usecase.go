package usecase

import (
	"context"
	"errors"
	"strings"

	"talenthub/internal/repository"

	"github.com/google/uuid"
)

var ErrCompanyNotFound = errors.New("company not found")

type CompanyInput struct {
	Name        string
	Website     string
	Industry    string
	Description string
	LogoURL     string
}

type CompanyUsecase interface {
	Create(ctx context.Context, ownerID uuid.UUID, in CompanyInput) (repository.Company, error)
	Get(ctx context.Context, id uuid.UUID) (repository.Company, error)
	List(ctx context.Context, limit, offset int) ([]repository.Company, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, in CompanyInput) (repository.Company, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type Companies struct {
	repo repository.CompanyRepository
}

func NewCompanyUsecase(repo repository.CompanyRepository) *Companies {
	return &Companies{repo: repo}
}

func (u *Companies) Create(ctx context.Context, ownerID uuid.UUID, in CompanyInput) (repository.Company, error) {
	if ownerID == uuid.Nil {
		return repository.Company{}, ErrUnauthorized
	}
	if strings.TrimSpace(in.Name) == "" {
		return repository.Company{}, ErrInvalidInput
	}

	c := repository.Company{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Name:        strings.TrimSpace(in.Name),
		Website:     strings.TrimSpace(in.Website),
		Industry:    strings.TrimSpace(in.Industry),
		Description: in.Description,
		LogoURL:     strings.TrimSpace(in.LogoURL),
	}
	if err := u.repo.Create(ctx, c); err != nil {
		return repository.Company{}, ErrInternal
	}

	created, err := u.repo.GetByID(ctx, c.ID)
	if err != nil {
		return repository.Company{}, ErrInternal
	}
	return created, nil
}

func (u *Companies) Get(ctx context.Context, id uuid.UUID) (repository.Company, error) {
	c, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			return repository.Company{}, ErrCompanyNotFound
		}
		return repository.Company{}, ErrInternal
	}
	return c, nil
}

func (u *Companies) List(ctx context.Context, limit, offset int) ([]repository.Company, error) {
	out, err := u.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Companies) Update(ctx context.Context, ownerID, id uuid.UUID, in CompanyInput) (repository.Company, error) {
	c, err := u.ownedCompany(ctx, ownerID, id)
	if err != nil {
		return repository.Company{}, err
	}

	if strings.TrimSpace(in.Name) != "" {
		c.Name = strings.TrimSpace(in.Name)
	}
	c.Website = strings.TrimSpace(in.Website)
	c.Industry = strings.TrimSpace(in.Industry)
	c.Description = in.Description
	c.LogoURL = strings.TrimSpace(in.LogoURL)

	if err := u.repo.Update(ctx, c); err != nil {
		return repository.Company{}, ErrInternal
	}
	return c, nil
}

func (u *Companies) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if _, err := u.ownedCompany(ctx, ownerID, id); err != nil {
		return err
	}
	if err := u.repo.Delete(ctx, id); err != nil {
		return ErrInternal
	}
	return nil
}

func (u *Companies) ownedCompany(ctx context.Context, ownerID, id uuid.UUID) (repository.Company, error) {
	c, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			return repository.Company{}, ErrCompanyNotFound
		}
		return repository.Company{}, ErrInternal
	}
	if c.OwnerID != ownerID {
		return repository.Company{}, ErrForbidden
	}
	return c, nil
}
