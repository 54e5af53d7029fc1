package repository

import (
	"context"
	"errors"
	"time"

	"talenthub/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrJobNotFound = errors.New("job not found")

const (
	JobStatusActive     = "Active"
	JobStatusEndingSoon = "Ending Soon"
	JobStatusClosed     = "Closed"
)

var ExperienceLevels = []string{"Internship", "Junior", "Mid-Level", "Senior", "Lead"}

func ValidJobStatus(s string) bool {
	return s == JobStatusActive || s == JobStatusEndingSoon || s == JobStatusClosed
}

func ValidExperienceLevel(level string) bool {
	for _, l := range ExperienceLevels {
		if l == level {
			return true
		}
	}
	return false
}

type Job struct {
	ID               uuid.UUID  `json:"id"`
	CompanyID        uuid.UUID  `json:"company_id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	HardSkills       []string   `json:"hard_skills"`
	SoftSkills       []string   `json:"soft_skills"`
	ExperienceLevel  string     `json:"experience_level"`
	Industry         string     `json:"industry"`
	Location         string     `json:"location"`
	SalaryMin        int        `json:"salary_min"`
	SalaryMax        int        `json:"salary_max"`
	Status           string     `json:"status"`
	Deadline         *time.Time `json:"deadline,omitempty"`
	Views            int64      `json:"views"`
	ApplicationCount int64      `json:"application_count"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type JobListFilter struct {
	Status          string
	Industry        string
	ExperienceLevel string
	CompanyID       uuid.UUID
	Limit           int
	Offset          int
}

type JobRepository interface {
	Create(ctx context.Context, j Job) error
	GetByID(ctx context.Context, id uuid.UUID) (Job, error)
	List(ctx context.Context, f JobListFilter) ([]Job, error)
	ListActive(ctx context.Context) ([]Job, error)
	Update(ctx context.Context, j Job) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error

	IncrementViews(ctx context.Context, id uuid.UUID) error
	IncrementApplicationCount(ctx context.Context, id uuid.UUID) error

	MarkEndingSoon(ctx context.Context, within time.Duration) (int64, error)
	CloseExpired(ctx context.Context) (int64, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobColumns = `id, company_id, title, description, hard_skills, soft_skills, experience_level,
	industry, location, salary_min, salary_max, status, deadline, views, application_count,
	created_at, updated_at`

func (r *PostgresJobRepository) Create(ctx context.Context, j Job) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO jobs (id, company_id, title, description, hard_skills, soft_skills,
			experience_level, industry, location, salary_min, salary_max, status, deadline)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		j.ID, j.CompanyID, j.Title, j.Description, j.HardSkills, j.SoftSkills,
		j.ExperienceLevel, j.Industry, j.Location, j.SalaryMin, j.SalaryMax, j.Status, j.Deadline,
	)
	return err
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (Job, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	return scanJobRow(row)
}

func (r *PostgresJobRepository) List(ctx context.Context, f JobListFilter) ([]Job, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+jobColumns+`
		 FROM jobs
		 WHERE ($1 = '' OR status = $1)
		   AND ($2 = '' OR industry = $2)
		   AND ($3 = '' OR experience_level = $3)
		   AND ($4::uuid IS NULL OR company_id = $4)
		 ORDER BY created_at DESC
		 LIMIT $5 OFFSET $6`,
		f.Status, f.Industry, f.ExperienceLevel, nullableUUID(f.CompanyID), limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectJobs(rows)
}

func (r *PostgresJobRepository) ListActive(ctx context.Context) ([]Job, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE status = $1 ORDER BY created_at DESC`,
		JobStatusActive,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectJobs(rows)
}

func (r *PostgresJobRepository) Update(ctx context.Context, j Job) error {
	n, err := r.db.Exec(ctx,
		`UPDATE jobs
		 SET title = $2, description = $3, hard_skills = $4, soft_skills = $5,
		     experience_level = $6, industry = $7, location = $8, salary_min = $9,
		     salary_max = $10, status = $11, deadline = $12, updated_at = now()
		 WHERE id = $1`,
		j.ID, j.Title, j.Description, j.HardSkills, j.SoftSkills,
		j.ExperienceLevel, j.Industry, j.Location, j.SalaryMin,
		j.SalaryMax, j.Status, j.Deadline,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *PostgresJobRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	n, err := r.db.Exec(ctx,
		`UPDATE jobs SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *PostgresJobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *PostgresJobRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `UPDATE jobs SET views = views + 1 WHERE id = $1`, id)
	return err
}

func (r *PostgresJobRepository) IncrementApplicationCount(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `UPDATE jobs SET application_count = application_count + 1 WHERE id = $1`, id)
	return err
}

// MarkEndingSoon flips active jobs whose deadline falls within the window.
func (r *PostgresJobRepository) MarkEndingSoon(ctx context.Context, within time.Duration) (int64, error) {
	return r.db.Exec(ctx,
		`UPDATE jobs
		 SET status = $1, updated_at = now()
		 WHERE status = $2 AND deadline IS NOT NULL AND deadline <= now() + $3::interval`,
		JobStatusEndingSoon, JobStatusActive, within.String(),
	)
}

// CloseExpired closes any non-closed job whose deadline has passed.
func (r *PostgresJobRepository) CloseExpired(ctx context.Context) (int64, error) {
	return r.db.Exec(ctx,
		`UPDATE jobs
		 SET status = $1, updated_at = now()
		 WHERE status <> $1 AND deadline IS NOT NULL AND deadline < now()`,
		JobStatusClosed,
	)
}

func collectJobs(rows database.Rows) ([]Job, error) {
	out := make([]Job, 0)
	for rows.Next() {
		var j Job
		err := rows.Scan(&j.ID, &j.CompanyID, &j.Title, &j.Description, &j.HardSkills, &j.SoftSkills,
			&j.ExperienceLevel, &j.Industry, &j.Location, &j.SalaryMin, &j.SalaryMax, &j.Status,
			&j.Deadline, &j.Views, &j.ApplicationCount, &j.CreatedAt, &j.UpdatedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func scanJobRow(row database.Row) (Job, error) {
	var j Job
	err := row.Scan(&j.ID, &j.CompanyID, &j.Title, &j.Description, &j.HardSkills, &j.SoftSkills,
		&j.ExperienceLevel, &j.Industry, &j.Location, &j.SalaryMin, &j.SalaryMax, &j.Status,
		&j.Deadline, &j.Views, &j.ApplicationCount, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Job{}, ErrJobNotFound
		}
		return Job{}, err
	}
	return j, nil
}

func nullableUUID(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}
