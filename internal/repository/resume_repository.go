package repository

import (
	"context"
	"encoding/json"
	"errors"

	"talenthub/internal/database"
	"talenthub/internal/domain/resume"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrResumeNotFound = errors.New("resume not found")

type ResumeRepository interface {
	Create(ctx context.Context, r resume.Resume) error
	GetByID(ctx context.Context, id uuid.UUID) (resume.Resume, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]resume.Resume, error)
	Update(ctx context.Context, r resume.Resume) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresResumeRepository struct {
	db database.DB
}

func NewPostgresResumeRepository(db database.DB) *PostgresResumeRepository {
	return &PostgresResumeRepository{db: db}
}

const resumeColumns = `id, user_id, title, personal_info, summary, education, experience,
	certifications, projects, skills, languages, hobbies, website, linkedin, github,
	photo_url, completion_percentage, created_at, updated_at`

func (r *PostgresResumeRepository) Create(ctx context.Context, rs resume.Resume) error {
	pi, edu, exp, certs, projs, err := marshalResumeSections(rs)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO resumes (id, user_id, title, personal_info, summary, education, experience,
			certifications, projects, skills, languages, hobbies, website, linkedin, github,
			photo_url, completion_percentage)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		rs.ID, rs.UserID, rs.Title, pi, rs.Summary, edu, exp, certs, projs,
		rs.Skills, rs.Languages, rs.Hobbies, rs.Website, rs.LinkedIn, rs.GitHub,
		rs.PhotoURL, rs.CompletionPercentage,
	)
	return err
}

func (r *PostgresResumeRepository) GetByID(ctx context.Context, id uuid.UUID) (resume.Resume, error) {
	row := r.db.QueryRow(ctx, `SELECT `+resumeColumns+` FROM resumes WHERE id = $1`, id)
	rs, err := scanResume(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return resume.Resume{}, ErrResumeNotFound
		}
		return resume.Resume{}, err
	}
	return rs, nil
}

func (r *PostgresResumeRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]resume.Resume, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]resume.Resume, 0)
	for rows.Next() {
		rs, err := scanResume(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, rs)
	}
	return out, rows.Err()
}

func (r *PostgresResumeRepository) Update(ctx context.Context, rs resume.Resume) error {
	pi, edu, exp, certs, projs, err := marshalResumeSections(rs)
	if err != nil {
		return err
	}
	n, err := r.db.Exec(ctx,
		`UPDATE resumes
		 SET title = $2, personal_info = $3, summary = $4, education = $5, experience = $6,
		     certifications = $7, projects = $8, skills = $9, languages = $10, hobbies = $11,
		     website = $12, linkedin = $13, github = $14, photo_url = $15,
		     completion_percentage = $16, updated_at = now()
		 WHERE id = $1`,
		rs.ID, rs.Title, pi, rs.Summary, edu, exp, certs, projs,
		rs.Skills, rs.Languages, rs.Hobbies, rs.Website, rs.LinkedIn, rs.GitHub,
		rs.PhotoURL, rs.CompletionPercentage,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrResumeNotFound
	}
	return nil
}

func (r *PostgresResumeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrResumeNotFound
	}
	return nil
}

func marshalResumeSections(rs resume.Resume) (pi, edu, exp, certs, projs []byte, err error) {
	if pi, err = json.Marshal(rs.PersonalInfo); err != nil {
		return
	}
	if edu, err = json.Marshal(emptySlice(rs.Education)); err != nil {
		return
	}
	if exp, err = json.Marshal(emptySlice(rs.Experience)); err != nil {
		return
	}
	if certs, err = json.Marshal(emptySlice(rs.Certifications)); err != nil {
		return
	}
	projs, err = json.Marshal(emptySlice(rs.Projects))
	return
}

// emptySlice keeps JSONB columns as [] instead of null for nil slices.
func emptySlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func scanResume(scan func(dest ...any) error) (resume.Resume, error) {
	var rs resume.Resume
	var pi, edu, exp, certs, projs []byte

	err := scan(&rs.ID, &rs.UserID, &rs.Title, &pi, &rs.Summary, &edu, &exp,
		&certs, &projs, &rs.Skills, &rs.Languages, &rs.Hobbies,
		&rs.Website, &rs.LinkedIn, &rs.GitHub, &rs.PhotoURL,
		&rs.CompletionPercentage, &rs.CreatedAt, &rs.UpdatedAt)
	if err != nil {
		return resume.Resume{}, err
	}

	if err := json.Unmarshal(pi, &rs.PersonalInfo); err != nil {
		return resume.Resume{}, err
	}
	if err := json.Unmarshal(edu, &rs.Education); err != nil {
		return resume.Resume{}, err
	}
	if err := json.Unmarshal(exp, &rs.Experience); err != nil {
		return resume.Resume{}, err
	}
	if err := json.Unmarshal(certs, &rs.Certifications); err != nil {
		return resume.Resume{}, err
	}
	if err := json.Unmarshal(projs, &rs.Projects); err != nil {
		return resume.Resume{}, err
	}
	return rs, nil
}
