package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"talenthub/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrApplicationNotFound  = errors.New("application not found")
	ErrDuplicateApplication = errors.New("user already applied to job")
)

const (
	ApplicationStatusPending     = "Pending"
	ApplicationStatusReviewed    = "Reviewed"
	ApplicationStatusShortlisted = "Shortlisted"
	ApplicationStatusRejected    = "Rejected"
	ApplicationStatusHired       = "Hired"
)

func ValidApplicationStatus(s string) bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusReviewed, ApplicationStatusShortlisted,
		ApplicationStatusRejected, ApplicationStatusHired:
		return true
	}
	return false
}

// StatusChange is one audit entry; any status may follow any other, the
// history records what happened rather than enforcing a transition matrix.
type StatusChange struct {
	Status    string    `json:"status"`
	Note      string    `json:"note"`
	ChangedAt time.Time `json:"changed_at"`
}

type Application struct {
	ID            uuid.UUID      `json:"id"`
	JobID         uuid.UUID      `json:"job_id"`
	UserID        uuid.UUID      `json:"user_id"`
	ResumeID      uuid.UUID      `json:"resume_id"`
	CoverLetter   string         `json:"cover_letter"`
	Status        string         `json:"status"`
	StatusHistory []StatusChange `json:"status_history"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

type ApplicationRepository interface {
	Create(ctx context.Context, a Application) error
	GetByID(ctx context.Context, id uuid.UUID) (Application, error)
	ListByJobID(ctx context.Context, jobID uuid.UUID) ([]Application, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]Application, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, history []StatusChange) error
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

const applicationColumns = `id, job_id, user_id, resume_id, cover_letter, status, status_history, created_at, updated_at`

func (r *PostgresApplicationRepository) Create(ctx context.Context, a Application) error {
	history, err := json.Marshal(emptySlice(a.StatusHistory))
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO applications (id, job_id, user_id, resume_id, cover_letter, status, status_history)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.JobID, a.UserID, a.ResumeID, a.CoverLetter, a.Status, history,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateApplication
		}
		return err
	}
	return nil
}

func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (Application, error) {
	row := r.db.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	a, err := scanApplication(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Application{}, ErrApplicationNotFound
		}
		return Application{}, err
	}
	return a, nil
}

func (r *PostgresApplicationRepository) ListByJobID(ctx context.Context, jobID uuid.UUID) ([]Application, error) {
	return r.list(ctx, `SELECT `+applicationColumns+` FROM applications WHERE job_id = $1 ORDER BY created_at DESC`, jobID)
}

func (r *PostgresApplicationRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]Application, error) {
	return r.list(ctx, `SELECT `+applicationColumns+` FROM applications WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *PostgresApplicationRepository) list(ctx context.Context, query string, arg any) ([]Application, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, history []StatusChange) error {
	b, err := json.Marshal(emptySlice(history))
	if err != nil {
		return err
	}
	n, err := r.db.Exec(ctx,
		`UPDATE applications SET status = $2, status_history = $3, updated_at = now() WHERE id = $1`,
		id, status, b,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func scanApplication(scan func(dest ...any) error) (Application, error) {
	var a Application
	var history []byte
	err := scan(&a.ID, &a.JobID, &a.UserID, &a.ResumeID, &a.CoverLetter, &a.Status, &history, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return Application{}, err
	}
	if err := json.Unmarshal(history, &a.StatusHistory); err != nil {
		return Application{}, err
	}
	return a, nil
}
