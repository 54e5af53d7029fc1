package repository

import (
	"context"
	"errors"
	"time"

	"talenthub/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrInterviewNotFound = errors.New("interview not found")

const (
	InterviewStatusScheduled   = "Scheduled"
	InterviewStatusCompleted   = "Completed"
	InterviewStatusCancelled   = "Cancelled"
	InterviewStatusRescheduled = "Rescheduled"
)

func ValidInterviewStatus(s string) bool {
	switch s {
	case InterviewStatusScheduled, InterviewStatusCompleted, InterviewStatusCancelled, InterviewStatusRescheduled:
		return true
	}
	return false
}

type Interview struct {
	ID            uuid.UUID `json:"id"`
	ApplicationID uuid.UUID `json:"application_id"`
	ScheduledAt   time.Time `json:"scheduled_at"`
	Location      string    `json:"location"`
	MeetingLink   string    `json:"meeting_link"`
	Status        string    `json:"status"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type InterviewRepository interface {
	Create(ctx context.Context, iv Interview) error
	GetByID(ctx context.Context, id uuid.UUID) (Interview, error)
	ListByApplicationID(ctx context.Context, applicationID uuid.UUID) ([]Interview, error)
	Update(ctx context.Context, iv Interview) error
}

type PostgresInterviewRepository struct {
	db database.DB
}

func NewPostgresInterviewRepository(db database.DB) *PostgresInterviewRepository {
	return &PostgresInterviewRepository{db: db}
}

const interviewColumns = `id, application_id, scheduled_at, location, meeting_link, status, notes, created_at, updated_at`

func (r *PostgresInterviewRepository) Create(ctx context.Context, iv Interview) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO interviews (id, application_id, scheduled_at, location, meeting_link, status, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		iv.ID, iv.ApplicationID, iv.ScheduledAt, iv.Location, iv.MeetingLink, iv.Status, iv.Notes,
	)
	return err
}

func (r *PostgresInterviewRepository) GetByID(ctx context.Context, id uuid.UUID) (Interview, error) {
	row := r.db.QueryRow(ctx, `SELECT `+interviewColumns+` FROM interviews WHERE id = $1`, id)

	var iv Interview
	err := row.Scan(&iv.ID, &iv.ApplicationID, &iv.ScheduledAt, &iv.Location, &iv.MeetingLink,
		&iv.Status, &iv.Notes, &iv.CreatedAt, &iv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Interview{}, ErrInterviewNotFound
		}
		return Interview{}, err
	}
	return iv, nil
}

func (r *PostgresInterviewRepository) ListByApplicationID(ctx context.Context, applicationID uuid.UUID) ([]Interview, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+interviewColumns+` FROM interviews WHERE application_id = $1 ORDER BY scheduled_at`, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Interview, 0)
	for rows.Next() {
		var iv Interview
		if err := rows.Scan(&iv.ID, &iv.ApplicationID, &iv.ScheduledAt, &iv.Location, &iv.MeetingLink,
			&iv.Status, &iv.Notes, &iv.CreatedAt, &iv.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, iv)
	}
	return out, rows.Err()
}

func (r *PostgresInterviewRepository) Update(ctx context.Context, iv Interview) error {
	n, err := r.db.Exec(ctx,
		`UPDATE interviews
		 SET scheduled_at = $2, location = $3, meeting_link = $4, status = $5, notes = $6, updated_at = now()
		 WHERE id = $1`,
		iv.ID, iv.ScheduledAt, iv.Location, iv.MeetingLink, iv.Status, iv.Notes,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrInterviewNotFound
	}
	return nil
}
