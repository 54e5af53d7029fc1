package repository

import (
	"context"
	"errors"
	"time"

	"talenthub/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrMatchNotFound  = errors.New("match not found")
	ErrDuplicateMatch = errors.New("match already exists for user and job")
)

type Match struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	ResumeID    uuid.UUID `json:"resume_id"`
	JobID       uuid.UUID `json:"job_id"`
	MatchScore  int       `json:"match_score"`
	Explanation string    `json:"explanation"`
	CreatedAt   time.Time `json:"created_at"`
}

type MatchRepository interface {
	Create(ctx context.Context, m Match) error
	GetByID(ctx context.Context, id uuid.UUID) (Match, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]Match, error)
	MatchedJobIDs(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]struct{}, error)
}

type PostgresMatchRepository struct {
	db database.DB
}

func NewPostgresMatchRepository(db database.DB) *PostgresMatchRepository {
	return &PostgresMatchRepository{db: db}
}

func (r *PostgresMatchRepository) Create(ctx context.Context, m Match) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO matches (id, user_id, resume_id, job_id, match_score, explanation)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		m.ID, m.UserID, m.ResumeID, m.JobID, m.MatchScore, m.Explanation,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23505: unique_violation on (user_id, job_id)
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateMatch
		}
		return err
	}
	return nil
}

func (r *PostgresMatchRepository) GetByID(ctx context.Context, id uuid.UUID) (Match, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, resume_id, job_id, match_score, explanation, created_at
		 FROM matches WHERE id = $1`, id)

	var m Match
	err := row.Scan(&m.ID, &m.UserID, &m.ResumeID, &m.JobID, &m.MatchScore, &m.Explanation, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Match{}, ErrMatchNotFound
		}
		return Match{}, err
	}
	return m, nil
}

func (r *PostgresMatchRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]Match, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, resume_id, job_id, match_score, explanation, created_at
		 FROM matches WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Match, 0)
	for rows.Next() {
		var m Match
		if err := rows.Scan(&m.ID, &m.UserID, &m.ResumeID, &m.JobID, &m.MatchScore, &m.Explanation, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *PostgresMatchRepository) MatchedJobIDs(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	rows, err := r.db.Query(ctx, `SELECT job_id FROM matches WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uuid.UUID]struct{})
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = struct{}{}
	}
	return out, rows.Err()
}
