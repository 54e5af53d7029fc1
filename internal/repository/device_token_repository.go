package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"talenthub/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrDeviceTokenNotFound = errors.New("device token not found")

type DeviceToken struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Token     string    `json:"token"`
	Platform  string    `json:"platform"`
	CreatedAt time.Time `json:"created_at"`
}

type DeviceTokenRepository interface {
	FindOrInsert(ctx context.Context, t DeviceToken) (DeviceToken, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]DeviceToken, error)
	Delete(ctx context.Context, userID uuid.UUID, token string) error
}

// PostgresDeviceTokenRepository serializes find-or-insert behind its own
// lock so two concurrent registrations of the same token cannot both pass
// the lookup and race into the insert. The lock is owned by the repository
// instance, not the package.
type PostgresDeviceTokenRepository struct {
	db database.DB
	mu *sync.Mutex
}

func NewPostgresDeviceTokenRepository(db database.DB, mu *sync.Mutex) *PostgresDeviceTokenRepository {
	if mu == nil {
		mu = &sync.Mutex{}
	}
	return &PostgresDeviceTokenRepository{db: db, mu: mu}
}

func (r *PostgresDeviceTokenRepository) FindOrInsert(ctx context.Context, t DeviceToken) (DeviceToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, token, platform, created_at
		 FROM device_tokens WHERE user_id = $1 AND token = $2`,
		t.UserID, t.Token,
	)

	var existing DeviceToken
	err := row.Scan(&existing.ID, &existing.UserID, &existing.Token, &existing.Platform, &existing.CreatedAt)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return DeviceToken{}, err
	}

	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO device_tokens (id, user_id, token, platform) VALUES ($1, $2, $3, $4)`,
		t.ID, t.UserID, t.Token, t.Platform,
	)
	if err != nil {
		return DeviceToken{}, err
	}
	return t, nil
}

func (r *PostgresDeviceTokenRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]DeviceToken, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, token, platform, created_at FROM device_tokens WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]DeviceToken, 0)
	for rows.Next() {
		var t DeviceToken
		if err := rows.Scan(&t.ID, &t.UserID, &t.Token, &t.Platform, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *PostgresDeviceTokenRepository) Delete(ctx context.Context, userID uuid.UUID, token string) error {
	n, err := r.db.Exec(ctx,
		`DELETE FROM device_tokens WHERE user_id = $1 AND token = $2`, userID, token)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrDeviceTokenNotFound
	}
	return nil
}
