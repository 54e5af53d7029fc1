package repository

import (
	"context"
	"errors"

	"talenthub/internal/database"
	"talenthub/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) CreateUser(ctx context.Context, u user.User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, name, role, email_verified)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID, u.Email, u.PasswordHash, u.Name, u.Role, u.EmailVerified,
	)
	return err
}

func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, email, password_hash, name, role, email_verified, created_at, updated_at
		 FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *PostgresUserRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, email, password_hash, name, role, email_verified, created_at, updated_at
		 FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresUserRepository) MarkEmailVerified(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx,
		`UPDATE users SET email_verified = TRUE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	n, err := r.db.Exec(ctx,
		`UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`, id, passwordHash)
	if err != nil {
		return err
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) CreateAuthToken(ctx context.Context, t user.AuthToken) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO auth_tokens (id, user_id, token, purpose, expires_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		t.ID, t.UserID, t.Token, t.Purpose, t.ExpiresAt,
	)
	return err
}

// ConsumeAuthToken deletes the token and returns it, so a token can be used
// exactly once. Expired tokens are treated as absent.
func (r *PostgresUserRepository) ConsumeAuthToken(ctx context.Context, token, purpose string) (user.AuthToken, error) {
	row := r.db.QueryRow(ctx,
		`DELETE FROM auth_tokens
		 WHERE token = $1 AND purpose = $2 AND expires_at > now()
		 RETURNING id, user_id, token, purpose, expires_at`,
		token, purpose,
	)

	var t user.AuthToken
	if err := row.Scan(&t.ID, &t.UserID, &t.Token, &t.Purpose, &t.ExpiresAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.AuthToken{}, user.ErrNotFound
		}
		return user.AuthToken{}, err
	}
	return t, nil
}

func scanUser(row database.Row) (user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.EmailVerified, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}
