package repository

import (
	"context"
	"errors"
	"time"

	"talenthub/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrCompanyNotFound = errors.New("company not found")

type Company struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Name        string    `json:"name"`
	Website     string    `json:"website"`
	Industry    string    `json:"industry"`
	Description string    `json:"description"`
	LogoURL     string    `json:"logo_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CompanyRepository interface {
	Create(ctx context.Context, c Company) error
	GetByID(ctx context.Context, id uuid.UUID) (Company, error)
	GetByOwnerID(ctx context.Context, ownerID uuid.UUID) (Company, error)
	List(ctx context.Context, limit, offset int) ([]Company, error)
	Update(ctx context.Context, c Company) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresCompanyRepository struct {
	db database.DB
}

func NewPostgresCompanyRepository(db database.DB) *PostgresCompanyRepository {
	return &PostgresCompanyRepository{db: db}
}

const companyColumns = `id, owner_id, name, website, industry, description, logo_url, created_at, updated_at`

func (r *PostgresCompanyRepository) Create(ctx context.Context, c Company) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO companies (id, owner_id, name, website, industry, description, logo_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.OwnerID, c.Name, c.Website, c.Industry, c.Description, c.LogoURL,
	)
	return err
}

func (r *PostgresCompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (Company, error) {
	row := r.db.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
	return scanCompany(row)
}

func (r *PostgresCompanyRepository) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) (Company, error) {
	row := r.db.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE owner_id = $1`, ownerID)
	return scanCompany(row)
}

func (r *PostgresCompanyRepository) List(ctx context.Context, limit, offset int) ([]Company, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+companyColumns+` FROM companies ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Company, 0)
	for rows.Next() {
		c, err := scanCompanyRows(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresCompanyRepository) Update(ctx context.Context, c Company) error {
	n, err := r.db.Exec(ctx,
		`UPDATE companies
		 SET name = $2, website = $3, industry = $4, description = $5, logo_url = $6, updated_at = now()
		 WHERE id = $1`,
		c.ID, c.Name, c.Website, c.Industry, c.Description, c.LogoURL,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCompanyNotFound
	}
	return nil
}

func (r *PostgresCompanyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCompanyNotFound
	}
	return nil
}

func scanCompany(row database.Row) (Company, error) {
	var c Company
	err := row.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Website, &c.Industry, &c.Description, &c.LogoURL, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Company{}, ErrCompanyNotFound
		}
		return Company{}, err
	}
	return c, nil
}

func scanCompanyRows(rows database.Rows) (Company, error) {
	var c Company
	err := rows.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Website, &c.Industry, &c.Description, &c.LogoURL, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}
