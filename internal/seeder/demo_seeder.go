package seeder

import (
	"context"
	"fmt"

	"talenthub/internal/database"
	"talenthub/internal/domain/user"
	"talenthub/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// demoPassword is for local environments only.
const demoPassword = "talenthub-demo"

type DemoSeeder struct{}

func (DemoSeeder) Name() string { return "demo" }

func (DemoSeeder) Run(ctx context.Context, db database.DB) error {
	recruiterID, err := ensureUser(ctx, db, "recruiter@talenthub.local", "Rina Recruiter", user.RoleRecruiter)
	if err != nil {
		return err
	}
	if _, err := ensureUser(ctx, db, "candidate@talenthub.local", "Candra Candidate", user.RoleCandidate); err != nil {
		return err
	}

	companyID, err := ensureCompany(ctx, db, recruiterID, "TalentHub Labs", "Software")
	if err != nil {
		return err
	}

	jobs := []struct {
		Title           string
		Description     string
		HardSkills      []string
		ExperienceLevel string
		Location        string
	}{
		{
			Title:           "Backend Engineer (Go)",
			Description:     "Build and operate Go services backed by PostgreSQL and Redis.",
			HardSkills:      []string{"Go", "PostgreSQL", "Redis"},
			ExperienceLevel: "Mid-Level",
			Location:        "Jakarta, ID",
		},
		{
			Title:           "Frontend Engineer (React)",
			Description:     "Ship product features in React and TypeScript against a REST API.",
			HardSkills:      []string{"React", "TypeScript"},
			ExperienceLevel: "Junior",
			Location:        "Remote",
		},
		{
			Title:           "Data Engineer",
			Description:     "Design data pipelines and keep the analytics warehouse healthy.",
			HardSkills:      []string{"Python", "SQL", "Airflow"},
			ExperienceLevel: "Senior",
			Location:        "Bandung, ID",
		},
	}

	for _, j := range jobs {
		if err := ensureJob(ctx, db, companyID, j.Title, j.Description, j.HardSkills, j.ExperienceLevel, j.Location); err != nil {
			return err
		}
	}
	return nil
}

func ensureUser(ctx context.Context, db database.DB, email, name, role string) (uuid.UUID, error) {
	row := db.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, email)
	var id uuid.UUID
	if err := row.Scan(&id); err == nil {
		return id, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return uuid.Nil, err
	}

	id = uuid.New()
	_, err = db.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, name, role, email_verified)
		 VALUES ($1, $2, $3, $4, $5, true)
		 ON CONFLICT (email) DO NOTHING`,
		id, email, string(hash), name, role,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("seed user %s: %w", email, err)
	}
	return id, nil
}

func ensureCompany(ctx context.Context, db database.DB, ownerID uuid.UUID, name, industry string) (uuid.UUID, error) {
	row := db.QueryRow(ctx, `SELECT id FROM companies WHERE name = $1`, name)
	var id uuid.UUID
	if err := row.Scan(&id); err == nil {
		return id, nil
	}

	id = uuid.New()
	_, err := db.Exec(ctx,
		`INSERT INTO companies (id, owner_id, name, industry, description)
		 VALUES ($1, $2, $3, $4, $5)`,
		id, ownerID, name, industry, "Demo company seeded for local development.",
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("seed company %s: %w", name, err)
	}
	return id, nil
}

func ensureJob(ctx context.Context, db database.DB, companyID uuid.UUID, title, description string, hardSkills []string, level, location string) error {
	row := db.QueryRow(ctx, `SELECT id FROM jobs WHERE company_id = $1 AND title = $2`, companyID, title)
	var existing uuid.UUID
	if err := row.Scan(&existing); err == nil {
		return nil
	}

	_, err := db.Exec(ctx,
		`INSERT INTO jobs (id, company_id, title, description, hard_skills, soft_skills,
			experience_level, industry, location, salary_min, salary_max, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 0, 0, $10)`,
		uuid.New(), companyID, title, description, hardSkills, []string{"Communication"},
		level, "Software", location, repository.JobStatusActive,
	)
	if err != nil {
		return fmt.Errorf("seed job %s: %w", title, err)
	}
	return nil
}
