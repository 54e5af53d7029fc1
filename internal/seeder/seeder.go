// Package seeder loads demo accounts, companies, and jobs so a fresh
// environment has something to browse. Every seeder is idempotent.
package seeder

import (
	"context"
	"fmt"
	"log"

	"talenthub/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}

func RunAll(ctx context.Context, db database.DB, logger *log.Logger, seeders ...Seeder) error {
	for _, s := range seeders {
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seeder %s: %w", s.Name(), err)
		}
		if logger != nil {
			logger.Printf("seeder done | name=%s", s.Name())
		}
	}
	return nil
}
