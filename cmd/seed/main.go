package main

import (
	"context"
	"log"
	"os"
	"time"

	"talenthub/internal/config"
	"talenthub/internal/database"
	dbpostgres "talenthub/internal/database/postgres"
	"talenthub/internal/seeder"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := log.New(os.Stdout, "", log.LstdFlags)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	if err := seeder.RunAll(ctx, db, logger, seeder.DemoSeeder{}); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	logger.Println("seeding complete")
}
