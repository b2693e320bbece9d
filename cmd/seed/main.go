package main

import (
	"context"
	"log"
	"time"

	"github.com/healthflow/backend/internal/adapters/database"
	"github.com/healthflow/backend/internal/catalog"
	"github.com/healthflow/backend/internal/infrastructure/clients/postgres"
	"github.com/healthflow/backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	cat, err := catalog.Load(cfg.Catalog.DataPath)
	if err != nil {
		log.Fatalf("Failed to load reference data from %s: %v", cfg.Catalog.DataPath, err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer pgClient.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	seeder := database.NewSeeder(pgClient)
	if err := seeder.EnsureSchema(ctx); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	start := time.Now()
	if err := seeder.Seed(ctx, cat.All()); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeding complete in %v (%d countries)", time.Since(start), len(cat.Countries()))
}
