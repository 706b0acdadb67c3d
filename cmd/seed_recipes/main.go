package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/database"
	"github.com/pageza/recipebox/backend/internal/logger"
	"github.com/pageza/recipebox/backend/internal/repository"
	"github.com/pageza/recipebox/backend/internal/seed"
	"go.uber.org/zap"
)

func main() {
	count := flag.Int("count", 25, "Number of recipes to generate")
	seedValue := flag.Int64("seed", 0, "Random seed, 0 picks one from the clock")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, OutputPaths: cfg.LogOutputPaths})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	db, err := database.New(cfg, zlog)
	if err != nil {
		zlog.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(db.Gorm, zlog); err != nil {
		zlog.Fatal("Failed to run migrations", zap.Error(err))
	}

	if *seedValue == 0 {
		*seedValue = time.Now().UnixNano()
	}
	gofakeit.Seed(*seedValue)

	ctx := context.Background()
	recipes := repository.NewRecipeRepository(db.Gorm)
	if err := seed.Recipes(ctx, recipes, *count, zlog); err != nil {
		zlog.Fatal("Seeding failed", zap.Error(err))
	}

	total, err := recipes.Count(ctx)
	if err != nil {
		zlog.Fatal("Failed to count recipes", zap.Error(err))
	}
	zlog.Info("Seeded recipes", zap.Int("created", *count), zap.Int64("total", total))
}
