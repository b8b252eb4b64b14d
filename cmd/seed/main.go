package main

import (
	"context"
	"log"

	"supportdesk/internal/knowledge"
	"supportdesk/internal/models"
	"supportdesk/internal/repository"
	"supportdesk/pkg/config"
	"supportdesk/pkg/logger"
	"supportdesk/pkg/postgres"

	"go.uber.org/zap"
)

// Seeds the Postgres FAQ store from the knowledge base file so the
// service can run with KB_SOURCE=postgres.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	faqRepo := repository.NewFAQRepository(db, appLogger)

	appLogger.Info("Starting knowledge base seeding", zap.String("path", cfg.Pipeline.KBPath))

	if err := faqRepo.EnsureSchema(ctx); err != nil {
		appLogger.Fatal("Failed to ensure schema", zap.Error(err))
	}
	if err := faqRepo.DeleteAll(ctx); err != nil {
		appLogger.Fatal("Failed to clear faq store", zap.Error(err))
	}

	kb := knowledge.Load(cfg.Pipeline.KBPath, appLogger)

	seeded := 0
	for _, category := range models.Categories {
		for position, record := range kb.Records(category) {
			if err := faqRepo.Insert(ctx, category, position, record); err != nil {
				appLogger.Fatal("Failed to insert faq record",
					zap.String("category", string(category)),
					zap.Int("position", position),
					zap.Error(err),
				)
			}
			seeded++
		}
	}

	appLogger.Info("Knowledge base seeding completed", zap.Int("records", seeded))
}
