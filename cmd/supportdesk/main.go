package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"supportdesk/internal/agent"
	"supportdesk/internal/api"
	"supportdesk/internal/api/handlers"
	"supportdesk/internal/knowledge"
	"supportdesk/internal/models"
	"supportdesk/internal/repository"
	"supportdesk/internal/service"
	"supportdesk/pkg/config"
	"supportdesk/pkg/logger"
	"supportdesk/pkg/postgres"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting support desk service", zap.String("mode", cfg.Pipeline.Mode))

	ctx := context.Background()

	kb := loadKnowledgeBase(ctx, cfg, appLogger)

	opts := agent.DefaultOptions()
	opts.SimilarityThreshold = cfg.Pipeline.SimilarityThreshold
	opts.TopK = cfg.Pipeline.TopK

	pipeline, closer := buildPipeline(ctx, cfg, kb, opts, appLogger)
	if closer != nil {
		defer closer()
	}

	// Initialize handlers and router
	queryHandler := handlers.NewQueryHandler(pipeline, appLogger)
	app := api.SetupRouter(queryHandler, &cfg.Server, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}

// loadKnowledgeBase resolves the KB source chain: Postgres when configured
// and reachable, then the FAQ file, then the degraded fallback base. No
// branch of the chain is allowed to crash the process.
func loadKnowledgeBase(ctx context.Context, cfg *config.Config, appLogger *zap.Logger) models.KnowledgeBase {
	if cfg.Pipeline.KBSource == "postgres" {
		db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
		if err != nil {
			appLogger.Warn("Database unavailable, loading knowledge base from file", zap.Error(err))
			return knowledge.Load(cfg.Pipeline.KBPath, appLogger)
		}
		defer db.Close()

		kb, err := repository.NewFAQRepository(db, appLogger).LoadAll(ctx)
		if err != nil || kb.Size() == 0 {
			appLogger.Warn("Failed to load knowledge base from database, loading from file", zap.Error(err))
			return knowledge.Load(cfg.Pipeline.KBPath, appLogger)
		}
		return kb
	}
	return knowledge.Load(cfg.Pipeline.KBPath, appLogger)
}

// buildPipeline wires the strategy set for the configured mode. The
// "semantic" and "full" modes need the LLM backend; when it cannot be
// constructed they degrade to the deterministic set instead of failing.
func buildPipeline(ctx context.Context, cfg *config.Config, kb models.KnowledgeBase, opts *agent.Options, appLogger *zap.Logger) (*service.Pipeline, func()) {
	mode := cfg.Pipeline.Mode
	if mode == "lite" {
		return service.NewDeterministicPipeline(kb, opts, appLogger), nil
	}

	llmService, err := service.NewLLMService(&cfg.GigaChat, appLogger)
	if err != nil {
		appLogger.Warn("LLM service unavailable, degrading to deterministic pipeline", zap.Error(err))
		return service.NewDeterministicPipeline(kb, opts, appLogger), nil
	}
	closer := func() { _ = llmService.Close() }

	switch mode {
	case "semantic":
		resolver, err := agent.NewEmbeddingResolver(ctx, llmService, kb, opts, appLogger)
		if err != nil {
			appLogger.Warn("Failed to build embedding resolver, degrading to deterministic pipeline", zap.Error(err))
			closer()
			return service.NewDeterministicPipeline(kb, opts, appLogger), nil
		}
		return service.NewPipeline(
			agent.NewKeywordClassifier(opts, appLogger),
			resolver,
			agent.NewRuleReviewer(opts, appLogger),
			appLogger,
		), closer
	case "full":
		resolver, err := agent.NewGenerativeResolver(ctx, llmService, llmService, kb, opts, appLogger)
		if err != nil {
			appLogger.Warn("Failed to build generative resolver, degrading to deterministic pipeline", zap.Error(err))
			closer()
			return service.NewDeterministicPipeline(kb, opts, appLogger), nil
		}
		return service.NewPipeline(
			agent.NewLLMClassifier(llmService, appLogger),
			resolver,
			agent.NewLLMReviewer(llmService, appLogger),
			appLogger,
		), closer
	default:
		appLogger.Warn("Unknown pipeline mode, using deterministic pipeline", zap.String("mode", mode))
		closer()
		return service.NewDeterministicPipeline(kb, opts, appLogger), nil
	}
}
