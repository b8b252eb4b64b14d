package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"supportdesk/internal/agent"
	"supportdesk/internal/client"
	"supportdesk/internal/knowledge"
	"supportdesk/internal/service"
	"supportdesk/pkg/config"
	"supportdesk/pkg/logger"
)

// Thin terminal front for the pipeline. Talks to the remote service and
// silently degrades to the in-process deterministic pipeline when the
// service is unreachable.
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: supportctl <query>")
		os.Exit(2)
	}
	query := strings.Join(os.Args[1:], " ")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	kb := knowledge.Load(cfg.Pipeline.KBPath, appLogger)
	opts := agent.DefaultOptions()
	opts.SimilarityThreshold = cfg.Pipeline.SimilarityThreshold
	opts.TopK = cfg.Pipeline.TopK

	local := service.NewDeterministicPipeline(kb, opts, appLogger)
	supportClient := client.New(&cfg.Client, local, appLogger)

	result := supportClient.Submit(context.Background(), query)
	fmt.Printf("Category: %s\n%s\n", result.Category, result.Response)
}
