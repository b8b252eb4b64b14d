package service

import (
	"context"
	"time"

	"supportdesk/internal/agent"
	"supportdesk/internal/models"

	"go.uber.org/zap"
)

// Pipeline sequences the three stages: classify, resolve, review. It adds
// no error handling of its own; every stage is total, so Process always
// yields a well-formed result. A single instance is safe for concurrent
// use because all stages are read-only at request time.
type Pipeline struct {
	classifier agent.Classifier
	resolver   agent.Resolver
	reviewer   agent.Reviewer
	logger     *zap.Logger
}

func NewPipeline(classifier agent.Classifier, resolver agent.Resolver, reviewer agent.Reviewer, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		classifier: classifier,
		resolver:   resolver,
		reviewer:   reviewer,
		logger:     logger,
	}
}

// NewDeterministicPipeline builds the dependency-free strategy set:
// keyword classifier, keyword resolver, rule reviewer. The degradation
// client uses it as the local fallback tier.
func NewDeterministicPipeline(kb models.KnowledgeBase, opts *agent.Options, logger *zap.Logger) *Pipeline {
	return NewPipeline(
		agent.NewKeywordClassifier(opts, logger),
		agent.NewKeywordResolver(kb, opts, logger),
		agent.NewRuleReviewer(opts, logger),
		logger,
	)
}

// Process runs one query through the pipeline.
func (p *Pipeline) Process(ctx context.Context, query string) *models.QueryResult {
	start := time.Now()

	category := p.classifier.Classify(ctx, query)
	draft := p.resolver.Resolve(ctx, query, category)
	final := p.reviewer.Review(ctx, query, category, draft)

	p.logger.Debug("Query processed",
		zap.String("category", string(category)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return &models.QueryResult{
		Category: category,
		Response: final,
	}
}
