package agent

import (
	"context"
	"fmt"
	"strings"

	"supportdesk/internal/models"

	"go.uber.org/zap"
)

// KeywordClassifier scores each category by the number of its configured
// keywords appearing as substrings of the lowercased query. The category
// with the highest score wins; an all-zero score falls back to the default
// category, and ties resolve to the first category in models.Categories
// reaching the maximum.
type KeywordClassifier struct {
	opts   *Options
	logger *zap.Logger
}

func NewKeywordClassifier(opts *Options, logger *zap.Logger) *KeywordClassifier {
	return &KeywordClassifier{opts: opts, logger: logger}
}

func (c *KeywordClassifier) Classify(_ context.Context, query string) models.Category {
	queryLower := strings.ToLower(query)

	best := models.CategoryDefault
	bestScore := 0
	for _, category := range models.Categories {
		score := 0
		for _, keyword := range c.opts.Keywords[category] {
			if strings.Contains(queryLower, keyword) {
				score++
			}
		}
		if score > bestScore {
			best = category
			bestScore = score
		}
	}

	c.logger.Debug("Query classified",
		zap.String("category", string(best)),
		zap.Int("score", bestScore),
	)
	return best
}

const classifyPromptTemplate = `Classify the customer support query into exactly one of these categories: %s.
The hypothesis is "This text is about {category}."

Query: %s

Reply with the single category label only, nothing else.`

// LLMClassifier delegates labeling to a text-generation backend with a
// fixed label set. Any invocation failure or unrecognized label maps to
// the default category; classification never aborts the pipeline.
type LLMClassifier struct {
	generator Generator
	logger    *zap.Logger
}

func NewLLMClassifier(generator Generator, logger *zap.Logger) *LLMClassifier {
	return &LLMClassifier{generator: generator, logger: logger}
}

func (c *LLMClassifier) Classify(ctx context.Context, query string) models.Category {
	labels := make([]string, len(models.Categories))
	for i, category := range models.Categories {
		labels[i] = string(category)
	}
	prompt := fmt.Sprintf(classifyPromptTemplate, strings.Join(labels, ", "), query)

	reply, err := c.generator.Generate(ctx, prompt)
	if err != nil {
		c.logger.Warn("Classification backend failed, using default category", zap.Error(err))
		return models.CategoryDefault
	}

	label := parseLabel(reply)
	if label == "" {
		c.logger.Warn("Unrecognized classification label, using default category",
			zap.String("reply", reply),
		)
		return models.CategoryDefault
	}
	return label
}

// parseLabel extracts the first known category named in the model reply.
func parseLabel(reply string) models.Category {
	replyLower := strings.ToLower(strings.TrimSpace(reply))
	if category := models.Category(replyLower); category.Valid() {
		return category
	}
	for _, category := range models.Categories {
		if strings.Contains(replyLower, string(category)) {
			return category
		}
	}
	return ""
}
