package agent

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"supportdesk/internal/models"

	"go.uber.org/zap"
)

// KeywordResolver answers by token overlap: the first record in the
// category's list whose question contains a sufficiently long token that
// also occurs in the lowercased query wins. List order defines priority.
type KeywordResolver struct {
	kb     models.KnowledgeBase
	opts   *Options
	logger *zap.Logger
}

func NewKeywordResolver(kb models.KnowledgeBase, opts *Options, logger *zap.Logger) *KeywordResolver {
	return &KeywordResolver{kb: kb, opts: opts, logger: logger}
}

func (r *KeywordResolver) Resolve(_ context.Context, query string, category models.Category) string {
	if !category.Valid() {
		return r.opts.GenericDefault
	}

	queryLower := strings.ToLower(query)
	for _, record := range r.kb.Records(category) {
		for _, token := range tokenize(record.Question) {
			if len(token) > r.opts.MinTokenLength && strings.Contains(queryLower, token) {
				return record.Answer
			}
		}
	}

	if answer, ok := r.opts.CategoryDefaults[category]; ok {
		return answer
	}
	return r.opts.GenericDefault
}

// EmbeddingResolver ranks the category's questions by cosine similarity
// against the query vector. Question vectors are computed once at
// construction, so resolution only encodes the query; the shared state is
// read-only at request time.
type EmbeddingResolver struct {
	kb      models.KnowledgeBase
	encoder Encoder
	opts    *Options
	logger  *zap.Logger
	vectors map[models.Category][][]float64
}

func NewEmbeddingResolver(ctx context.Context, encoder Encoder, kb models.KnowledgeBase, opts *Options, logger *zap.Logger) (*EmbeddingResolver, error) {
	vectors := make(map[models.Category][][]float64, len(kb))
	for category, records := range kb {
		questions := make([]string, len(records))
		for i, record := range records {
			questions[i] = record.Question
		}
		encoded, err := encoder.Encode(ctx, questions)
		if err != nil {
			return nil, fmt.Errorf("failed to encode questions for category %q: %w", category, err)
		}
		vectors[category] = encoded
	}

	return &EmbeddingResolver{
		kb:      kb,
		encoder: encoder,
		opts:    opts,
		logger:  logger,
		vectors: vectors,
	}, nil
}

func (r *EmbeddingResolver) Resolve(ctx context.Context, query string, category models.Category) string {
	records := r.kb.Records(category)
	if len(records) == 0 {
		return r.notConfident(category)
	}

	encoded, err := r.encoder.Encode(ctx, []string{query})
	if err != nil || len(encoded) == 0 {
		r.logger.Warn("Failed to encode query, using fallback message", zap.Error(err))
		return r.notConfident(category)
	}
	queryVector := encoded[0]

	bestIdx := -1
	bestScore := 0.0
	for i, vector := range r.vectors[category] {
		if score := CosineSimilarity(queryVector, vector); bestIdx < 0 || score > bestScore {
			bestIdx = i
			bestScore = score
		}
	}

	// The threshold boundary is inclusive: an exact-threshold match is
	// still considered confident.
	if bestIdx >= 0 && bestScore >= r.opts.SimilarityThreshold {
		r.logger.Debug("Confident match found",
			zap.String("question", records[bestIdx].Question),
			zap.Float64("similarity", bestScore),
		)
		return records[bestIdx].Answer
	}
	return r.notConfident(category)
}

func (r *EmbeddingResolver) notConfident(category models.Category) string {
	if !category.Valid() {
		category = models.CategoryDefault
	}
	return fmt.Sprintf(r.opts.NotConfidentTemplate, category)
}

const generatePromptTemplate = `Based on the following context from our knowledge base, draft a helpful response to the customer query. Be professional and helpful.

Context:
%s

Query: %s

Response:`

type indexedRecord struct {
	category models.Category
	record   models.FAQRecord
	vector   []float64
}

type scoredRecord struct {
	indexedRecord
	score float64
}

// GenerativeResolver retrieves the top-k most similar records across the
// whole base, prefers those matching the requested category, and grounds a
// text-generation prompt in their content. Generation failure degrades to
// the best retrieved answer; empty retrieval degrades to a generic apology.
type GenerativeResolver struct {
	generator Generator
	encoder   Encoder
	opts      *Options
	logger    *zap.Logger
	index     []indexedRecord
}

func NewGenerativeResolver(ctx context.Context, generator Generator, encoder Encoder, kb models.KnowledgeBase, opts *Options, logger *zap.Logger) (*GenerativeResolver, error) {
	var index []indexedRecord
	for _, category := range models.Categories {
		for _, record := range kb.Records(category) {
			index = append(index, indexedRecord{category: category, record: record})
		}
	}

	questions := make([]string, len(index))
	for i, entry := range index {
		questions[i] = entry.record.Question
	}
	vectors, err := encoder.Encode(ctx, questions)
	if err != nil {
		return nil, fmt.Errorf("failed to encode knowledge base: %w", err)
	}
	for i := range index {
		index[i].vector = vectors[i]
	}

	return &GenerativeResolver{
		generator: generator,
		encoder:   encoder,
		opts:      opts,
		logger:    logger,
		index:     index,
	}, nil
}

func (r *GenerativeResolver) Resolve(ctx context.Context, query string, category models.Category) string {
	retrieved := r.retrieve(ctx, query)
	if len(retrieved) == 0 {
		return r.opts.SupportApology
	}

	// Prefer same-category entries when any made it into the top-k.
	if matching := filterByCategory(retrieved, category); len(matching) > 0 {
		retrieved = matching
	}

	var kbContext strings.Builder
	for _, entry := range retrieved {
		fmt.Fprintf(&kbContext, "Category: %s. Question: %s. Answer: %s\n",
			entry.category, entry.record.Question, entry.record.Answer)
	}

	prompt := fmt.Sprintf(generatePromptTemplate, kbContext.String(), query)
	reply, err := r.generator.Generate(ctx, prompt)
	if err != nil || strings.TrimSpace(reply) == "" {
		r.logger.Warn("Generation failed, returning best retrieved answer", zap.Error(err))
		return retrieved[0].record.Answer
	}
	return strings.TrimSpace(reply)
}

func (r *GenerativeResolver) retrieve(ctx context.Context, query string) []scoredRecord {
	if len(r.index) == 0 {
		return nil
	}

	encoded, err := r.encoder.Encode(ctx, []string{query})
	if err != nil || len(encoded) == 0 {
		r.logger.Warn("Failed to encode query for retrieval", zap.Error(err))
		return nil
	}
	queryVector := encoded[0]

	scored := make([]scoredRecord, len(r.index))
	for i, entry := range r.index {
		scored[i] = scoredRecord{
			indexedRecord: entry,
			score:         CosineSimilarity(queryVector, entry.vector),
		}
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })

	if len(scored) > r.opts.TopK {
		scored = scored[:r.opts.TopK]
	}
	return scored
}

func filterByCategory(records []scoredRecord, category models.Category) []scoredRecord {
	var matching []scoredRecord
	for _, entry := range records {
		if entry.category == category {
			matching = append(matching, entry)
		}
	}
	return matching
}
