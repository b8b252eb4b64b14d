package agent

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"supportdesk/internal/models"

	"go.uber.org/zap"
)

// RuleReviewer enforces the minimal tone policy deterministically: redact
// disallowed phrases, guarantee a polite closing and terminal punctuation.
// Applying it twice is a no-op.
type RuleReviewer struct {
	opts   *Options
	logger *zap.Logger
}

func NewRuleReviewer(opts *Options, logger *zap.Logger) *RuleReviewer {
	return &RuleReviewer{opts: opts, logger: logger}
}

func (r *RuleReviewer) Review(_ context.Context, _ string, _ models.Category, response string) string {
	reviewed := response
	for _, phrase := range r.opts.NegativePhrases {
		reviewed = replaceFold(reviewed, phrase, r.opts.RedactionMarker)
	}

	reviewedLower := strings.ToLower(reviewed)
	polite := false
	for _, closing := range r.opts.PoliteClosings {
		if strings.Contains(reviewedLower, closing) {
			polite = true
			break
		}
	}
	if !polite {
		reviewed += r.opts.CourtesySentence
	}

	if !strings.HasSuffix(reviewed, ".") && !strings.HasSuffix(reviewed, "!") && !strings.HasSuffix(reviewed, "?") {
		reviewed += "."
	}
	return reviewed
}

// replaceFold replaces every case-insensitive occurrence of old in s.
// Matching walks the original string rune by rune, so byte offsets stay
// valid even when case mapping changes rune byte lengths.
func replaceFold(s, old, new string) string {
	if old == "" {
		return s
	}

	var builder strings.Builder
	for i := 0; i < len(s); {
		if n := foldMatchLen(s[i:], old); n > 0 {
			builder.WriteString(new)
			i += n
			continue
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		builder.WriteString(s[i : i+size])
		i += size
	}
	return builder.String()
}

// foldMatchLen returns the byte length of the prefix of s matching phrase
// under case folding, or 0 when there is no match.
func foldMatchLen(s, phrase string) int {
	n := 0
	for _, pr := range phrase {
		r, size := utf8.DecodeRuneInString(s[n:])
		if size == 0 {
			return 0
		}
		if r != pr && unicode.ToLower(r) != unicode.ToLower(pr) {
			return 0
		}
		n += size
	}
	return n
}

const reviewPromptTemplate = `Review this customer support response. Check for tone and correctness, keep it professional and polite.

Query: %s
Category: %s
Response: %s

Improved response:`

// LLMReviewer rewrites the draft through a text-generation backend. On any
// failure the draft is returned unchanged; review is best-effort and never
// blocks delivery.
type LLMReviewer struct {
	generator Generator
	logger    *zap.Logger
}

func NewLLMReviewer(generator Generator, logger *zap.Logger) *LLMReviewer {
	return &LLMReviewer{generator: generator, logger: logger}
}

func (r *LLMReviewer) Review(ctx context.Context, query string, category models.Category, response string) string {
	prompt := fmt.Sprintf(reviewPromptTemplate, query, category, response)

	reply, err := r.generator.Generate(ctx, prompt)
	if err != nil || strings.TrimSpace(reply) == "" {
		r.logger.Warn("Review backend failed, returning draft unchanged", zap.Error(err))
		return response
	}
	return strings.TrimSpace(reply)
}
