package agent

import (
	"context"

	"supportdesk/internal/models"
)

// Classifier maps a raw query to exactly one category. Implementations
// are total: any internal failure maps to models.CategoryDefault instead
// of an error.
type Classifier interface {
	Classify(ctx context.Context, query string) models.Category
}

// Resolver produces an answer for a query within a category. Implementations
// are total and always return a well-formed string.
type Resolver interface {
	Resolve(ctx context.Context, query string, category models.Category) string
}

// Reviewer post-processes a draft response. Implementations are total: on
// any internal failure the draft is returned unchanged.
type Reviewer interface {
	Review(ctx context.Context, query string, category models.Category, response string) string
}

// Generator is the narrow contract over a text-generation backend
// (prompt in, text out). The backend is consumed as a black box.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Encoder turns texts into fixed-length vectors. Cosine similarity is the
// only operation performed on its output.
type Encoder interface {
	Encode(ctx context.Context, texts []string) ([][]float64, error)
}
