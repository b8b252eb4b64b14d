package agent

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// hashingDim is the fixed vector length produced by HashingEncoder.
const hashingDim = 256

// HashingEncoder is a deterministic, dependency-free encoder: each token
// is hashed into a fixed-length term-frequency vector which is then
// L2-normalized. It backs the local pipeline and tests; the model-based
// encoder lives in the LLM service.
type HashingEncoder struct{}

func NewHashingEncoder() *HashingEncoder {
	return &HashingEncoder{}
}

func (e *HashingEncoder) Encode(_ context.Context, texts []string) ([][]float64, error) {
	vectors := make([][]float64, len(texts))
	for i, text := range texts {
		vectors[i] = encodeText(text)
	}
	return vectors, nil
}

func encodeText(text string) []float64 {
	vector := make([]float64, hashingDim)
	for _, token := range tokenize(text) {
		h := fnv.New32a()
		h.Write([]byte(token))
		vector[h.Sum32()%hashingDim]++
	}

	var norm float64
	for _, v := range vector {
		norm += v * v
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vector {
			vector[i] /= norm
		}
	}
	return vector
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// CosineSimilarity returns the cosine of the angle between a and b, or 0
// when either vector is empty, zero, or of mismatched length.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
