package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashingEncoder(t *testing.T) {
	encoder := NewHashingEncoder()
	ctx := context.Background()

	vectors, err := encoder.Encode(ctx, []string{
		"How do I reset my password?",
		"how do i RESET my password",
		"What are your business hours?",
	})
	require.NoError(t, err)
	require.Len(t, vectors, 3)

	t.Run("vectors are deterministic and case insensitive", func(t *testing.T) {
		assert.Equal(t, vectors[0], vectors[1])
	})

	t.Run("vectors are normalized", func(t *testing.T) {
		for _, vector := range vectors {
			var norm float64
			for _, v := range vector {
				norm += v * v
			}
			assert.InDelta(t, 1.0, norm, 1e-9)
		}
	})

	t.Run("identical texts have similarity 1", func(t *testing.T) {
		assert.InDelta(t, 1.0, CosineSimilarity(vectors[0], vectors[1]), 1e-9)
	})

	t.Run("unrelated texts score lower than related ones", func(t *testing.T) {
		related := CosineSimilarity(vectors[0], vectors[1])
		unrelated := CosineSimilarity(vectors[0], vectors[2])
		assert.Less(t, unrelated, related)
	})
}

func TestCosineSimilarityEdgeCases(t *testing.T) {
	assert.Equal(t, 0.0, CosineSimilarity(nil, nil))
	assert.Equal(t, 0.0, CosineSimilarity([]float64{1, 2}, []float64{1}))
	assert.Equal(t, 0.0, CosineSimilarity([]float64{0, 0}, []float64{1, 1}))
	assert.InDelta(t, 0.6, CosineSimilarity([]float64{3, 4}, []float64{1, 0}), 1e-15)
}
