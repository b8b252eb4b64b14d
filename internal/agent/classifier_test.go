package agent

import (
	"context"
	"errors"
	"testing"

	"supportdesk/internal/models"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeGenerator struct {
	reply string
	err   error
}

func (f *fakeGenerator) Generate(_ context.Context, _ string) (string, error) {
	return f.reply, f.err
}

func TestKeywordClassifier(t *testing.T) {
	classifier := NewKeywordClassifier(DefaultOptions(), zap.NewNop())
	ctx := context.Background()

	tests := []struct {
		name  string
		query string
		want  models.Category
	}{
		{"billing keywords", "How do I update my payment method?", models.CategoryBilling},
		{"technical keywords", "The app keeps crashing when I open it", models.CategoryTechnical},
		{"general keywords", "What are your operating hours?", models.CategoryGeneral},
		{"no keywords defaults to general", "xyzzy plugh", models.CategoryDefault},
		{"empty query defaults to general", "", models.CategoryDefault},
		{"case insensitive", "REFUND MY SUBSCRIPTION", models.CategoryBilling},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifier.Classify(ctx, tt.query))
		})
	}
}

func TestKeywordClassifierTieBreak(t *testing.T) {
	classifier := NewKeywordClassifier(DefaultOptions(), zap.NewNop())

	// One billing keyword and one technical keyword: the tie resolves to
	// the first category in enumeration order.
	got := classifier.Classify(context.Background(), "payment password")
	assert.Equal(t, models.CategoryBilling, got)
}

func TestLLMClassifier(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		reply string
		err   error
		want  models.Category
	}{
		{"plain label", "billing", nil, models.CategoryBilling},
		{"label inside sentence", "The category is: Technical.", nil, models.CategoryTechnical},
		{"uppercase label", "GENERAL", nil, models.CategoryGeneral},
		{"unknown label defaults", "sales", nil, models.CategoryDefault},
		{"backend failure defaults", "", errors.New("backend down"), models.CategoryDefault},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classifier := NewLLMClassifier(&fakeGenerator{reply: tt.reply, err: tt.err}, zap.NewNop())
			assert.Equal(t, tt.want, classifier.Classify(ctx, "any query"))
		})
	}
}
