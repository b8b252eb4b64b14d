package service

import (
	"context"
	"testing"

	"supportdesk/internal/agent"
	"supportdesk/internal/models"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func testKB() models.KnowledgeBase {
	return models.KnowledgeBase{
		models.CategoryBilling: {
			{Question: "How do I update my payment method?", Answer: "You can update your payment method by going to Account Settings > Billing > Payment Methods."},
			{Question: "When will I be charged?", Answer: "You're charged on the same day each month that you signed up."},
		},
		models.CategoryTechnical: {
			{Question: "How do I reset my password?", Answer: "Click 'Forgot Password' on the login page and follow the instructions."},
			{Question: "The app is crashing on startup", Answer: "Please try clearing your cache and restarting the application."},
		},
		models.CategoryGeneral: {
			{Question: "What are your business hours?", Answer: "Our customer support is available 24/7 via chat and email."},
		},
	}
}

func TestDeterministicPipelineEndToEnd(t *testing.T) {
	pipeline := NewDeterministicPipeline(testKB(), agent.DefaultOptions(), zap.NewNop())
	ctx := context.Background()

	t.Run("payment method query", func(t *testing.T) {
		result := pipeline.Process(ctx, "How do I update my payment method?")
		assert.Equal(t, models.CategoryBilling, result.Category)
		assert.Equal(t, "You can update your payment method by going to Account Settings > Billing > Payment Methods.", result.Response)
	})

	t.Run("crashing app query", func(t *testing.T) {
		result := pipeline.Process(ctx, "The app keeps crashing when I open it")
		assert.Equal(t, models.CategoryTechnical, result.Category)
		assert.Contains(t, result.Response, "clearing your cache")
	})

	t.Run("operating hours query", func(t *testing.T) {
		result := pipeline.Process(ctx, "What are your operating hours?")
		assert.Equal(t, models.CategoryGeneral, result.Category)
		assert.Contains(t, result.Response, "available 24/7")
	})

	t.Run("empty query still yields well-formed result", func(t *testing.T) {
		result := pipeline.Process(ctx, "")
		assert.Equal(t, models.CategoryDefault, result.Category)
		assert.NotEmpty(t, result.Response)
	})

	t.Run("nonsense query yields default category", func(t *testing.T) {
		result := pipeline.Process(ctx, "xyzzy plugh quux")
		assert.Equal(t, models.CategoryDefault, result.Category)
		assert.NotEmpty(t, result.Response)
	})
}

func TestPipelineReviewsDraft(t *testing.T) {
	opts := agent.DefaultOptions()
	kb := models.KnowledgeBase{
		models.CategoryGeneral: {
			{Question: "Is this service useless or worth it?", Answer: "Some think it is useless but most customers love it"},
		},
	}
	pipeline := NewDeterministicPipeline(kb, opts, zap.NewNop())

	result := pipeline.Process(context.Background(), "Is the service worth using?")

	assert.NotContains(t, result.Response, "useless")
	assert.Contains(t, result.Response, opts.RedactionMarker)
}
