package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"supportdesk/internal/agent"
	"supportdesk/internal/models"
	"supportdesk/internal/service"
	"supportdesk/pkg/config"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func localPipeline() *service.Pipeline {
	kb := models.KnowledgeBase{
		models.CategoryBilling: {
			{Question: "How do I update my payment method?", Answer: "You can update your payment method by going to Account Settings > Billing > Payment Methods."},
		},
	}
	return service.NewDeterministicPipeline(kb, agent.DefaultOptions(), zap.NewNop())
}

func newClient(remoteURL string, timeout time.Duration) *Client {
	return New(&config.ClientConfig{
		RemoteURL:     remoteURL,
		RemoteTimeout: timeout,
	}, localPipeline(), zap.NewNop())
}

func TestSubmitUsesRemoteResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/support/query", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"category":"technical","response":"Remote answer."}`))
	}))
	defer server.Close()

	result := newClient(server.URL, time.Second).Submit(context.Background(), "my app crashes")

	assert.Equal(t, models.CategoryTechnical, result.Category)
	assert.Equal(t, "Remote answer.", result.Response)
}

func TestSubmitFallsBackOnErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	result := newClient(server.URL, time.Second).Submit(context.Background(), "How do I update my payment method?")

	// The remote error is never surfaced; the local pipeline answers.
	assert.Equal(t, models.CategoryBilling, result.Category)
	assert.Equal(t, "You can update your payment method by going to Account Settings > Billing > Payment Methods.", result.Response)
}

func TestSubmitFallsBackOnMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	result := newClient(server.URL, time.Second).Submit(context.Background(), "How do I update my payment method?")
	assert.Equal(t, models.CategoryBilling, result.Category)
}

func TestSubmitFallsBackOnUnknownCategory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"category":"sales","response":"nope"}`))
	}))
	defer server.Close()

	result := newClient(server.URL, time.Second).Submit(context.Background(), "How do I update my payment method?")
	assert.Equal(t, models.CategoryBilling, result.Category)
}

func TestSubmitFallsBackOnConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listens anymore

	result := newClient(server.URL, time.Second).Submit(context.Background(), "How do I update my payment method?")
	assert.Equal(t, models.CategoryBilling, result.Category)
}

func TestSubmitReturnsWithinBoundedTimeOnTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release // hold the request well past the client timeout
	}))
	defer func() {
		close(release)
		server.Close()
	}()

	start := time.Now()
	result := newClient(server.URL, 100*time.Millisecond).Submit(context.Background(), "How do I update my payment method?")
	elapsed := time.Since(start)

	assert.Equal(t, models.CategoryBilling, result.Category)
	assert.NotEmpty(t, result.Response)
	assert.Less(t, elapsed, time.Second, "fallback must complete within timeout plus local processing time")
}
