package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"supportdesk/internal/dto"
	"supportdesk/internal/models"
	"supportdesk/internal/service"
	"supportdesk/pkg/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Client is the two-tier front for the pipeline: it tries the remote
// service under a short timeout and degrades to a locally constructed
// deterministic pipeline on any failure (timeout, transport error, bad
// status, malformed body). Submit is total and never returns an error;
// fallback is a one-shot substitution, not a retry loop.
type Client struct {
	baseURL    string
	httpClient *http.Client
	local      *service.Pipeline
	logger     *zap.Logger
}

func New(cfg *config.ClientConfig, local *service.Pipeline, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.RemoteURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.RemoteTimeout,
		},
		local:  local,
		logger: logger,
	}
}

// Submit routes the query through the remote pipeline, falling back to the
// local one. Which tier served the request is only visible in logs.
func (c *Client) Submit(ctx context.Context, query string) *models.QueryResult {
	result, err := c.submitRemote(ctx, query)
	if err == nil {
		return result
	}

	c.logger.Warn("Remote pipeline unavailable, using local fallback", zap.Error(err))
	return c.local.Process(ctx, query)
}

func (c *Client) submitRemote(ctx context.Context, query string) (*models.QueryResult, error) {
	body, err := json.Marshal(dto.QueryRequest{Query: query})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/support/query", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach remote pipeline: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("remote pipeline returned status %d", resp.StatusCode)
	}

	var qr dto.QueryResponse
	if err := json.NewDecoder(resp.Body).Decode(&qr); err != nil {
		return nil, fmt.Errorf("failed to decode remote response: %w", err)
	}

	category := models.Category(qr.Category)
	if !category.Valid() {
		return nil, fmt.Errorf("remote pipeline returned unknown category %q", qr.Category)
	}

	return &models.QueryResult{
		Category: category,
		Response: qr.Response,
	}, nil
}
