package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/makeasinger/songgen/internal/config"
	"github.com/makeasinger/songgen/internal/model"
)

// SongGenerator defines the interface for synchronous song generation
type SongGenerator interface {
	RunSync(ctx context.Context, cmd *model.GenerateSongCommand) (*RunSyncResult, error)
	IsConfigured() bool
}

// RunPodClient implements SongGenerator for RunPod serverless endpoints
type RunPodClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	endpointID string
	configured bool
	log        *slog.Logger
}

// RunSyncResult carries the HTTP status alongside the decoded body.
// For non-2xx responses Body is best effort and RawBody holds what was received.
type RunSyncResult struct {
	StatusCode int
	Body       model.RunSyncResponse
	RawBody    []byte
}

// OK reports whether the upstream answered with a 2xx status
func (r *RunSyncResult) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// NewRunPodClient creates a new RunPod API client
func NewRunPodClient(cfg *config.RunPodConfig, log *slog.Logger) *RunPodClient {
	return &RunPodClient{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		endpointID: cfg.EndpointID,
		configured: cfg.IsConfigured(),
		log:        log.With(slog.String("component", "runpod")),
	}
}

// RunSync submits the command to the endpoint's runsync route and waits for the worker
func (c *RunPodClient) RunSync(ctx context.Context, cmd *model.GenerateSongCommand) (*RunSyncResult, error) {
	bodyBytes, err := json.Marshal(model.RunSyncRequest{Input: cmd})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v2/%s/runsync", c.baseURL, c.endpointID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	c.log.Debug("sending runsync request", slog.String("url", url))
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("runsync request failed", slog.String("url", url), slog.Any("error", err))
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	// Audio comes back inline, so only the size is logged
	c.log.Info("runsync response",
		slog.Int("status", resp.StatusCode),
		slog.Int("bytes", len(respBody)),
		slog.Duration("latency", time.Since(start)),
	)

	result := &RunSyncResult{
		StatusCode: resp.StatusCode,
		RawBody:    respBody,
	}

	if err := json.Unmarshal(respBody, &result.Body); err != nil {
		if !result.OK() {
			return result, nil
		}
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return result, nil
}

// IsConfigured returns true if the client has valid configuration
func (c *RunPodClient) IsConfigured() bool {
	return c.configured
}
