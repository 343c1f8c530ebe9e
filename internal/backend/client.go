// Package backend talks to the remote execution and repair services.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/justinpbarnett/autodebug/internal/config"
	"github.com/justinpbarnett/autodebug/internal/logging"
)

// Client issues single, unretried requests against the service base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Entry
}

// NewClient builds a client. A zero timeout leaves request deadlines to the
// transport and the caller's context.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logging.NewLogger("backend"),
	}
}

func NewClientFromConfig(cfg *config.Config) *Client {
	return NewClient(cfg.Backend.BaseURL, cfg.RequestTimeout())
}

// BaseURL returns the normalized service address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Run submits code for a single execution.
func (c *Client) Run(ctx context.Context, code string) (*RunResult, error) {
	var raw apiRunResult
	if err := c.post(ctx, "/run", code, &raw); err != nil {
		return nil, err
	}
	res, err := convertRunResult(&raw, "run")
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Repair submits code to the repair loop and returns the full transcript.
func (c *Client) Repair(ctx context.Context, code string) (*Transcript, error) {
	var raw apiRepairResponse
	if err := c.post(ctx, "/repair", code, &raw); err != nil {
		return nil, err
	}
	return convertTranscript(&raw)
}

// Health probes GET /health.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return nil, fmt.Errorf("backend: creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	var raw apiHealth
	if err := c.do(req, "/health", &raw); err != nil {
		return nil, err
	}
	return &Health{Status: raw.Status}, nil
}

func (c *Client) post(ctx context.Context, path, code string, out any) error {
	body, err := json.Marshal(codeRequest{Code: code})
	if err != nil {
		return fmt.Errorf("backend: encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("backend: creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.do(req, path, out)
}

func (c *Client) do(req *http.Request, path string, out any) error {
	start := time.Now()
	log := c.logger.WithField("path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Warn("request failed")
		return fmt.Errorf("%w: %s: %v", ErrTransport, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.WithError(err).Warn("reading response failed")
		return fmt.Errorf("%w: %s: reading response: %v", ErrTransport, path, err)
	}

	log = log.WithFields(logrus.Fields{
		"status":   resp.StatusCode,
		"bytes":    len(data),
		"duration": time.Since(start).Round(time.Millisecond),
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warnf("unexpected status: %s", truncate(string(data), 200))
		return fmt.Errorf("%w: %s returned %d", ErrTransport, path, resp.StatusCode)
	}

	if err := json.Unmarshal(data, out); err != nil {
		log.WithError(err).Warn("response did not decode")
		return fmt.Errorf("%w: %s: %v", ErrMalformedResponse, path, err)
	}

	log.Debug("request completed")
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
