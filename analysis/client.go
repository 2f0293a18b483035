package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	analyzePath = "/analyze_message"
	rewritePath = "/rewrite_reply"

	maxErrorBody = 4 << 10
)

// Analyzer is the remote analysis service as seen by the UI.
type Analyzer interface {
	Analyze(ctx context.Context, message string) (Result, error)
	Rewrite(ctx context.Context, req RewriteRequest) (string, error)
}

// StatusError is returned when the service answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("analysis service returned %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("analysis service returned %d", e.StatusCode)
}

// Client talks JSON over HTTP to the analysis service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a client for the service at baseURL. A zero timeout leaves the
// transport default in place.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: want http(s)://host[:port]", baseURL)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}, nil
}

// Analyze sends message to the service and returns the normalized result.
func (c *Client) Analyze(ctx context.Context, message string) (Result, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return Result{}, ErrEmptyMessage
	}

	var resp analyzeResponse
	if err := c.post(ctx, analyzePath, analyzeRequest{Message: message}, &resp); err != nil {
		return Result{}, fmt.Errorf("analyze message: %w", err)
	}

	tasks := resp.Tasks
	if tasks == nil {
		tasks = []string{}
	}
	return Result{
		Message:        message,
		Classification: NormalizeClassification(resp.Classification),
		Summary:        resp.Summary,
		Tasks:          tasks,
		SuggestedReply: resp.SuggestedReply,
	}, nil
}

// Rewrite asks the service to restyle req.BaseReply. An empty answer falls back to the
// base reply, which is what the service itself does when the model omits the field.
func (c *Client) Rewrite(ctx context.Context, req RewriteRequest) (string, error) {
	if strings.TrimSpace(req.BaseReply) == "" {
		return "", ErrNoAnalysis
	}
	if _, err := ParseStyle(string(req.Style)); err != nil {
		return "", err
	}

	var resp rewriteResponse
	if err := c.post(ctx, rewritePath, req, &resp); err != nil {
		return "", fmt.Errorf("rewrite reply: %w", err)
	}
	if strings.TrimSpace(resp.RewrittenReply) == "" {
		c.logger.Debug("Rewrite returned empty reply, keeping base reply", zap.String("style", string(req.Style)))
		return req.BaseReply, nil
	}
	return resp.RewrittenReply, nil
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	c.logger.Debug("Sending request", zap.String("path", path), zap.Int("bytes", len(b)))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Request failed", zap.String("path", path), zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{StatusCode: resp.StatusCode, Detail: readDetail(resp.Body)}
		c.logger.Warn("Service returned error status",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("detail", statusErr.Detail),
			zap.Duration("elapsed", time.Since(start)))
		return statusErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Warn("Could not decode response", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("decode response: %w", err)
	}
	c.logger.Info("Request completed", zap.String("path", path), zap.Duration("elapsed", time.Since(start)))
	return nil
}

// readDetail extracts the service's error detail, falling back to the raw body text.
func readDetail(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(body) == 0 {
		return ""
	}
	var er errorResponse
	if json.Unmarshal(body, &er) == nil && er.Detail != "" {
		return er.Detail
	}
	return strings.TrimSpace(string(body))
}
