package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultBaseURL matches the Flask development server the backend ships with.
const DefaultBaseURL = "http://localhost:5000"

// TransportError is the single failure type surfaced by the client.
// Connectivity failures, non-2xx statuses and unparsable bodies all collapse
// into it; Message is short and safe to show to a user, Err keeps the
// underlying cause for the log.
type TransportError struct {
	Op      string // operation name: "stats", "search", "ask", "health"
	Message string // user-facing, non-technical
	Err     error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UserMessage returns the short human-readable failure string for display.
func (e *TransportError) UserMessage() string { return e.Message }

// Client talks to the DevHive backend. It holds no request state: every
// method performs exactly one network call and returns the decoded value.
// No authentication header of any kind is ever attached.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger attaches a logger for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient creates a client for the given base URL. An empty baseURL falls
// back to DefaultBaseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{},
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured backend address.
func (c *Client) BaseURL() string { return c.baseURL }

// FetchStats reads the aggregate counts of indexed content by source.
func (c *Client) FetchStats(ctx context.Context) (StatsSnapshot, error) {
	var snap StatsSnapshot
	err := c.do(ctx, "stats", http.MethodGet, "/stats", nil, &snap,
		"Could not load knowledge base stats. Is the server running?")
	return snap, err
}

// RunSearch queries the knowledge base. The caller guarantees query is
// nonempty; the client sends it verbatim without re-validating or trimming.
// Result order is whatever the server returned.
func (c *Client) RunSearch(ctx context.Context, query string) ([]SearchResult, error) {
	var resp searchResponse
	err := c.do(ctx, "search", http.MethodPost, "/search", searchRequest{Query: query}, &resp,
		"Search failed. Please try again.")
	if err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// AskQuestion submits a question and returns the generated answer with its
// supporting sources. The caller guarantees question is nonempty.
func (c *Client) AskQuestion(ctx context.Context, question string) (Answer, error) {
	var ans Answer
	err := c.do(ctx, "ask", http.MethodPost, "/ask", askRequest{Question: question}, &ans,
		"Could not get an answer. Please try again.")
	return ans, err
}

// Health checks backend reachability.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	var hs HealthStatus
	err := c.do(ctx, "health", http.MethodGet, "/health", nil, &hs,
		"Server is not reachable.")
	return hs, err
}

// do performs one request/decode round trip. userMsg is the message a
// TransportError carries for any failure mode of this operation.
func (c *Client) do(ctx context.Context, op, method, path string, body, out interface{}, userMsg string) error {
	reqID := uuid.NewString()
	start := time.Now()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &TransportError{Op: op, Message: userMsg, Err: fmt.Errorf("encoding request: %w", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &TransportError{Op: op, Message: userMsg, Err: fmt.Errorf("creating request: %w", err)}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed",
			zap.String("req", reqID),
			zap.String("op", op),
			zap.String("path", path),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return &TransportError{Op: op, Message: userMsg, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused; the status alone decides.
		_, _ = io.Copy(io.Discard, resp.Body)
		c.log.Warn("unexpected status",
			zap.String("req", reqID),
			zap.String("op", op),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.Duration("elapsed", time.Since(start)))
		return &TransportError{Op: op, Message: userMsg, Err: fmt.Errorf("server returned status %d", resp.StatusCode)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.log.Warn("malformed response",
			zap.String("req", reqID),
			zap.String("op", op),
			zap.String("path", path),
			zap.Error(err))
		return &TransportError{Op: op, Message: userMsg, Err: fmt.Errorf("decoding response: %w", err)}
	}

	c.log.Debug("request completed",
		zap.String("req", reqID),
		zap.String("op", op),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}
