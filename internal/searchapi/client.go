// Package searchapi is the HTTP client for the remote search and
// summarization service.
package searchapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"ragclient/internal/domain"
	"ragclient/internal/metrics"
)

// Errors returned by Client. Use errors.Is to check.
var (
	ErrTransport = errors.New("search service unreachable")
	ErrStatus    = errors.New("search service returned an error status")
	ErrDecode    = errors.New("search service response could not be decoded")
)

const (
	endpointSearch    = "search"
	endpointSummarize = "summarize"
	maxErrorBody      = 4 << 10
)

type searchRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

type searchResponse struct {
	Results []domain.Document `json:"results"`
	Message string            `json:"message,omitempty"`
}

type summarizeRequest struct {
	Documents []any                `json:"documents"`
	Length    domain.SummaryLength `json:"length"`
}

type summarizeResponse struct {
	Summary *string `json:"summary"`
}

// Config configures the client.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Option customizes a Client.
type Option func(*Client)

// WithLogger sets the logger for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics records request counts and durations.
func WithMetrics(m *metrics.API) Option {
	return func(c *Client) { c.metrics = m }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// Client implements domain.SearchService over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
	metrics *metrics.API
}

var _ domain.SearchService = (*Client)(nil)

// NewClient builds a client for cfg.BaseURL. A zero timeout means 60s.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	c := &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL is the resolved service address.
func (c *Client) BaseURL() string { return c.baseURL }

// Search posts {query, top_k} to /search. A response without results is an
// empty result set, not an error.
func (c *Client) Search(ctx context.Context, query domain.Query, topK int) (resp domain.SearchResponse, err error) {
	start := time.Now()
	defer func() { c.metrics.Observe(endpointSearch, start, err) }()

	var out searchResponse
	if err = c.postJSON(ctx, "/search", searchRequest{Query: query.String(), TopK: topK}, &out); err != nil {
		return domain.SearchResponse{}, err
	}
	c.logger.Debug("search completed",
		zap.String("query", query.String()),
		zap.Int("results", len(out.Results)),
		zap.Duration("duration", time.Since(start)))
	return domain.SearchResponse{Results: out.Results, Message: out.Message}, nil
}

// Summarize posts {documents, length} to /summarize.
func (c *Client) Summarize(ctx context.Context, documents []any, length domain.SummaryLength) (resp domain.SummaryResponse, err error) {
	start := time.Now()
	defer func() { c.metrics.Observe(endpointSummarize, start, err) }()

	if documents == nil {
		documents = []any{}
	}
	var out summarizeResponse
	if err = c.postJSON(ctx, "/summarize", summarizeRequest{Documents: documents, Length: length}, &out); err != nil {
		return domain.SummaryResponse{}, err
	}
	var summary string
	if out.Summary != nil {
		summary = *out.Summary
	}
	c.logger.Debug("summarize completed",
		zap.Int("documents", len(documents)),
		zap.String("length", string(length)),
		zap.Duration("duration", time.Since(start)))
	return domain.SummaryResponse{Summary: summary}, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", path, err)
	}
	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: POST %s: %v", ErrTransport, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("%w: POST %s: %s%s", ErrStatus, url, resp.Status, errorDetail(resp.Body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: POST %s: %v", ErrDecode, url, err)
	}
	return nil
}

// errorDetail extracts {"error": "..."} from a failed response, if present.
func errorDetail(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(data) == 0 {
		return ""
	}
	var body struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(data, &body) == nil && body.Error != "" {
		return ": " + body.Error
	}
	return ""
}
