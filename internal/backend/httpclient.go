package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	apperrors "github.com/Rorical/RoriMail/internal/errors"
)

const (
	processPath = "/process"
	approvePath = "/approve"

	// DefaultBaseURL is where the assistant service listens in development.
	DefaultBaseURL = "http://localhost:8000"

	maxErrorBody = 512
)

// Version is sent in the User-Agent header. Overridden at build time.
var Version = "dev"

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s failed: %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s failed: %d %s", e.Op, e.StatusCode, e.Body)
}

// HTTP implements Gateway over the assistant's REST endpoints.
// It performs no retries and no caching; the transport default timeout applies.
type HTTP struct {
	// baseURL is the fixed base for all requests (e.g. "http://localhost:8000")
	baseURL string
	// client is the underlying HTTP client
	client *http.Client
	logger zerolog.Logger
}

// Option customizes an HTTP gateway.
type Option func(*HTTP)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTP) { h.client = c }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l zerolog.Logger) Option {
	return func(h *HTTP) { h.logger = l.With().Str("component", "backend").Logger() }
}

// New creates a gateway for the given base URL. Trailing slashes are trimmed.
func New(baseURL string, opts ...Option) *HTTP {
	h := &HTTP{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// BaseURL returns the base URL requests are sent to.
func (h *HTTP) BaseURL() string {
	return h.baseURL
}

// Process calls POST /process with the user's query.
func (h *HTTP) Process(ctx context.Context, req QueryRequest) (*EmailResponse, error) {
	return h.post(ctx, "process", processPath, req)
}

// Approve calls POST /approve with the tool name and args of an approved action.
func (h *HTTP) Approve(ctx context.Context, req ApprovalDecisionRequest) (*EmailResponse, error) {
	return h.post(ctx, "approve", approvePath, req)
}

func (h *HTTP) post(ctx context.Context, op, path string, body any) (*EmailResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Decode, "encode "+op+" request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Transport, "create "+op+" request", err)
	}
	h.setStandardHeaders(req)

	h.logger.Debug().Str("op", op).Str("url", req.URL.String()).Msg("Sending request")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Transport, "post "+path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, apperrors.Wrap(apperrors.Status, "post "+path, &StatusError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(b)),
		})
	}

	var out EmailResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, apperrors.Wrap(apperrors.Decode, "decode "+op+" response", err)
	}

	h.logger.Debug().
		Str("op", op).
		Int("status", resp.StatusCode).
		Bool("requires_approval", out.RequiresApproval).
		Msg("Received response")

	return &out, nil
}

func (h *HTTP) setStandardHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "rorimail/"+Version)
}
