package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/ytget/ai-generator/internal/model"
)

// Default endpoints of the hosted generation functions
const (
	DefaultImageEndpoint = "https://functions.poehali.dev/call/generate_image"
	DefaultVideoEndpoint = "https://functions.poehali.dev/call/generate_video"
)

const (
	DefaultSafetyTolerance = 6
	DefaultUserAgent       = "ai-generator"

	// errorBodyLimit caps how much of a failed response is kept for logs
	errorBodyLimit = 512
	// responseLimit caps the size of a success body
	responseLimit = 1 << 20
)

// Endpoints maps each media kind to its generation URL
type Endpoints struct {
	Image string
	Video string
}

// DefaultEndpoints returns the hosted endpoints
func DefaultEndpoints() Endpoints {
	return Endpoints{Image: DefaultImageEndpoint, Video: DefaultVideoEndpoint}
}

// For returns the endpoint for kind
func (e Endpoints) For(kind model.MediaKind) (string, error) {
	var url string
	switch kind {
	case model.KindImage:
		url = e.Image
	case model.KindVideo:
		url = e.Video
	default:
		return "", &model.ValidationError{Field: "kind", Reason: fmt.Sprintf("unsupported media kind %q", kind)}
	}
	if url == "" {
		return "", fmt.Errorf("no endpoint configured for %s", kind)
	}
	return url, nil
}

// Request is the JSON body sent to a generation endpoint
type Request struct {
	Prompt          string `json:"prompt"`
	SafetyTolerance int    `json:"safety_tolerance"`
}

// Response is the JSON body returned on success
type Response struct {
	URL string `json:"url"`
}

// Client calls the generation endpoints over HTTP
type Client struct {
	httpClient      *http.Client
	mu              sync.RWMutex
	endpoints       Endpoints
	safetyTolerance int
	userAgent       string
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for requests
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithSafetyTolerance overrides the safety_tolerance sent with every prompt
func WithSafetyTolerance(v int) Option {
	return func(c *Client) {
		c.safetyTolerance = v
	}
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient creates a new generation client. Request deadlines come from the
// caller's context, so the default HTTP client has no timeout of its own.
func NewClient(endpoints Endpoints, opts ...Option) *Client {
	c := &Client{
		httpClient:      &http.Client{},
		endpoints:       endpoints,
		safetyTolerance: DefaultSafetyTolerance,
		userAgent:       DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoints returns the configured endpoints
func (c *Client) Endpoints() Endpoints {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.endpoints
}

// SetEndpoints replaces the endpoints used by subsequent requests
func (c *Client) SetEndpoints(endpoints Endpoints) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.endpoints = endpoints
}

// Generate posts prompt to the endpoint for kind and returns the asset URL.
// Any non-2xx status is a failure; the error body is not interpreted.
func (c *Client) Generate(ctx context.Context, kind model.MediaKind, prompt string) (string, error) {
	endpoint, err := c.Endpoints().For(kind)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(Request{Prompt: prompt, SafetyTolerance: c.safetyTolerance})
	if err != nil {
		return "", &model.GenerationError{Kind: kind, Err: fmt.Errorf("encode request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &model.GenerationError{Kind: kind, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	slog.Debug("sending generation request", "kind", kind, "endpoint", endpoint, "prompt_len", len(prompt))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &model.GenerationError{Kind: kind, Timeout: isTimeout(ctx, err), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		slog.Warn("generation endpoint returned error status",
			"kind", kind,
			"status", resp.StatusCode,
			"body", strings.TrimSpace(string(excerpt)))
		return "", &model.GenerationError{Kind: kind, StatusCode: resp.StatusCode}
	}

	var out Response
	if err := json.NewDecoder(io.LimitReader(resp.Body, responseLimit)).Decode(&out); err != nil {
		return "", &model.GenerationError{Kind: kind, Timeout: isTimeout(ctx, err), Err: fmt.Errorf("decode response: %w", err)}
	}
	out.URL = strings.TrimSpace(out.URL)
	if out.URL == "" {
		return "", &model.GenerationError{Kind: kind, Err: errors.New("response has no url")}
	}

	return out.URL, nil
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
