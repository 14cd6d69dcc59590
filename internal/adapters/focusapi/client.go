// Package focusapi provides the HTTP adapter for the remote focus service.
package focusapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/xvierd/focuswatch/internal/domain"
	"github.com/xvierd/focuswatch/internal/ports"
)

// Endpoint paths exposed by the focus service.
const (
	PathLiveState = "/get_eye_state"
	PathStats     = "/get_stats"
	PathHistory   = "/get_history"
	PathStart     = "/start_session"
	PathEnd       = "/end_session"
)

// maxErrorBody caps how much of a failed response body is kept for errors.
const maxErrorBody = 512

// ErrInvalidBaseURL is returned by New for unusable server addresses.
var ErrInvalidBaseURL = errors.New("invalid base url")

// APIError is returned when the service answers with a non-2xx status.
type APIError struct {
	Path       string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: unexpected status %d", e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Path, e.StatusCode, e.Body)
}

// Client talks to the focus service over HTTP.
type Client struct {
	baseURL *url.URL
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// New creates a client for the service rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidBaseURL, baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w %q: scheme must be http or https", ErrInvalidBaseURL, baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w %q: missing host", ErrInvalidBaseURL, baseURL)
	}

	c := &Client{baseURL: u, http: &http.Client{}}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the service root the client was created with.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// LiveState implements ports.FocusAPI.
func (c *Client) LiveState(ctx context.Context) (domain.LiveState, error) {
	var raw struct {
		Direction string `json:"direction"`
		Warned    bool   `json:"warned"`
	}
	if err := c.getJSON(ctx, PathLiveState, &raw); err != nil {
		return domain.LiveState{}, err
	}
	return domain.LiveState{
		Direction: domain.NormalizeDirection(raw.Direction),
		Warned:    raw.Warned,
	}, nil
}

// Stats implements ports.FocusAPI.
func (c *Client) Stats(ctx context.Context) (domain.Stats, error) {
	var stats domain.Stats
	if err := c.getJSON(ctx, PathStats, &stats); err != nil {
		return domain.Stats{}, err
	}
	return stats, nil
}

// History implements ports.FocusAPI.
func (c *Client) History(ctx context.Context) ([]domain.Session, error) {
	var sessions []domain.Session
	if err := c.getJSON(ctx, PathHistory, &sessions); err != nil {
		return nil, err
	}
	for i := range sessions {
		if sessions[i].Periods == nil {
			sessions[i].Periods = []domain.Period{}
		}
	}
	return sessions, nil
}

// StartSession implements ports.FocusAPI.
func (c *Client) StartSession(ctx context.Context) error {
	var ignored json.RawMessage
	return c.getJSON(ctx, PathStart, &ignored)
}

// EndSession implements ports.FocusAPI.
func (c *Client) EndSession(ctx context.Context) error {
	var ignored json.RawMessage
	return c.getJSON(ctx, PathEnd, &ignored)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	endpoint := c.baseURL.JoinPath(path).String()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

// Ensure Client implements ports.FocusAPI.
var _ ports.FocusAPI = (*Client)(nil)
