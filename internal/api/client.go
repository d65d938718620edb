// Package api holds the one shared HTTP client every MilkChain request goes
// through. The session manager owns its Authorization header: at any moment
// the client either carries no bearer token (logged out) or exactly the
// current session's token, and no call site supplies the header itself.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
)

const defaultTimeout = 10 * time.Second

// Config carries construction parameters for the shared client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Logger  *slog.Logger
}

// Client is the process-wide HTTP client configuration. Base URL and timeout
// are fixed at construction; the bearer token is mutated by the session
// manager on login/logout/restore.
type Client struct {
	http    *http.Client
	baseURL string
	logger  *slog.Logger

	mu    sync.RWMutex
	token string
}

// New builds the shared client. A zero timeout falls back to 10 seconds.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		logger:  logger,
	}
}

// SetToken installs the Authorization bearer token. Subsequent requests carry
// it until ClearToken is called.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// ClearToken removes the Authorization header from future requests.
func (c *Client) ClearToken() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
}

// Token returns the currently installed bearer token, empty when logged out.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// envelope is the response shape every MilkChain endpoint uses.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// post sends a JSON body to path and decodes the envelope's data into out
// when out is non-nil. Server-reported failures come back as *Error carrying
// the payload message; transport failures are wrapped as-is.
func (c *Client) post(ctx context.Context, path string, body, out any) (string, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encode %s request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "path", path, "error", err)
		return "", fmt.Errorf("call %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read %s response: %w", path, err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= 400 {
			return "", &Error{Status: resp.StatusCode}
		}
		return "", fmt.Errorf("decode %s response: %w", path, err)
	}

	if !env.Success || resp.StatusCode >= 400 {
		return "", &Error{Status: resp.StatusCode, Message: env.Message}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return "", fmt.Errorf("decode %s data: %w", path, err)
		}
	}

	return env.Message, nil
}

// Error is a server-reported request failure.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}
