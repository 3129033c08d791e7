// Package backend implements the HTTP client for the device-resident game
// service (index, search, launch).
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/sstrand/romdeck/internal/domain"
	"github.com/sstrand/romdeck/internal/ratelimit"
)

const (
	defaultTimeout = 30 * time.Second
	servicePort    = 8182
	userAgent      = "romdeck/1.0"
)

// Client talks to the game service at http://<address>:8182. Every call
// serializes through the shared rate limiter before touching the network;
// the limiter is the sole admission control protecting the device from
// request bursts.
type Client struct {
	mu      sync.RWMutex
	baseURL string

	httpClient *http.Client
	limiter    *ratelimit.Limiter
	logger     *slog.Logger
}

// NewClient creates a game service client for the given device address.
func NewClient(address string, limiter *ratelimit.Limiter, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		limiter:    limiter,
		logger:     logger,
	}
	c.SetAddress(address)
	return c
}

// SetAddress points the client at a new device address. In-flight requests
// keep the old base URL; the orchestrator discards their responses.
func (c *Client) SetAddress(address string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURL = fmt.Sprintf("http://%s:%d", address, servicePort)
}

// BaseURL returns the current base URL.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// post issues a rate-limited POST and returns the response body on any 2xx
// status.
func (c *Client) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	if err := c.limiter.Acquire(ctx); err != nil {
		return nil, err
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	reqURL := c.BaseURL() + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("game service request", "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("game service request failed", "url", reqURL, "error", err)
		return nil, domain.ErrDeviceOffline
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("game service request error", "url", reqURL, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: %s", domain.ErrBadStatus, resp.Status)
	}

	return respBody, nil
}

// BuildIndex triggers or verifies the device's game index. Any 2xx status is
// success; the body is ignored.
func (c *Client) BuildIndex(ctx context.Context) error {
	_, err := c.post(ctx, "/api/games/index", nil)
	return err
}

// Search queries the index. Empty query or system strings act as wildcards.
func (c *Client) Search(ctx context.Context, query, system string) (*domain.SearchResult, error) {
	body, err := c.post(ctx, "/api/games/search", searchRequest{Query: query, System: system})
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("search response parse error", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	return mapSearchResponse(resp), nil
}

// Launch asks the device to start a game. One best-effort call: any 2xx is
// success, the response body is ignored, and there is no retry.
func (c *Client) Launch(ctx context.Context, game domain.GameEntry) error {
	_, err := c.post(ctx, "/api/games/launch", launchRequest{Path: game.Path})
	return err
}
