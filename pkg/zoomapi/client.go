package zoomapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the Zoom REST API prefix.
	DefaultBaseURL = "https://api.zoom.us/v2"

	// defaultRequestTimeout bounds a single API round trip.
	defaultRequestTimeout = 30 * time.Second

	// maxErrorBody caps how much of an upstream error body is read for
	// diagnostics.
	maxErrorBody = 4 << 10
)

// ClientConfig configures a Client.
type ClientConfig struct {
	BaseURL    string
	HTTPClient *http.Client
}

// Client issues authenticated GET requests against the Zoom API. A 401
// response invalidates the cached token and retries the request exactly once;
// a second 401 surfaces as ErrAuthentication. Other non-2xx responses are
// returned as descriptive errors without retry.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     *TokenManager
}

// NewClient creates an API client bound to a token manager.
func NewClient(cfg ClientConfig, tokens *TokenManager) (*Client, error) {
	if tokens == nil {
		return nil, fmt.Errorf("token manager is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: defaultRequestTimeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: cfg.HTTPClient,
		tokens:     tokens,
	}, nil
}

// Tokens returns the underlying token manager.
func (c *Client) Tokens() *TokenManager {
	return c.tokens
}

// Get fetches path with the given query parameters and decodes the JSON
// response into out. Pass a nil out to discard the body.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	body, err := c.get(ctx, path, query, true)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

// get performs one authenticated request, retrying once after a 401 when
// retryAuth is set.
func (c *Client) get(ctx context.Context, path string, query url.Values, retryAuth bool) ([]byte, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if retryAuth {
			c.tokens.Invalidate()
			return c.get(ctx, path, query, false)
		}
		return nil, fmt.Errorf("%w: %s returned 401 after token refresh: %s",
			ErrAuthentication, path, strings.TrimSpace(string(body)))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("zoom api request %s failed: %d: %s",
			path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", path, err)
	}
	return body, nil
}

// ListLocations fetches the full location list.
func (c *Client) ListLocations(ctx context.Context, pageSize int) (LocationList, error) {
	q := url.Values{"page_size": {strconv.Itoa(pageSize)}}
	var list LocationList
	if err := c.Get(ctx, "rooms/locations", q, &list); err != nil {
		return LocationList{}, err
	}
	return list, nil
}

// ListRooms fetches rooms, optionally narrowed to one location.
func (c *Client) ListRooms(ctx context.Context, opts RoomListOptions) (RoomList, error) {
	q := url.Values{}
	if opts.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(opts.PageSize))
	}
	if opts.LocationID != "" {
		q.Set("location_id", opts.LocationID)
	}
	var list RoomList
	if err := c.Get(ctx, "rooms", q, &list); err != nil {
		return RoomList{}, err
	}
	return list, nil
}

// RoomDetails fetches the full detail document for one room.
func (c *Client) RoomDetails(ctx context.Context, roomID string) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.Get(ctx, "rooms/"+url.PathEscape(roomID), nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// RoomEvents fetches recent past events for one room.
func (c *Client) RoomEvents(ctx context.Context, roomID string, pageSize int) (json.RawMessage, error) {
	q := url.Values{
		"page_size": {strconv.Itoa(pageSize)},
		"type":      {"past"},
	}
	var raw json.RawMessage
	if err := c.Get(ctx, "rooms/"+url.PathEscape(roomID)+"/events", q, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
