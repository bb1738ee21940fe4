package zoomapi

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultTokenURL is the Zoom server-to-server OAuth token endpoint.
	DefaultTokenURL = "https://zoom.us/oauth/token"

	// TokenExpiryBuffer is subtracted from the token lifetime when deciding
	// whether a cached token is still usable, so requests in flight never
	// carry a token that expires mid-call.
	TokenExpiryBuffer = 5 * time.Minute

	// defaultTokenTimeout bounds a single token exchange round trip.
	defaultTokenTimeout = 30 * time.Second
)

// ErrAuthentication marks failures of the token exchange itself, or a 401
// that persists after one token refresh.
var ErrAuthentication = errors.New("zoom authentication failed")

// TokenRecord is a bearer token with its absolute expiry.
type TokenRecord struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Usable reports whether the token is valid at now with the expiry buffer
// applied.
func (r TokenRecord) Usable(now time.Time) bool {
	return r.AccessToken != "" && now.Before(r.ExpiresAt.Add(-TokenExpiryBuffer))
}

// BasicAuthHeader builds the Authorization header value for the
// client-credential exchange.
func BasicAuthHeader(clientID, clientSecret string) string {
	creds := clientID + ":" + clientSecret
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(creds))
}

// TokenManagerConfig configures a TokenManager.
type TokenManagerConfig struct {
	AccountID  string
	AuthHeader string // value for the Authorization header, see BasicAuthHeader
	TokenURL   string
	HTTPClient *http.Client
	Store      TokenStore
	Now        func() time.Time
}

// TokenManager owns the bearer token for one Zoom account: acquisition,
// expiry tracking, in-memory and durable caching, and forced invalidation.
// It is safe for concurrent use.
type TokenManager struct {
	accountID  string
	authHeader string
	tokenURL   string
	httpClient *http.Client
	store      TokenStore
	now        func() time.Time

	mu     sync.Mutex
	record TokenRecord
}

// NewTokenManager creates a token manager.
func NewTokenManager(cfg TokenManagerConfig) (*TokenManager, error) {
	if cfg.AccountID == "" {
		return nil, fmt.Errorf("account id is required")
	}
	if cfg.AuthHeader == "" {
		return nil, fmt.Errorf("auth header is required")
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = DefaultTokenURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: defaultTokenTimeout}
	}
	if cfg.Store == nil {
		cfg.Store = NewFileTokenStore("")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &TokenManager{
		accountID:  cfg.AccountID,
		authHeader: cfg.AuthHeader,
		tokenURL:   cfg.TokenURL,
		httpClient: cfg.HTTPClient,
		store:      cfg.Store,
		now:        cfg.Now,
	}, nil
}

// AccountID returns the account this manager authenticates for.
func (m *TokenManager) AccountID() string {
	return m.accountID
}

// Token returns a bearer token that is valid for at least the expiry buffer.
// Lookup order: in-memory record, durable store, upstream exchange.
func (m *TokenManager) Token(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if m.record.Usable(now) {
		return m.record.AccessToken, nil
	}

	if rec, ok := m.store.Load(m.accountID); ok && rec.Usable(now) {
		m.record = rec
		return rec.AccessToken, nil
	}

	rec, err := m.exchange(ctx)
	if err != nil {
		return "", err
	}

	if err := m.store.Save(m.accountID, rec); err != nil {
		// Persistence is best-effort; correctness never depends on it.
		slog.Debug("token cache write failed", "account_id", m.accountID, "error", err)
	}

	m.record = rec
	return rec.AccessToken, nil
}

// Invalidate clears the in-memory record and the durable copy so the next
// Token call performs a fresh exchange. Callers use this after an upstream
// 401; a revoked token must not resurface from the store.
func (m *TokenManager) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record = TokenRecord{}
	if err := m.store.Delete(m.accountID); err != nil {
		slog.Debug("token cache delete failed", "account_id", m.accountID, "error", err)
	}
}

// Cached reports whether a usable token is currently held in memory.
func (m *TokenManager) Cached() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.record.Usable(m.now())
}

// tokenResponse is the upstream token exchange response body.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// exchange performs the account_credentials grant against the token endpoint.
func (m *TokenManager) exchange(ctx context.Context) (TokenRecord, error) {
	form := url.Values{}
	form.Set("grant_type", "account_credentials")
	form.Set("account_id", m.accountID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return TokenRecord{}, fmt.Errorf("building token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", m.authHeader)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return TokenRecord{}, fmt.Errorf("%w: token exchange: %v", ErrAuthentication, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if resp.StatusCode != http.StatusOK {
		return TokenRecord{}, fmt.Errorf("%w: token exchange returned %d: %s",
			ErrAuthentication, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return TokenRecord{}, fmt.Errorf("%w: decoding token response: %v", ErrAuthentication, err)
	}
	if tr.AccessToken == "" {
		return TokenRecord{}, fmt.Errorf("%w: token response missing access_token", ErrAuthentication)
	}

	return TokenRecord{
		AccessToken: tr.AccessToken,
		ExpiresAt:   m.now().Add(time.Duration(tr.ExpiresIn) * time.Second),
	}, nil
}
