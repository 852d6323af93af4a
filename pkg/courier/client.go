package courier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// defaultTokenTTL applies when the login response does not say how long the token lives.
const defaultTokenTTL = time.Hour

// Client represents a courier API client. Every call is a single attempt.
type Client struct {
	config     Config
	httpClient *http.Client
	tokens     *TokenCache
}

// NewClient creates a courier client. An unconfigured client is still usable:
// every call returns ErrNotConfigured so callers can fall back uniformly.
func NewClient(config Config, tokens *TokenCache) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if tokens == nil {
		tokens = NewTokenCache()
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
	}
}

func (c *Client) Configured() bool {
	return c.config.Configured()
}

// Cities fetches the upstream city list in {id, name} form
func (c *Client) Cities(ctx context.Context) ([]Place, error) {
	body, err := c.get(ctx, "/cities")
	if err != nil {
		return nil, err
	}
	return Normalize(body), nil
}

// Areas fetches the areas of one upstream city
func (c *Client) Areas(ctx context.Context, cityID string) ([]Place, error) {
	body, err := c.get(ctx, "/cities/"+url.PathEscape(cityID)+"/areas")
	if err != nil {
		return nil, err
	}
	return Normalize(body), nil
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// login exchanges credentials for a bearer token
func (c *Client) login(ctx context.Context) (string, time.Time, error) {
	body, err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{
		Username: c.config.Username,
		Password: c.config.Password,
	}, "")
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to log in to courier API: %w", err)
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", time.Time{}, fmt.Errorf("failed to unmarshal login response: %w", err)
	}
	if inner, ok := payload["data"].(map[string]interface{}); ok {
		payload = inner
	}

	token := firstString(payload, []string{"token", "access_token", "accessToken"})
	if token == "" {
		return "", time.Time{}, ErrNoToken
	}

	ttl := defaultTokenTTL
	for _, key := range []string{"expires_in", "expiresIn"} {
		if seconds, ok := payload[key].(float64); ok && seconds > 0 {
			ttl = time.Duration(seconds) * time.Second
			break
		}
	}
	return token, time.Now().Add(ttl), nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	token, err := c.tokens.Get(ctx, c.login)
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, http.MethodGet, path, nil, token)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			c.tokens.Invalidate()
		}
		return nil, err
	}
	return body, nil
}

// do performs an HTTP request to the courier API
func (c *Client) do(ctx context.Context, method, path string, payload interface{}, token string) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: status %d", ErrUnauthorized, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}
	return body, nil
}
