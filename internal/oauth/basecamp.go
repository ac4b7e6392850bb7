package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MikeSquared-Agency/promisekeeper/internal/config"
)

var ErrNotConfigured = errors.New("OAuth configuration missing")

// TokenResponse is the upstream token endpoint reply, kept raw so it can be
// relayed to the app unchanged.
type TokenResponse struct {
	StatusCode int
	Body       []byte
}

func (t *TokenResponse) OK() bool {
	return t.StatusCode >= 200 && t.StatusCode < 300
}

// JSON returns the body when it is valid JSON.
func (t *TokenResponse) JSON() (json.RawMessage, bool) {
	if !json.Valid(t.Body) {
		return nil, false
	}
	return json.RawMessage(t.Body), true
}

// BasecampClient runs the server side of the Basecamp (37signals Launchpad)
// authorization code flow. The client secret never leaves the server.
type BasecampClient struct {
	cfg    config.BasecampConfig
	client *http.Client
	logger *slog.Logger
}

func NewBasecampClient(cfg config.BasecampConfig, logger *slog.Logger) *BasecampClient {
	return &BasecampClient{
		cfg:    cfg,
		client: &http.Client{Timeout: 15 * time.Second},
		logger: logger,
	}
}

// CanExchange reports whether code exchange is configured.
func (c *BasecampClient) CanExchange() bool {
	return c.cfg.CanExchange()
}

// CanRefresh reports whether token refresh is configured. The redirect URI
// is not needed for this grant.
func (c *BasecampClient) CanRefresh() bool {
	return c.cfg.ClientID != "" && c.cfg.ClientSecret != ""
}

// AuthURL builds the authorization page URL the app should open.
func (c *BasecampClient) AuthURL(state string) (string, error) {
	if !c.cfg.Enabled() {
		return "", ErrNotConfigured
	}

	u, err := url.Parse(strings.TrimSuffix(c.cfg.AuthURL, "/") + "/new")
	if err != nil {
		return "", fmt.Errorf("parse auth url: %w", err)
	}
	q := url.Values{}
	q.Set("client_id", c.cfg.ClientID)
	q.Set("redirect_uri", c.cfg.RedirectURI)
	q.Set("response_type", "code")
	q.Set("state", state)
	q.Set("type", "web_server")
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// ExchangeCode trades an authorization code for tokens.
func (c *BasecampClient) ExchangeCode(ctx context.Context, code string) (*TokenResponse, error) {
	if !c.CanExchange() {
		return nil, ErrNotConfigured
	}

	form := url.Values{}
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)
	form.Set("code", code)
	form.Set("redirect_uri", c.cfg.RedirectURI)
	form.Set("grant_type", "authorization_code")
	form.Set("type", "web_server")
	return c.postToken(ctx, "authorization_code", form)
}

// Refresh trades a refresh token for a new access token.
func (c *BasecampClient) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	if !c.CanRefresh() {
		return nil, ErrNotConfigured
	}

	form := url.Values{}
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)
	form.Set("refresh_token", refreshToken)
	form.Set("grant_type", "refresh_token")
	form.Set("type", "web_server")
	return c.postToken(ctx, "refresh_token", form)
}

func (c *BasecampClient) postToken(ctx context.Context, grant string, form url.Values) (*TokenResponse, error) {
	endpoint := strings.TrimSuffix(c.cfg.AuthURL, "/") + "/token"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("basecamp token request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	c.logger.InfoContext(ctx, "basecamp token response",
		"grant_type", grant,
		"status", resp.StatusCode,
		"bytes", len(body),
	)
	return &TokenResponse{StatusCode: resp.StatusCode, Body: body}, nil
}
