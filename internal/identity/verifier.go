// Package identity delegates bearer-token verification to the external auth
// service. Tokens are never decoded or validated locally.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrUnauthorized covers absent, malformed, expired and rejected tokens.
var ErrUnauthorized = errors.New("invalid or absent token")

// User is the identity returned by the auth service.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Verifier resolves a bearer token to a user identity.
type Verifier interface {
	Verify(ctx context.Context, token string) (*User, error)
}

type Config struct {
	// required
	BaseURL string // auth service root, e.g. https://xyz.supabase.co
	APIKey  string // service key sent as the apikey header

	UpstreamTimeout time.Duration // default: 10s
	HTTPClient      *http.Client
}

func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("BaseURL is required")
	}
	if c.APIKey == "" {
		return errors.New("APIKey is required")
	}
	return nil
}

type HTTPVerifier struct {
	cfg        Config
	httpClient *http.Client
	logger     *zap.Logger
}

func NewHTTPVerifier(cfg Config, logger *zap.Logger) (*HTTPVerifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.UpstreamTimeout <= 0 {
		cfg.UpstreamTimeout = 10 * time.Second
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.UpstreamTimeout}
	}

	return &HTTPVerifier{
		cfg:        cfg,
		httpClient: httpClient,
		logger:     logger.Named("identity"),
	}, nil
}

// Verify asks the auth service who the token belongs to. Any rejection maps
// to ErrUnauthorized; callers cannot distinguish why a token was refused.
func (v *HTTPVerifier) Verify(parentCtx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}

	ctx, cancel := context.WithTimeout(parentCtx, v.cfg.UpstreamTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.cfg.BaseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("identity: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", v.cfg.APIKey)

	resp, err := v.httpClient.Do(req)
	if err != nil {
		v.logger.Warn("auth verification failed", zap.Error(err))
		return nil, fmt.Errorf("identity: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		v.logger.Warn("auth service error", zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("identity: auth service status %d", resp.StatusCode)
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("identity: decode response: %w", err)
	}
	if user.ID == "" {
		return nil, ErrUnauthorized
	}

	return &user, nil
}
