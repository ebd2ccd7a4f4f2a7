// Package tmdb fetches movie and TV metadata from The Movie Database and
// normalizes it into canonical records.
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"mediashelf-api/internal/media"
	"mediashelf-api/internal/metrics"
)

type Config struct {
	// required
	APIKey string

	BaseURL         string        // default: https://api.themoviedb.org/3
	UpstreamTimeout time.Duration // per-request timeout (default: 15s)

	// Custom HTTP client (for testing or special configs)
	HTTPClient *http.Client
}

func (c *Config) Validate() error {
	if c.APIKey == "" {
		return errors.New("APIKey is required")
	}
	return nil
}

// WithDefaults returns a copy of Config with sane defaults applied.
func (c *Config) WithDefaults() Config {
	cfg := *c

	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.themoviedb.org/3"
	}
	// Normalize BaseURL: trim trailing slashes so we can safely append paths.
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	if cfg.UpstreamTimeout <= 0 {
		cfg.UpstreamTimeout = 15 * time.Second
	}

	return cfg
}

type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	cfg = cfg.WithDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: defaultTransport(),
		}
	}

	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
		logger:     logger.Named("tmdb"),
	}, nil
}

func defaultTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}

// Close releases resources held by the client.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// getJSON fetches path with the api_key (and extra params) appended and
// decodes the body into out. Failures map onto the domain taxonomy: 404 to
// ErrNotFound, everything else (network, timeout, other statuses, decode)
// to ErrUpstreamUnavailable. No retries; the caller re-issues if it wants.
func (c *Client) getJSON(parentCtx context.Context, path string, params url.Values, out any) error {
	ctx, cancel := context.WithTimeout(parentCtx, c.cfg.UpstreamTimeout)
	defer cancel()

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.cfg.APIKey)

	reqURL := c.cfg.BaseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", media.ErrUpstreamUnavailable, err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("tmdb", "error").Inc()
		c.logger.Warn("tmdb request failed",
			zap.String("path", path),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", media.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("tmdb request",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode == http.StatusNotFound {
		metrics.UpstreamRequestsTotal.WithLabelValues("tmdb", "not_found").Inc()
		return media.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.UpstreamRequestsTotal.WithLabelValues("tmdb", "error").Inc()
		return fmt.Errorf("%w: upstream status %d", media.ErrUpstreamUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("tmdb", "error").Inc()
		return fmt.Errorf("%w: decode response: %v", media.ErrUpstreamUnavailable, err)
	}

	metrics.UpstreamRequestsTotal.WithLabelValues("tmdb", "ok").Inc()
	return nil
}

func (c *Client) TrendingMovies(ctx context.Context) ([]media.TrendingMovie, error) {
	var resp trendingMoviesResponse
	if err := c.getJSON(ctx, "/trending/movie/week", nil, &resp); err != nil {
		return nil, err
	}
	return normalizeTrendingMovies(resp), nil
}

func (c *Client) TrendingShows(ctx context.Context) ([]media.TrendingShow, error) {
	var resp trendingTVResponse
	if err := c.getJSON(ctx, "/trending/tv/week", nil, &resp); err != nil {
		return nil, err
	}
	return normalizeTrendingShows(resp), nil
}

func (c *Client) Movie(ctx context.Context, id int64) (*media.MovieDetail, error) {
	params := url.Values{}
	params.Set("append_to_response", "credits,videos")

	var resp movieResponse
	if err := c.getJSON(ctx, "/movie/"+strconv.FormatInt(id, 10), params, &resp); err != nil {
		return nil, err
	}
	return normalizeMovie(resp)
}

func (c *Client) TV(ctx context.Context, id int64) (*media.TVDetail, error) {
	params := url.Values{}
	params.Set("append_to_response", "credits,videos")

	var resp tvResponse
	if err := c.getJSON(ctx, "/tv/"+strconv.FormatInt(id, 10), params, &resp); err != nil {
		return nil, err
	}
	return normalizeTV(resp)
}
