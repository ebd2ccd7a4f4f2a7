// Package openlibrary fetches book metadata from Open Library and
// normalizes it into canonical records. No API credential is required.
package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"mediashelf-api/internal/media"
	"mediashelf-api/internal/metrics"
)

type Config struct {
	BaseURL         string        // default: https://openlibrary.org
	UpstreamTimeout time.Duration // per-request timeout (default: 15s)

	// Custom HTTP client (for testing or special configs)
	HTTPClient *http.Client
}

// WithDefaults returns a copy of Config with sane defaults applied.
func (c *Config) WithDefaults() Config {
	cfg := *c

	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://openlibrary.org"
	}
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

func NewClient(cfg Config, logger *zap.Logger) *Client {
	cfg = cfg.WithDefaults()

	if logger == nil {
		logger = zap.NewNop()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: &http.Transport{
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
			},
		}
	}

	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
		logger:     logger.Named("openlibrary"),
	}
}

// Close releases resources held by the client.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// getJSON fetches path and decodes the body into out. 404 maps to
// ErrNotFound, anything else to ErrUpstreamUnavailable.
func (c *Client) getJSON(parentCtx context.Context, path string, out any) error {
	ctx, cancel := context.WithTimeout(parentCtx, c.cfg.UpstreamTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", media.ErrUpstreamUnavailable, err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("openlibrary", "error").Inc()
		c.logger.Warn("openlibrary request failed",
			zap.String("path", path),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", media.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("openlibrary request",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode == http.StatusNotFound {
		metrics.UpstreamRequestsTotal.WithLabelValues("openlibrary", "not_found").Inc()
		return media.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.UpstreamRequestsTotal.WithLabelValues("openlibrary", "error").Inc()
		return fmt.Errorf("%w: upstream status %d", media.ErrUpstreamUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("openlibrary", "error").Inc()
		return fmt.Errorf("%w: decode response: %v", media.ErrUpstreamUnavailable, err)
	}

	metrics.UpstreamRequestsTotal.WithLabelValues("openlibrary", "ok").Inc()
	return nil
}

// Book fetches a work plus one author lookup per author reference.
// Individual author failures drop that author only; the book still
// succeeds. This is the one place isolated sub-failures must not propagate.
func (c *Client) Book(ctx context.Context, id string) (*media.BookDetail, error) {
	var work workResponse
	if err := c.getJSON(ctx, "/works/"+id+".json", &work); err != nil {
		return nil, err
	}

	authors := c.fetchAuthors(ctx, work.Authors)

	return normalizeBook(id, work, authors)
}

// fetchAuthors is an explicit fold over the author references: each fetch
// yields either an author or a dropped failure, never an error for the
// whole book.
func (c *Client) fetchAuthors(ctx context.Context, refs []authorRef) []media.Author {
	authors := make([]media.Author, 0, len(refs))

	for _, ref := range refs {
		key := ref.Author.Key
		if key == "" {
			continue
		}

		var resp authorResponse
		if err := c.getJSON(ctx, key+".json", &resp); err != nil {
			c.logger.Warn("author fetch failed, skipping",
				zap.String("author_key", key),
				zap.Error(err),
			)
			continue
		}

		authors = append(authors, normalizeAuthor(key, resp))
	}

	return authors
}

func (c *Client) TrendingBooks(ctx context.Context) ([]media.TrendingBook, error) {
	var resp trendingResponse
	if err := c.getJSON(ctx, "/trending/daily.json?limit=12", &resp); err != nil {
		return nil, err
	}
	return normalizeTrendingBooks(resp), nil
}
