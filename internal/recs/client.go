// Package recs asks an OpenAI-style chat completion endpoint for movie
// recommendations. One stateless outbound request: no caching, no retries,
// no streaming.
package recs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	defaultModel = "gpt-4o-mini"

	systemPrompt = "You are a movie recommendation expert. And you will only respond with what I ask. Nothing more, nothing less"
)

// RatedMovie is one title the user has rated, used to build the prompt.
type RatedMovie struct {
	Title  string `json:"title"`
	Rating int    `json:"rating"`
}

type Config struct {
	// required
	APIKey string

	BaseURL         string        // default: https://api.openai.com
	Model           string        // default: gpt-4o-mini
	UpstreamTimeout time.Duration // default: 30s

	HTTPClient *http.Client
}

func (c *Config) Validate() error {
	if c.APIKey == "" {
		return errors.New("APIKey is required")
	}
	return nil
}

func (c *Config) WithDefaults() Config {
	cfg := *c

	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.UpstreamTimeout <= 0 {
		cfg.UpstreamTimeout = 30 * time.Second
	}

	return cfg
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
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
		httpClient = &http.Client{Timeout: cfg.UpstreamTimeout}
	}

	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
		logger:     logger.Named("recs"),
	}, nil
}

// Close releases resources held by the client.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

func buildPrompt(movies []RatedMovie) string {
	rated := make([]string, 0, len(movies))
	for _, m := range movies {
		rated = append(rated, fmt.Sprintf("%s (rated %d/10)", m.Title, m.Rating))
	}

	return fmt.Sprintf(
		"Given the following movies and my ratings, recommend me a new movie to watch. The movies are: %s. Give me a list of movies and explain why the user will enjoy it in a sentence. Do not wrap the title in *",
		strings.Join(rated, ", "),
	)
}

// Recommend issues a single chat completion and returns the assistant text.
func (c *Client) Recommend(parentCtx context.Context, movies []RatedMovie) (string, error) {
	if len(movies) == 0 {
		return "", errors.New("recs: at least one rated movie is required")
	}

	ctx, cancel := context.WithTimeout(parentCtx, c.cfg.UpstreamTimeout)
	defer cancel()

	body, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(movies)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("recs: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("recs: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("recommendation request failed",
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return "", fmt.Errorf("recs: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Error("recommendation upstream error",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", raw),
		)
		return "", fmt.Errorf("recs: upstream status %d", resp.StatusCode)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("recs: decode response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", errors.New("recs: provider returned no choices")
	}

	c.logger.Info("recommendation completed",
		zap.Int("movie_count", len(movies)),
		zap.Duration("duration", time.Since(start)),
	)

	return out.Choices[0].Message.Content, nil
}
