// Package userdata is a pass-through client for the external relational
// store holding profiles, reviews and lists. Records go through unchanged;
// nothing here is cached, and writes never touch the media cache.
package userdata

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

type Profile struct {
	ID        string `json:"id"`
	Username  string `json:"username,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

type Review struct {
	ID         string `json:"id,omitempty"`
	UserID     string `json:"user_id"`
	MediaType  string `json:"media_type"` // movie | tv | book
	MediaID    string `json:"media_id"`
	Rating     int    `json:"rating"`
	ReviewText string `json:"review_text,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
}

type ListItem struct {
	ID        string `json:"id,omitempty"`
	UserID    string `json:"user_id"`
	ListType  string `json:"list_type"` // watchlist | favorites | reading_list
	MediaType string `json:"media_type"`
	MediaID   string `json:"media_id"`
	Title     string `json:"title"`
	ImageURL  string `json:"image_url,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

type Stats struct {
	TotalReviews int `json:"total_reviews"`
	TotalMovies  int `json:"total_movies"`
	TotalBooks   int `json:"total_books"`
}

type Config struct {
	// required
	BaseURL    string // store root, e.g. https://xyz.supabase.co
	ServiceKey string

	UpstreamTimeout time.Duration // default: 10s
	HTTPClient      *http.Client
}

func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("BaseURL is required")
	}
	if c.ServiceKey == "" {
		return errors.New("ServiceKey is required")
	}
	return nil
}

type Store struct {
	cfg        Config
	httpClient *http.Client
	logger     *zap.Logger
}

func NewStore(cfg Config, logger *zap.Logger) (*Store, error) {
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

	return &Store{
		cfg:        cfg,
		httpClient: httpClient,
		logger:     logger.Named("userdata"),
	}, nil
}

// do issues one REST call against the store, decoding the response into out
// when out is non-nil.
func (s *Store) do(parentCtx context.Context, method, path string, prefer string, body, out any) error {
	ctx, cancel := context.WithTimeout(parentCtx, s.cfg.UpstreamTimeout)
	defer cancel()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("userdata: marshal body: %w", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.cfg.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("userdata: build request: %w", err)
	}
	req.Header.Set("apikey", s.cfg.ServiceKey)
	req.Header.Set("Authorization", "Bearer "+s.cfg.ServiceKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Warn("store request failed", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("userdata: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.logger.Warn("store request error",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return fmt.Errorf("userdata: store status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("userdata: decode response: %w", err)
		}
	}
	return nil
}

// GetProfile returns the stored profile or nil when none exists yet.
func (s *Store) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	var rows []Profile
	path := "/rest/v1/profiles?id=eq." + url.QueryEscape(userID)
	if err := s.do(ctx, http.MethodGet, path, "", nil, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// UpsertProfile creates or updates the profile row for profile.ID.
func (s *Store) UpsertProfile(ctx context.Context, profile Profile) error {
	return s.do(ctx, http.MethodPost, "/rest/v1/profiles",
		"resolution=merge-duplicates", profile, nil)
}

func (s *Store) ListReviews(ctx context.Context, userID string) ([]Review, error) {
	var rows []Review
	path := "/rest/v1/reviews?user_id=eq." + url.QueryEscape(userID) + "&order=created_at.desc"
	if err := s.do(ctx, http.MethodGet, path, "", nil, &rows); err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []Review{}
	}
	return rows, nil
}

func (s *Store) CreateReview(ctx context.Context, review Review) (*Review, error) {
	var rows []Review
	if err := s.do(ctx, http.MethodPost, "/rest/v1/reviews",
		"return=representation", review, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("userdata: store returned no review row")
	}
	return &rows[0], nil
}

// ListItems returns the user's list entries, optionally filtered by list
// type (watchlist, favorites, reading_list).
func (s *Store) ListItems(ctx context.Context, userID, listType string) ([]ListItem, error) {
	path := "/rest/v1/user_lists?user_id=eq." + url.QueryEscape(userID)
	if listType != "" {
		path += "&list_type=eq." + url.QueryEscape(listType)
	}
	path += "&order=created_at.desc"

	var rows []ListItem
	if err := s.do(ctx, http.MethodGet, path, "", nil, &rows); err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []ListItem{}
	}
	return rows, nil
}

func (s *Store) AddItem(ctx context.Context, item ListItem) (*ListItem, error) {
	var rows []ListItem
	if err := s.do(ctx, http.MethodPost, "/rest/v1/user_lists",
		"return=representation", item, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("userdata: store returned no list row")
	}
	return &rows[0], nil
}

// RemoveItem deletes a list entry, scoped to the owning user so one user
// cannot remove another's items.
func (s *Store) RemoveItem(ctx context.Context, userID, itemID string) error {
	path := "/rest/v1/user_lists?id=eq." + url.QueryEscape(itemID) +
		"&user_id=eq." + url.QueryEscape(userID)
	return s.do(ctx, http.MethodDelete, path, "", nil, nil)
}

// count performs an exact-count HEAD request and parses the Content-Range
// trailer ("0-24/3021" or "*/0").
func (s *Store) count(parentCtx context.Context, path string) (int, error) {
	ctx, cancel := context.WithTimeout(parentCtx, s.cfg.UpstreamTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, s.cfg.BaseURL+path, nil)
	if err != nil {
		return 0, fmt.Errorf("userdata: build request: %w", err)
	}
	req.Header.Set("apikey", s.cfg.ServiceKey)
	req.Header.Set("Authorization", "Bearer "+s.cfg.ServiceKey)
	req.Header.Set("Prefer", "count=exact")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("userdata: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("userdata: store status %d", resp.StatusCode)
	}

	cr := resp.Header.Get("Content-Range")
	idx := strings.LastIndex(cr, "/")
	if idx < 0 {
		return 0, fmt.Errorf("userdata: missing count in Content-Range %q", cr)
	}
	n, err := strconv.Atoi(cr[idx+1:])
	if err != nil {
		return 0, fmt.Errorf("userdata: bad count in Content-Range %q", cr)
	}
	return n, nil
}

// Stats aggregates the user's review and list counts.
func (s *Store) Stats(ctx context.Context, userID string) (*Stats, error) {
	uid := url.QueryEscape(userID)

	reviews, err := s.count(ctx, "/rest/v1/reviews?user_id=eq."+uid)
	if err != nil {
		return nil, err
	}
	movies, err := s.count(ctx, "/rest/v1/user_lists?user_id=eq."+uid+"&media_type=eq.movie")
	if err != nil {
		return nil, err
	}
	books, err := s.count(ctx, "/rest/v1/user_lists?user_id=eq."+uid+"&media_type=eq.book")
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalReviews: reviews,
		TotalMovies:  movies,
		TotalBooks:   books,
	}, nil
}
