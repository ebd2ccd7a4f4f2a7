package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"mediashelf-api/internal/cache"
	"mediashelf-api/internal/media"
)

type stubMovieProvider struct {
	movieErr error
}

func (s *stubMovieProvider) TrendingMovies(ctx context.Context) ([]media.TrendingMovie, error) {
	return []media.TrendingMovie{{ID: 550, Title: "Fight Club"}}, nil
}

func (s *stubMovieProvider) TrendingShows(ctx context.Context) ([]media.TrendingShow, error) {
	return []media.TrendingShow{{ID: 1399, Title: "Game of Thrones"}}, nil
}

func (s *stubMovieProvider) Movie(ctx context.Context, id int64) (*media.MovieDetail, error) {
	if s.movieErr != nil {
		return nil, s.movieErr
	}
	return &media.MovieDetail{ID: id, Title: "Fight Club", MediaType: media.TypeMovie}, nil
}

func (s *stubMovieProvider) TV(ctx context.Context, id int64) (*media.TVDetail, error) {
	return &media.TVDetail{ID: id, Title: "Show", MediaType: media.TypeTV}, nil
}

type stubBookProvider struct{}

func (s *stubBookProvider) TrendingBooks(ctx context.Context) ([]media.TrendingBook, error) {
	return []media.TrendingBook{{ID: "OL1W", Title: "Dune", Author: "Frank Herbert"}}, nil
}

func (s *stubBookProvider) Book(ctx context.Context, id string) (*media.BookDetail, error) {
	return &media.BookDetail{ID: id, Title: "Dune", Authors: []media.Author{}, MediaType: media.TypeBook}, nil
}

func newCatalogRouter(movies media.MovieTVProvider) *chi.Mux {
	catalog := media.NewCatalog(cache.NewMemoryStore(), time.Minute, movies, &stubBookProvider{})
	h := NewCatalogHandler(catalog)

	r := chi.NewRouter()
	r.Get("/api/trending/movies", h.TrendingMovies)
	r.Get("/api/trending/books", h.TrendingBooks)
	r.Get("/api/movie/{id}", h.Movie)
	r.Get("/api/tv/{id}", h.TV)
	r.Get("/api/book/{id}", h.Book)
	return r
}

func TestMovieDetailOK(t *testing.T) {
	r := newCatalogRouter(&stubMovieProvider{})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/movie/550", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var movie media.MovieDetail
	if err := json.Unmarshal(rr.Body.Bytes(), &movie); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if movie.ID != 550 || movie.Title != "Fight Club" {
		t.Fatalf("unexpected record: %#v", movie)
	}
}

func TestMovieDetailNotFound(t *testing.T) {
	r := newCatalogRouter(&stubMovieProvider{movieErr: media.ErrNotFound})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/movie/999999", nil))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestMovieDetailUpstreamErrorIsGeneric(t *testing.T) {
	r := newCatalogRouter(&stubMovieProvider{movieErr: media.ErrUpstreamUnavailable})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/movie/550", nil))

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	// Upstream details must not leak to clients.
	if body["error"] != "service temporarily unavailable" {
		t.Fatalf("unexpected error body: %#v", body)
	}
}

func TestMovieDetailCredentialMissingIsGeneric(t *testing.T) {
	// nil provider means no TMDB credential is configured.
	r := newCatalogRouter(nil)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/movie/550", nil))

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
}

func TestTrendingMoviesFallback(t *testing.T) {
	r := newCatalogRouter(nil)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/trending/movies", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var body struct {
		Results []media.TrendingMovie `json:"results"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Results) != 3 {
		t.Fatalf("expected 3 fallback entries, got %d", len(body.Results))
	}
}

func TestMovieDetailBadID(t *testing.T) {
	r := newCatalogRouter(&stubMovieProvider{})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/movie/not-a-number", nil))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}
