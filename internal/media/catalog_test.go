package media

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"mediashelf-api/internal/cache"
	"mediashelf-api/pkg/logging"
)

type fakeMovieProvider struct {
	trendingCalls int
	movieCalls    int
	movieErr      error
}

func (f *fakeMovieProvider) TrendingMovies(ctx context.Context) ([]TrendingMovie, error) {
	f.trendingCalls++
	return []TrendingMovie{{ID: 550, Title: "Fight Club"}}, nil
}

func (f *fakeMovieProvider) TrendingShows(ctx context.Context) ([]TrendingShow, error) {
	return []TrendingShow{{ID: 1399, Title: "Game of Thrones"}}, nil
}

func (f *fakeMovieProvider) Movie(ctx context.Context, id int64) (*MovieDetail, error) {
	f.movieCalls++
	if f.movieErr != nil {
		return nil, f.movieErr
	}
	return &MovieDetail{ID: id, Title: "Fight Club", MediaType: TypeMovie}, nil
}

func (f *fakeMovieProvider) TV(ctx context.Context, id int64) (*TVDetail, error) {
	return &TVDetail{ID: id, Title: "Show", MediaType: TypeTV}, nil
}

type fakeBookProvider struct {
	bookCalls int
}

func (f *fakeBookProvider) TrendingBooks(ctx context.Context) ([]TrendingBook, error) {
	return []TrendingBook{{ID: "OL1W", Title: "Dune", Author: "Frank Herbert"}}, nil
}

func (f *fakeBookProvider) Book(ctx context.Context, id string) (*BookDetail, error) {
	f.bookCalls++
	return &BookDetail{ID: id, Title: "Dune", Authors: []Author{}, MediaType: TypeBook}, nil
}

// brokenStore fails every Get; Set records the write.
type brokenStore struct {
	sets int
}

func (s *brokenStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, errors.New("connection refused")
}

func (s *brokenStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.sets++
	return nil
}

func TestCatalogCacheHitShortCircuitsProvider(t *testing.T) {
	store := cache.NewMemoryStore()
	movies := &fakeMovieProvider{}
	catalog := NewCatalog(store, time.Minute, movies, &fakeBookProvider{})
	ctx := context.Background()

	first, err := catalog.Movie(ctx, 550)
	if err != nil {
		t.Fatalf("Movie: %v", err)
	}
	second, err := catalog.Movie(ctx, 550)
	if err != nil {
		t.Fatalf("Movie (cached): %v", err)
	}

	if movies.movieCalls != 1 {
		t.Fatalf("expected exactly one upstream fetch, got %d", movies.movieCalls)
	}
	if first.Title != second.Title || first.ID != second.ID {
		t.Fatalf("cached record differs: %#v vs %#v", first, second)
	}
	if !store.Contains("movie_550") {
		t.Fatalf("expected record cached under movie_550")
	}
}

func TestCatalogExpiredEntryRefetches(t *testing.T) {
	store := cache.NewMemoryStore()
	movies := &fakeMovieProvider{}
	catalog := NewCatalog(store, 10*time.Millisecond, movies, &fakeBookProvider{})
	ctx := context.Background()

	if _, err := catalog.Movie(ctx, 550); err != nil {
		t.Fatalf("Movie: %v", err)
	}

	time.Sleep(20 * time.Millisecond)

	if _, err := catalog.Movie(ctx, 550); err != nil {
		t.Fatalf("Movie after expiry: %v", err)
	}
	if movies.movieCalls != 2 {
		t.Fatalf("expected refetch after TTL, got %d calls", movies.movieCalls)
	}
}

func TestCatalogErrorsAreNotCached(t *testing.T) {
	store := cache.NewMemoryStore()
	movies := &fakeMovieProvider{movieErr: ErrUpstreamUnavailable}
	catalog := NewCatalog(store, time.Minute, movies, &fakeBookProvider{})
	ctx := context.Background()

	if _, err := catalog.Movie(ctx, 550); !errors.Is(err, ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
	if store.Contains("movie_550") {
		t.Fatalf("failed fetches must not be cached")
	}

	// A retry is a fresh miss that reaches upstream again.
	movies.movieErr = nil
	if _, err := catalog.Movie(ctx, 550); err != nil {
		t.Fatalf("Movie retry: %v", err)
	}
	if movies.movieCalls != 2 {
		t.Fatalf("expected 2 upstream calls, got %d", movies.movieCalls)
	}
}

func TestCatalogFallbackWithoutCredential(t *testing.T) {
	store := cache.NewMemoryStore()
	catalog := NewCatalog(store, time.Minute, nil, &fakeBookProvider{})
	ctx := context.Background()

	movies, err := catalog.TrendingMovies(ctx)
	if err != nil {
		t.Fatalf("TrendingMovies: %v", err)
	}
	if len(movies) != 3 {
		t.Fatalf("expected 3 fallback movies, got %d", len(movies))
	}
	for i, want := range []int64{1, 2, 3} {
		if movies[i].ID != want {
			t.Fatalf("expected fallback ids 1,2,3, got %#v", movies)
		}
	}

	// Fallback data is served directly, never cached.
	if store.Contains(cache.KeyTrendingMovies) {
		t.Fatalf("fallback dataset must not be cached")
	}

	// Detail lookups have no sensible mock and fail hard.
	if _, err := catalog.Movie(ctx, 550); !errors.Is(err, ErrCredentialMissing) {
		t.Fatalf("expected ErrCredentialMissing, got %v", err)
	}
	if _, err := catalog.TV(ctx, 1399); !errors.Is(err, ErrCredentialMissing) {
		t.Fatalf("expected ErrCredentialMissing, got %v", err)
	}
}

func TestCatalogBooksNeedNoCredential(t *testing.T) {
	store := cache.NewMemoryStore()
	books := &fakeBookProvider{}
	catalog := NewCatalog(store, time.Minute, nil, books)
	ctx := context.Background()

	book, err := catalog.Book(ctx, "OL1W")
	if err != nil {
		t.Fatalf("Book: %v", err)
	}
	if book.Title != "Dune" {
		t.Fatalf("unexpected book: %#v", book)
	}
	if !store.Contains("book_OL1W") {
		t.Fatalf("expected record cached under book_OL1W")
	}

	trending, err := catalog.TrendingBooks(ctx)
	if err != nil {
		t.Fatalf("TrendingBooks: %v", err)
	}
	if len(trending) != 1 || trending[0].Author != "Frank Herbert" {
		t.Fatalf("unexpected trending books: %#v", trending)
	}
}

func TestCatalogCorruptCacheEntryRefetches(t *testing.T) {
	store := cache.NewMemoryStore()
	movies := &fakeMovieProvider{}
	catalog := NewCatalog(store, time.Minute, movies, &fakeBookProvider{})

	if err := store.Set(context.Background(), "movie_550", []byte("{not json"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	core, logs := observer.New(zap.WarnLevel)
	ctx := logging.WithLogger(context.Background(), zap.New(core))

	movie, err := catalog.Movie(ctx, 550)
	if err != nil {
		t.Fatalf("Movie: %v", err)
	}
	if movie.ID != 550 {
		t.Fatalf("unexpected record: %#v", movie)
	}
	if movies.movieCalls != 1 {
		t.Fatalf("corrupt entry must fall through to the provider, got %d calls", movies.movieCalls)
	}

	// The warning carries the decode failure, not the (nil) lookup error.
	entries := logs.FilterMessage("cache_unmarshal_error").All()
	if len(entries) != 1 {
		t.Fatalf("expected one unmarshal warning, got %d", len(entries))
	}
	if msg, ok := entries[0].ContextMap()["error"].(string); !ok || msg == "" {
		t.Fatalf("unmarshal warning missing error cause: %#v", entries[0].ContextMap())
	}
}

func TestCatalogStoreErrorDegradesToMiss(t *testing.T) {
	store := &brokenStore{}
	movies := &fakeMovieProvider{}
	catalog := NewCatalog(store, time.Minute, movies, &fakeBookProvider{})
	ctx := context.Background()

	// A failing cache lookup behaves like a miss: the fetch proceeds and
	// the record is served.
	movie, err := catalog.Movie(ctx, 550)
	if err != nil {
		t.Fatalf("Movie: %v", err)
	}
	if movie.ID != 550 || movie.Title != "Fight Club" {
		t.Fatalf("unexpected record: %#v", movie)
	}
	if movies.movieCalls != 1 {
		t.Fatalf("expected one upstream fetch, got %d", movies.movieCalls)
	}
	if store.sets != 1 {
		t.Fatalf("expected fetched record written back, got %d sets", store.sets)
	}
}

func TestCatalogTrendingSlotIsShared(t *testing.T) {
	store := cache.NewMemoryStore()
	movies := &fakeMovieProvider{}
	catalog := NewCatalog(store, time.Minute, movies, &fakeBookProvider{})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := catalog.TrendingMovies(ctx); err != nil {
			t.Fatalf("TrendingMovies: %v", err)
		}
	}
	if movies.trendingCalls != 1 {
		t.Fatalf("trending list has one global slot, expected 1 fetch, got %d", movies.trendingCalls)
	}
}
