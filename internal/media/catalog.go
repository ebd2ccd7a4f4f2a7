package media

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"mediashelf-api/internal/cache"
	"mediashelf-api/pkg/logging"
)

// MovieTVProvider is implemented by the TMDB client.
type MovieTVProvider interface {
	TrendingMovies(ctx context.Context) ([]TrendingMovie, error)
	TrendingShows(ctx context.Context) ([]TrendingShow, error)
	Movie(ctx context.Context, id int64) (*MovieDetail, error)
	TV(ctx context.Context, id int64) (*TVDetail, error)
}

// BookProvider is implemented by the Open Library client.
type BookProvider interface {
	TrendingBooks(ctx context.Context) ([]TrendingBook, error)
	Book(ctx context.Context, id string) (*BookDetail, error)
}

// Catalog is the aggregation layer in front of the providers. Per resource
// it computes a cache key, serves hits unchanged, and on a miss fetches,
// normalizes and stores. Concurrent misses for the same cold key are not
// deduplicated: both fetch, last write wins, which is safe because
// normalization is idempotent and upstream data is authoritative.
type Catalog struct {
	store cache.Store
	ttl   time.Duration

	// movies is nil when no TMDB credential is configured; trending lists
	// then degrade to the static fallback, detail lookups fail with
	// ErrCredentialMissing.
	movies MovieTVProvider
	books  BookProvider
}

func NewCatalog(store cache.Store, ttl time.Duration, movies MovieTVProvider, books BookProvider) *Catalog {
	return &Catalog{
		store:  store,
		ttl:    ttl,
		movies: movies,
		books:  books,
	}
}

// cached runs the miss path through the cache: on hit the stored record is
// returned unchanged with no revalidation; on miss the fetched record is
// stored under key. Nothing is cached on failure, so a retry by the caller
// is a fresh miss. Cache errors are best-effort: logged, treated as a miss.
func cached[T any](ctx context.Context, c *Catalog, key string, fetch func(context.Context) (T, error)) (T, error) {
	var zero T
	logger := logging.L(ctx)

	raw, hit, err := c.store.Get(ctx, key)
	if err != nil {
		logger.Warn("cache_get_error", zap.String("cache_key", key), zap.Error(err))
	}
	if hit {
		var out T
		uerr := json.Unmarshal(raw, &out)
		if uerr == nil {
			return out, nil
		}
		logger.Warn("cache_unmarshal_error", zap.String("cache_key", key), zap.Error(uerr))
	}

	out, err := fetch(ctx)
	if err != nil {
		return zero, err
	}

	if raw, err := json.Marshal(out); err != nil {
		logger.Warn("cache_marshal_error", zap.String("cache_key", key), zap.Error(err))
	} else if err := c.store.Set(ctx, key, raw, c.ttl); err != nil {
		logger.Warn("cache_set_error", zap.String("cache_key", key), zap.Error(err))
	}

	return out, nil
}

func (c *Catalog) TrendingMovies(ctx context.Context) ([]TrendingMovie, error) {
	if c.movies == nil {
		return FallbackTrendingMovies(), nil
	}
	return cached(ctx, c, cache.KeyTrendingMovies, c.movies.TrendingMovies)
}

func (c *Catalog) TrendingShows(ctx context.Context) ([]TrendingShow, error) {
	if c.movies == nil {
		return FallbackTrendingShows(), nil
	}
	return cached(ctx, c, cache.KeyTrendingShows, c.movies.TrendingShows)
}

func (c *Catalog) TrendingBooks(ctx context.Context) ([]TrendingBook, error) {
	return cached(ctx, c, cache.KeyTrendingBooks, c.books.TrendingBooks)
}

func (c *Catalog) Movie(ctx context.Context, id int64) (*MovieDetail, error) {
	if c.movies == nil {
		return nil, ErrCredentialMissing
	}
	return cached(ctx, c, cache.MovieKey(id), func(ctx context.Context) (*MovieDetail, error) {
		return c.movies.Movie(ctx, id)
	})
}

func (c *Catalog) TV(ctx context.Context, id int64) (*TVDetail, error) {
	if c.movies == nil {
		return nil, ErrCredentialMissing
	}
	return cached(ctx, c, cache.TVKey(id), func(ctx context.Context) (*TVDetail, error) {
		return c.movies.TV(ctx, id)
	})
}

func (c *Catalog) Book(ctx context.Context, id string) (*BookDetail, error) {
	return cached(ctx, c, cache.BookKey(id), func(ctx context.Context) (*BookDetail, error) {
		return c.books.Book(ctx, id)
	})
}
