package cache

import (
	"context"
	"strconv"
	"time"
)

// Store is the interface consumed by the catalog.
// Implemented by memory store (default) and Redis store.
// Values are opaque JSON blobs so both backends share one contract.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Fixed keys for the parameterless trending lists. Each list has exactly one
// global slot.
const (
	KeyTrendingMovies = "trending_movies"
	KeyTrendingShows  = "trending_shows"
	KeyTrendingBooks  = "trending_books"
)

// MovieKey returns the cache key for a movie detail record, e.g. "movie_603".
func MovieKey(id int64) string {
	return "movie_" + strconv.FormatInt(id, 10)
}

// TVKey returns the cache key for a TV show detail record.
func TVKey(id int64) string {
	return "tv_" + strconv.FormatInt(id, 10)
}

// BookKey returns the cache key for a book detail record. Book ids are
// Open Library work ids like "OL45804W".
func BookKey(id string) string {
	return "book_" + id
}
