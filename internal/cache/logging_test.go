package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"mediashelf-api/pkg/logging"
)

// failingStore errors on every call, like a Redis backend that lost its
// connection.
type failingStore struct{}

func (failingStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, errors.New("connection refused")
}

func (failingStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return errors.New("connection refused")
}

func testCtx(t *testing.T) context.Context {
	return logging.WithLogger(context.Background(), zaptest.NewLogger(t))
}

func TestLoggingStorePassesThroughHitAndMiss(t *testing.T) {
	ctx := testCtx(t)
	s := NewLoggingStore(NewMemoryStore())

	_, hit, err := s.Get(ctx, "movie_603")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if hit {
		t.Fatalf("expected miss on empty store")
	}

	if err := s.Set(ctx, "movie_603", []byte(`{"id":603}`), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, hit, err := s.Get(ctx, "movie_603")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !hit {
		t.Fatalf("expected hit after Set")
	}
	if string(got) != `{"id":603}` {
		t.Fatalf("unexpected value: %q", got)
	}
}

func TestLoggingStorePassesThroughErrors(t *testing.T) {
	ctx := testCtx(t)
	s := NewLoggingStore(failingStore{})

	// Backend errors surface unchanged so the caller can treat the lookup
	// as a miss; the decorator never swallows them.
	value, hit, err := s.Get(ctx, "movie_603")
	if err == nil {
		t.Fatalf("expected error from failing backend")
	}
	if hit || value != nil {
		t.Fatalf("errored lookup must not report a hit, got (%q, %v)", value, hit)
	}

	if err := s.Set(ctx, "movie_603", []byte("v"), time.Minute); err == nil {
		t.Fatalf("expected Set error from failing backend")
	}
}
