package identity

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap/zaptest"
)

func TestVerifySuccess(t *testing.T) {
	var gotAuth, gotAPIKey string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/user" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		gotAPIKey = r.Header.Get("apikey")
		_ = json.NewEncoder(w).Encode(User{ID: "u1", Email: "sam@example.com"})
	}))
	defer srv.Close()

	v, err := NewHTTPVerifier(Config{
		BaseURL: srv.URL,
		APIKey:  "service-key",
	}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewHTTPVerifier: %v", err)
	}

	user, err := v.Verify(context.Background(), "user-token")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}

	if gotAuth != "Bearer user-token" {
		t.Fatalf("unexpected Authorization header: %s", gotAuth)
	}
	if gotAPIKey != "service-key" {
		t.Fatalf("unexpected apikey header: %s", gotAPIKey)
	}
	if user.ID != "u1" || user.Email != "sam@example.com" {
		t.Fatalf("unexpected user: %#v", user)
	}
}

func TestVerifyRejectedToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	v, err := NewHTTPVerifier(Config{BaseURL: srv.URL, APIKey: "k"}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewHTTPVerifier: %v", err)
	}

	if _, err := v.Verify(context.Background(), "bad-token"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestVerifyEmptyToken(t *testing.T) {
	v, err := NewHTTPVerifier(Config{BaseURL: "http://localhost:1", APIKey: "k"}, nil)
	if err != nil {
		t.Fatalf("NewHTTPVerifier: %v", err)
	}

	// Empty tokens short-circuit without an upstream call.
	if _, err := v.Verify(context.Background(), ""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
