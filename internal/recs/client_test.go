package recs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"
)

func TestNewClientValidation(t *testing.T) {
	_, err := NewClient(Config{}, nil)
	if err == nil {
		t.Fatalf("expected validation error, got nil")
	}
}

func TestRecommendSuccess(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "Watch Heat."}},
			},
		})
	}))
	defer srv.Close()

	client, err := NewClient(Config{
		APIKey:  "test-key",
		BaseURL: srv.URL,
	}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.Close()

	got, err := client.Recommend(context.Background(), []RatedMovie{
		{Title: "Fight Club", Rating: 9},
		{Title: "Se7en", Rating: 8},
	})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	if gotAuth != "Bearer test-key" {
		t.Fatalf("unexpected Authorization header: %s", gotAuth)
	}
	if gotReq.Model != defaultModel {
		t.Fatalf("unexpected model: %s", gotReq.Model)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" {
		t.Fatalf("unexpected prompt messages: %#v", gotReq.Messages)
	}
	if !strings.Contains(gotReq.Messages[1].Content, "Fight Club (rated 9/10)") {
		t.Fatalf("rated titles missing from prompt: %s", gotReq.Messages[1].Content)
	}
	if got != "Watch Heat." {
		t.Fatalf("unexpected recommendation: %q", got)
	}
}

func TestRecommendUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client, err := NewClient(Config{APIKey: "k", BaseURL: srv.URL}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.Close()

	if _, err := client.Recommend(context.Background(), []RatedMovie{{Title: "X", Rating: 5}}); err == nil {
		t.Fatalf("expected error on upstream 500")
	}
}

func TestRecommendRequiresMovies(t *testing.T) {
	client, err := NewClient(Config{APIKey: "k"}, nil)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.Close()

	if _, err := client.Recommend(context.Background(), nil); err == nil {
		t.Fatalf("expected error for empty movie list")
	}
}
