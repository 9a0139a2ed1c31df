package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"review-backend/internal/llm"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := &Client{
		apiKey:     "test-key",
		model:      "gpt-test",
		apiURL:     srv.URL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
	return client, srv
}

func chatReply(content string) string {
	payload := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": content}},
		},
	}
	data, _ := json.Marshal(payload)
	return string(data)
}

func TestReviewCodeReturnsBucketedJSON(t *testing.T) {
	feedback := `{"Critical":["Null deref on empty input. Add a guard."],"High":[],"Medium":[],"Low":[]}`
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing auth header")
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.ResponseFormat == nil || req.ResponseFormat.Type != "json_object" {
			t.Errorf("review calls must request a json_object response")
		}
		w.Write([]byte(chatReply(feedback)))
	})

	raw, err := client.ReviewCode(context.Background(), llm.Input{Language: "go", Code: "package main"})
	if err != nil {
		t.Fatalf("ReviewCode: %v", err)
	}
	if string(raw) != feedback {
		t.Fatalf("unexpected raw feedback: %s", raw)
	}
}

func TestReviewCodeRepairsInvalidJSON(t *testing.T) {
	calls := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Write([]byte(chatReply("not json at all")))
			return
		}
		w.Write([]byte(chatReply(`{"Critical":[],"High":[],"Medium":[],"Low":[]}`)))
	})

	raw, err := client.ReviewCode(context.Background(), llm.Input{Language: "go", Code: "x"})
	if err != nil {
		t.Fatalf("ReviewCode: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected one repair attempt, got %d calls", calls)
	}
	if !json.Valid(raw) {
		t.Fatalf("expected valid JSON after repair, got %s", raw)
	}
}

func TestReviewCodeProviderError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":{"message":"rate limited","type":"rate_limit"}}`))
	})

	if _, err := client.ReviewCode(context.Background(), llm.Input{Code: "x"}); err == nil {
		t.Fatal("expected provider error")
	}
}

func TestRewriteCodeReturnsText(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.ResponseFormat != nil {
			t.Errorf("rewrite calls must not force a JSON response")
		}
		w.Write([]byte(chatReply("```go\npackage main\n```")))
	})

	out, err := client.RewriteCode(context.Background(), llm.Input{Language: "go", Code: "package main"})
	if err != nil {
		t.Fatalf("RewriteCode: %v", err)
	}
	if out != "```go\npackage main\n```" {
		t.Fatalf("unexpected rewrite output: %q", out)
	}
}

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient("", "gpt-test"); err == nil {
		t.Fatal("expected error for missing api key")
	}
	if _, err := NewClient("key", ""); err == nil {
		t.Fatal("expected error for missing model")
	}
}
