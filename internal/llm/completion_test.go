//-------------------------------------------------------------------------
//
// Vana RAG Server
//
// Copyright (c) 2026, Vana Garden Project
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// completionFixture is the subset of the chat-completions wire format the
// tests need to inspect.
type completionFixture struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	ResponseFormat *struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

func fixtureServer(t *testing.T, content string, captured *completionFixture) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("expected path /chat/completions, got %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(captured); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"choices": [{"message": {"role": "assistant", "content": ` + mustJSON(t, content) + `}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 12, "completion_tokens": 7, "total_tokens": 19}
		}`))
	}))
}

func mustJSON(t *testing.T, s string) string {
	t.Helper()
	b, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(b)
}

func TestProvider_Complete(t *testing.T) {
	var captured completionFixture
	server := fixtureServer(t, "Tulsi supports respiratory health.", &captured)
	defer server.Close()

	provider, err := NewProvider(Config{
		Provider: "groq",
		APIKey:   "test-key",
		Model:    "llama-3.1-8b-instant",
		BaseURL:  server.URL,
	})
	if err != nil {
		t.Fatalf("NewProvider failed: %v", err)
	}

	resp, err := provider.Complete(context.Background(), CompletionRequest{
		SystemPrompt: "You are an herbal sage.",
		Messages:     []Message{{Role: "user", Content: "What is tulsi good for?"}},
		MaxTokens:    1024,
		Temperature:  0.5,
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if resp.Content != "Tulsi supports respiratory health." {
		t.Errorf("unexpected content: %q", resp.Content)
	}
	if resp.Usage.TotalTokens != 19 {
		t.Errorf("expected 19 total tokens, got %d", resp.Usage.TotalTokens)
	}

	if captured.Model != "llama-3.1-8b-instant" {
		t.Errorf("expected model llama-3.1-8b-instant, got %s", captured.Model)
	}
	if len(captured.Messages) != 2 {
		t.Fatalf("expected system + user message, got %d messages", len(captured.Messages))
	}
	if captured.Messages[0].Role != "system" {
		t.Errorf("expected first message role system, got %s", captured.Messages[0].Role)
	}
	if captured.ResponseFormat != nil {
		t.Error("expected no response_format for plain completion")
	}
}

func TestProvider_CompleteJSONMode(t *testing.T) {
	var captured completionFixture
	server := fixtureServer(t, `{"breakfast":[]}`, &captured)
	defer server.Close()

	provider, err := NewProvider(Config{
		Provider: "groq",
		APIKey:   "test-key",
		Model:    "llama-3.1-8b-instant",
		BaseURL:  server.URL,
	})
	if err != nil {
		t.Fatalf("NewProvider failed: %v", err)
	}

	resp, err := provider.Complete(context.Background(), CompletionRequest{
		Messages: []Message{{Role: "user", Content: "plan"}},
		JSONMode: true,
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if captured.ResponseFormat == nil || captured.ResponseFormat.Type != "json_object" {
		t.Errorf("expected response_format json_object, got %+v", captured.ResponseFormat)
	}
	if resp.Content != `{"breakfast":[]}` {
		t.Errorf("unexpected content: %q", resp.Content)
	}
}

func TestProvider_CompleteServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error": {"message": "over capacity"}}`))
	}))
	defer server.Close()

	provider, err := NewProvider(Config{
		Provider: "groq",
		APIKey:   "test-key",
		Model:    "llama-3.1-8b-instant",
		BaseURL:  server.URL,
	})
	if err != nil {
		t.Fatalf("NewProvider failed: %v", err)
	}

	if _, err := provider.Complete(context.Background(), CompletionRequest{
		Messages: []Message{{Role: "user", Content: "hi"}},
	}); err == nil {
		t.Fatal("expected error from 503 response")
	}
}

func TestNewProvider_GenericRequiresBaseURL(t *testing.T) {
	if _, err := NewProvider(Config{Provider: "acme", Model: "m"}); err == nil {
		t.Fatal("expected error for generic provider without base_url")
	}
}

func TestNewProvider_RequiresModel(t *testing.T) {
	if _, err := NewProvider(Config{Provider: "groq"}); err == nil {
		t.Fatal("expected error for missing model")
	}
}
