//-------------------------------------------------------------------------
//
// Vana RAG Server
//
// Copyright (c) 2026, Vana Garden Project
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

package pinecone

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vana-garden/vana-rag-server/internal/config"
	"github.com/vana-garden/vana-rag-server/internal/vectorindex"
)

// queryFixture captures the last query request received by the fixture
// server.
type queryFixture struct {
	path    string
	apiKey  string
	request QueryRequest
}

func fixtureServer(t *testing.T, fixture *queryFixture, matches []QueryMatch) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fixture.path = r.URL.Path
		fixture.apiKey = r.Header.Get("Api-Key")
		if err := json.NewDecoder(r.Body).Decode(&fixture.request); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(QueryResponse{Matches: matches}); err != nil {
			t.Errorf("failed to encode response: %v", err)
		}
	}))
}

func TestIndex_Query(t *testing.T) {
	fixture := &queryFixture{}
	server := fixtureServer(t, fixture, []QueryMatch{
		{
			ID:    "tulsi-0001",
			Score: 0.91,
			Metadata: map[string]any{
				"text":   "Tulsi leaves are used to treat coughs and colds.",
				"source": "tulsi-doc",
			},
		},
		{
			ID:    "ginger-0002",
			Score: 0.84,
			Metadata: map[string]any{
				"text":   "Ginger rhizome aids digestion.",
				"source": "ginger-doc",
			},
		},
	})
	defer server.Close()

	idx, err := New(context.Background(), config.PineconeConfig{
		IndexName: "test-index",
		Host:      server.URL,
		Namespace: "herbs",
	}, "test-key", nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	passages, err := idx.Query(context.Background(), []float32{0.1, 0.2, 0.3}, 3)
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}

	if fixture.path != "/query" {
		t.Errorf("expected path /query, got %s", fixture.path)
	}
	if fixture.apiKey != "test-key" {
		t.Errorf("expected Api-Key header test-key, got %s", fixture.apiKey)
	}
	if fixture.request.TopK != 3 {
		t.Errorf("expected topK 3, got %d", fixture.request.TopK)
	}
	if !fixture.request.IncludeMetadata {
		t.Error("expected includeMetadata to be set")
	}
	if fixture.request.Namespace != "herbs" {
		t.Errorf("expected namespace herbs, got %s", fixture.request.Namespace)
	}

	if len(passages) != 2 {
		t.Fatalf("expected 2 passages, got %d", len(passages))
	}
	if passages[0].ID != "tulsi-0001" || passages[1].ID != "ginger-0002" {
		t.Errorf("match order not preserved: got %s, %s", passages[0].ID, passages[1].ID)
	}
	if passages[0].Text != "Tulsi leaves are used to treat coughs and colds." {
		t.Errorf("unexpected passage text: %s", passages[0].Text)
	}
	if passages[0].Source != "tulsi-doc" {
		t.Errorf("expected source tulsi-doc, got %s", passages[0].Source)
	}
	if passages[0].Score != 0.91 {
		t.Errorf("expected score 0.91, got %f", passages[0].Score)
	}
}

func TestIndex_QueryMissingMetadata(t *testing.T) {
	fixture := &queryFixture{}
	server := fixtureServer(t, fixture, []QueryMatch{
		{ID: "bare-0001", Score: 0.5},
		{
			ID:       "bare-0002",
			Score:    0.4,
			Metadata: map[string]any{"text": "Neem bark extract."},
		},
	})
	defer server.Close()

	idx, err := New(context.Background(), config.PineconeConfig{
		IndexName: "test-index",
		Host:      server.URL,
	}, "test-key", nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	passages, err := idx.Query(context.Background(), []float32{0.1}, 2)
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}

	if len(passages) != 2 {
		t.Fatalf("expected 2 passages, got %d", len(passages))
	}
	if passages[0].Text != "" {
		t.Errorf("expected empty text for bare match, got %q", passages[0].Text)
	}
	if passages[0].Source != vectorindex.UnknownSource {
		t.Errorf("expected source %q, got %q", vectorindex.UnknownSource, passages[0].Source)
	}
	if passages[1].Source != vectorindex.UnknownSource {
		t.Errorf("expected source %q, got %q", vectorindex.UnknownSource, passages[1].Source)
	}
}

func TestIndex_Upsert(t *testing.T) {
	var captured UpsertRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/vectors/upsert" {
			t.Errorf("expected path /vectors/upsert, got %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(UpsertResponse{UpsertedCount: int64(len(captured.Vectors))}); err != nil {
			t.Errorf("failed to encode response: %v", err)
		}
	}))
	defer server.Close()

	idx, err := New(context.Background(), config.PineconeConfig{
		IndexName: "test-index",
		Host:      server.URL,
	}, "test-key", nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	err = idx.Upsert(context.Background(), []vectorindex.Document{
		{ID: "doc-0001", Text: "Amla fruit.", Source: "amla-doc", Embedding: []float32{0.1, 0.2}},
	})
	if err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}

	if len(captured.Vectors) != 1 {
		t.Fatalf("expected 1 vector, got %d", len(captured.Vectors))
	}
	if captured.Vectors[0].ID != "doc-0001" {
		t.Errorf("unexpected vector ID: %s", captured.Vectors[0].ID)
	}
	if captured.Vectors[0].Metadata["text"] != "Amla fruit." {
		t.Errorf("unexpected text metadata: %v", captured.Vectors[0].Metadata["text"])
	}
	if captured.Vectors[0].Metadata["source"] != "amla-doc" {
		t.Errorf("unexpected source metadata: %v", captured.Vectors[0].Metadata["source"])
	}
}

func TestClient_DescribeIndex(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/indexes/test-index" {
			t.Errorf("expected path /indexes/test-index, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(`{"name":"test-index","host":"test-index-abc.svc.pinecone.io","dimension":384,"metric":"cosine"}`)); err != nil {
			t.Errorf("failed to write response: %v", err)
		}
	}))
	defer server.Close()

	client, err := NewClient(ClientConfig{APIKey: "test-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	desc, err := client.DescribeIndex(context.Background(), "test-index")
	if err != nil {
		t.Fatalf("DescribeIndex returned error: %v", err)
	}
	if desc.Host != "test-index-abc.svc.pinecone.io" {
		t.Errorf("unexpected host: %s", desc.Host)
	}
	if desc.Dimension != 384 {
		t.Errorf("unexpected dimension: %d", desc.Dimension)
	}
}
