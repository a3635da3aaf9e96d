//-------------------------------------------------------------------------
//
// Vana RAG Server
//
// Copyright (c) 2026, Vana Garden Project
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vana-garden/vana-rag-server/internal/config"
	"github.com/vana-garden/vana-rag-server/internal/pipeline"
)

// mockService implements QueryService for testing.
type mockService struct {
	chatFunc func(ctx context.Context, req pipeline.ChatRequest) (*pipeline.ChatResponse, error)
	dietFunc func(ctx context.Context, req pipeline.DietRequest) (*pipeline.DietPlanResponse, error)
}

func (m *mockService) Chat(ctx context.Context, req pipeline.ChatRequest) (*pipeline.ChatResponse, error) {
	if m.chatFunc != nil {
		return m.chatFunc(ctx, req)
	}
	return &pipeline.ChatResponse{Answer: "mock answer", Sources: []string{}}, nil
}

func (m *mockService) DietPlan(ctx context.Context, req pipeline.DietRequest) (*pipeline.DietPlanResponse, error) {
	if m.dietFunc != nil {
		return m.dietFunc(ctx, req)
	}
	return &pipeline.DietPlanResponse{Plan: "{}", SourceNodes: []string{}}, nil
}

func newTestServer(svc QueryService) *Server {
	cfg := config.DefaultConfig()
	return New(cfg, svc, nil)
}

func doRequest(s *Server, method, path, body string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != "" {
		reqBody = bytes.NewBufferString(body)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, req)
	return w
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(&mockService{})

	w := doRequest(s, http.MethodGet, "/v1/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("expected status healthy, got %s", resp.Status)
	}
}

func TestHandleChat(t *testing.T) {
	var captured pipeline.ChatRequest
	svc := &mockService{
		chatFunc: func(ctx context.Context, req pipeline.ChatRequest) (*pipeline.ChatResponse, error) {
			captured = req
			return &pipeline.ChatResponse{
				Answer:  "Tulsi soothes coughs.",
				Sources: []string{"tulsi-doc", "ginger-doc"},
			}, nil
		},
	}
	s := newTestServer(svc)

	w := doRequest(s, http.MethodPost, "/v1/chat", `{"query":"cough"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if captured.Query != "cough" {
		t.Errorf("expected query cough, got %q", captured.Query)
	}

	var resp pipeline.ChatResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Answer != "Tulsi soothes coughs." {
		t.Errorf("unexpected answer: %q", resp.Answer)
	}
	if len(resp.Sources) != 2 || resp.Sources[0] != "tulsi-doc" {
		t.Errorf("unexpected sources: %v", resp.Sources)
	}
}

func TestHandleChat_MissingQuery(t *testing.T) {
	s := newTestServer(&mockService{})

	w := doRequest(s, http.MethodPost, "/v1/chat", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var resp ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error != "Query is required" {
		t.Errorf("unexpected error message: %q", resp.Error)
	}
}

func TestHandleChat_InvalidBody(t *testing.T) {
	s := newTestServer(&mockService{})

	w := doRequest(s, http.MethodPost, "/v1/chat", `{not json`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestHandleChat_InternalError(t *testing.T) {
	svc := &mockService{
		chatFunc: func(ctx context.Context, req pipeline.ChatRequest) (*pipeline.ChatResponse, error) {
			return nil, fmt.Errorf("failed to embed query: model not loaded")
		},
	}
	s := newTestServer(svc)

	w := doRequest(s, http.MethodPost, "/v1/chat", `{"query":"cough"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}

	var resp ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error != "Internal server error" {
		t.Errorf("unexpected error message: %q", resp.Error)
	}
	if !strings.Contains(resp.Details, "model not loaded") {
		t.Errorf("expected diagnostic details, got %q", resp.Details)
	}
}

func TestHandleChat_InvalidInputFromPipeline(t *testing.T) {
	svc := &mockService{
		chatFunc: func(ctx context.Context, req pipeline.ChatRequest) (*pipeline.ChatResponse, error) {
			return nil, fmt.Errorf("%w: query is required", pipeline.ErrInvalidInput)
		},
	}
	s := newTestServer(svc)

	w := doRequest(s, http.MethodPost, "/v1/chat", `{"query":"  "}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestHandleDietPlan(t *testing.T) {
	var captured pipeline.DietRequest
	svc := &mockService{
		dietFunc: func(ctx context.Context, req pipeline.DietRequest) (*pipeline.DietPlanResponse, error) {
			captured = req
			return &pipeline.DietPlanResponse{
				Plan:        `{"breakfast":[],"lunch":[],"dinner":[]}`,
				SourceNodes: []string{"tulsi-0001"},
			}, nil
		},
	}
	s := newTestServer(svc)

	w := doRequest(s, http.MethodPost, "/v1/diet", `{"plantNames":["Tulsi","Ginger"]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if len(captured.PlantNames) != 2 || captured.PlantNames[0] != "Tulsi" {
		t.Errorf("unexpected plant names: %v", captured.PlantNames)
	}

	var resp pipeline.DietPlanResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Plan != `{"breakfast":[],"lunch":[],"dinner":[]}` {
		t.Errorf("unexpected plan: %q", resp.Plan)
	}
	if len(resp.SourceNodes) != 1 || resp.SourceNodes[0] != "tulsi-0001" {
		t.Errorf("unexpected sourceNodes: %v", resp.SourceNodes)
	}
}

func TestHandleDietPlan_EmptyPlantNames(t *testing.T) {
	s := newTestServer(&mockService{})

	for _, body := range []string{`{}`, `{"plantNames":[]}`} {
		w := doRequest(s, http.MethodPost, "/v1/diet", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %s: expected 400, got %d", body, w.Code)
			continue
		}

		var resp ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Error != "plantNames array is required" {
			t.Errorf("unexpected error message: %q", resp.Error)
		}
	}
}

func TestHandleDietPlan_GenerationFailure(t *testing.T) {
	svc := &mockService{
		dietFunc: func(ctx context.Context, req pipeline.DietRequest) (*pipeline.DietPlanResponse, error) {
			return nil, fmt.Errorf("%w: service down", pipeline.ErrGenerationUnavailable)
		},
	}
	s := newTestServer(svc)

	w := doRequest(s, http.MethodPost, "/v1/diet", `{"plantNames":["Tulsi"]}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}

	var resp ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error != "Failed to generate diet plan via LLM." {
		t.Errorf("unexpected error message: %q", resp.Error)
	}
}

func TestHandleOpenAPI(t *testing.T) {
	s := newTestServer(&mockService{})

	w := doRequest(s, http.MethodGet, "/v1/openapi.json", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var spec OpenAPISpec
	if err := json.NewDecoder(w.Body).Decode(&spec); err != nil {
		t.Fatalf("failed to decode spec: %v", err)
	}
	if spec.OpenAPI != "3.0.3" {
		t.Errorf("unexpected openapi version: %s", spec.OpenAPI)
	}
	for _, path := range []string{"/health", "/chat", "/diet"} {
		if _, ok := spec.Paths[path]; !ok {
			t.Errorf("spec missing path %s", path)
		}
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	svc := &mockService{
		chatFunc: func(ctx context.Context, req pipeline.ChatRequest) (*pipeline.ChatResponse, error) {
			panic("boom")
		},
	}
	s := newTestServer(svc)

	handler := s.applyMiddleware(s.mux)
	req := httptest.NewRequest(http.MethodPost, "/v1/chat", bytes.NewBufferString(`{"query":"cough"}`))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 after panic, got %d", w.Code)
	}
}

func TestCORSMiddleware(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.CORS.Enabled = true
	cfg.Server.CORS.AllowedOrigins = []string{"*"}
	s := New(cfg, &mockService{}, nil)

	handler := s.applyMiddleware(s.mux)
	req := httptest.NewRequest(http.MethodOptions, "/v1/chat", nil)
	req.Header.Set("Origin", "https://vana.example")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected wildcard origin, got %q", got)
	}
}
