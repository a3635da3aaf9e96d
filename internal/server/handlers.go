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
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vana-garden/vana-rag-server/internal/pipeline"
)

// HealthResponse is the response for the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// handleHealth handles the GET /v1/health endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, HealthResponse{Status: "healthy"})
}

// handleChat handles the POST /v1/chat endpoint.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req pipeline.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if req.Query == "" {
		s.respondError(w, http.StatusBadRequest, "Query is required", "")
		return
	}

	resp, err := s.service.Chat(r.Context(), req)
	if err != nil {
		s.respondPipelineError(w, "chat", err)
		return
	}

	s.respondJSON(w, http.StatusOK, resp)
}

// handleDietPlan handles the POST /v1/diet endpoint.
func (s *Server) handleDietPlan(w http.ResponseWriter, r *http.Request) {
	var req pipeline.DietRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if len(req.PlantNames) == 0 {
		s.respondError(w, http.StatusBadRequest, "plantNames array is required", "")
		return
	}

	resp, err := s.service.DietPlan(r.Context(), req)
	if err != nil {
		s.respondPipelineError(w, "diet", err)
		return
	}

	s.respondJSON(w, http.StatusOK, resp)
}

// respondPipelineError maps pipeline errors to HTTP responses.
func (s *Server) respondPipelineError(w http.ResponseWriter, name string, err error) {
	switch {
	case errors.Is(err, pipeline.ErrInvalidInput):
		s.respondError(w, http.StatusBadRequest, err.Error(), "")
	case errors.Is(err, pipeline.ErrGenerationUnavailable):
		s.logger.Error("generation failed", "pipeline", name, "error", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to generate diet plan via LLM.", "")
	default:
		s.logger.Error("pipeline failed", "pipeline", name, "error", err)
		s.respondError(w, http.StatusInternalServerError, "Internal server error", err.Error())
	}
}

// respondJSON sends a JSON response with RFC 8631 Link header for API
// discovery.
func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Link", `</v1/openapi.json>; rel="service-desc"`)
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

// respondError sends an error response.
func (s *Server) respondError(w http.ResponseWriter, status int, message, details string) {
	s.respondJSON(w, status, ErrorResponse{
		Error:   message,
		Details: details,
	})
}
