//-------------------------------------------------------------------------
//
// Vana RAG Server
//
// Copyright (c) 2026, Vana Garden Project
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vana-garden/vana-rag-server/internal/config"
	"github.com/vana-garden/vana-rag-server/internal/embedding"
	"github.com/vana-garden/vana-rag-server/internal/llm"
	"github.com/vana-garden/vana-rag-server/internal/vectorindex"
	"github.com/vana-garden/vana-rag-server/internal/vectorindex/factory"
)

// Service owns the pipeline's external collaborators and exposes the two
// pipeline operations to the HTTP layer.
type Service struct {
	embedder     *embedding.Lazy
	index        vectorindex.Index
	orchestrator *Orchestrator
	logger       *slog.Logger
}

// NewService loads API keys and wires the embedder, vector index, and
// generation provider from configuration. The embedding model itself is
// not loaded here; the first Embed call (or Warmup) triggers that.
func NewService(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Service, error) {
	if logger == nil {
		logger = slog.Default()
	}

	keys, err := config.NewAPIKeyLoader(cfg.APIKeys).LoadRequiredKeys(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load API keys: %w", err)
	}

	embedder, err := embedding.NewFromConfig(cfg.Embedding, keys.OpenAI, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to configure embedder: %w", err)
	}

	index, err := factory.New(ctx, cfg.Index, cfg.Embedding.Dimensions, keys.Pinecone, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create vector index: %w", err)
	}

	apiKey := keys.Groq
	if cfg.Generation.Provider == "openai" {
		apiKey = keys.OpenAI
	}

	completer, err := llm.NewProvider(llm.Config{
		Provider: cfg.Generation.Provider,
		APIKey:   apiKey,
		Model:    cfg.Generation.Model,
		BaseURL:  cfg.Generation.BaseURL,
		Timeout:  time.Duration(cfg.Generation.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		index.Close()
		return nil, fmt.Errorf("failed to create completion provider: %w", err)
	}

	logger.Info("pipeline service ready",
		"embedding_provider", cfg.Embedding.Provider,
		"index_backend", cfg.Index.Backend,
		"generation_model", completer.ModelName())

	return &Service{
		embedder:     embedder,
		index:        index,
		orchestrator: NewOrchestrator(embedder, index, completer, cfg.Chat, cfg.Diet, logger),
		logger:       logger,
	}, nil
}

// Chat runs the chat pipeline.
func (s *Service) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	return s.orchestrator.Chat(ctx, req)
}

// DietPlan runs the diet-plan pipeline.
func (s *Service) DietPlan(ctx context.Context, req DietRequest) (*DietPlanResponse, error) {
	return s.orchestrator.DietPlan(ctx, req)
}

// Warmup starts loading the embedding model so the first request does not
// pay the cold-start cost. Safe to call concurrently with requests.
func (s *Service) Warmup(ctx context.Context) {
	s.embedder.Warmup(ctx)
}

// Close releases the embedder and index resources.
func (s *Service) Close() error {
	var firstErr error
	if err := s.embedder.Close(); err != nil {
		firstErr = err
	}
	if err := s.index.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
