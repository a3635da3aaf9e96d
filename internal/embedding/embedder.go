//-------------------------------------------------------------------------
//
// Vana RAG Server
//
// Copyright (c) 2026, Vana Garden Project
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

// Package embedding turns text into fixed-length dense vectors for
// similarity search. The primary backend runs a sentence-transformer ONNX
// model in process; a remote OpenAI-compatible backend and a deterministic
// mock are also available. Model loading is expensive and happens at most
// once per process (see Lazy).
package embedding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vana-garden/vana-rag-server/internal/config"
)

// ErrUnavailable indicates the embedding backend could not be loaded or
// failed to produce a usable vector.
var ErrUnavailable = errors.New("embedding model unavailable")

// Embedder produces vector embeddings for text.
type Embedder interface {
	// Embed returns the embedding for text. The returned vector has
	// Dimensions() elements and unit L2 norm.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the embedding dimensionality.
	Dimensions() int

	// Close releases backend resources.
	Close() error
}

// NewFromConfig builds the configured embedding backend wrapped in a Lazy
// loader, so the expensive model load is deferred to the first Embed call
// and shared across concurrent callers.
func NewFromConfig(cfg config.EmbeddingConfig, openAIKey string, logger *slog.Logger) (*Lazy, error) {
	var factory Factory

	switch cfg.Provider {
	case "local":
		factory = func(ctx context.Context) (Embedder, error) {
			return NewONNXEmbedder(cfg.ModelPath, cfg.Dimensions, cfg.MaxTokens)
		}
	case "remote":
		factory = func(ctx context.Context) (Embedder, error) {
			return NewRemoteEmbedder(RemoteConfig{
				APIKey:     openAIKey,
				BaseURL:    cfg.BaseURL,
				Model:      cfg.Model,
				Dimensions: cfg.Dimensions,
			})
		}
	case "mock":
		factory = func(ctx context.Context) (Embedder, error) {
			return NewMockEmbedder(cfg.Dimensions), nil
		}
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", cfg.Provider)
	}

	return NewLazy(factory, cfg.Dimensions, logger), nil
}
