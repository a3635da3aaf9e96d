//-------------------------------------------------------------------------
//
// Vana RAG Server
//
// Copyright (c) 2026, Vana Garden Project
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

// Package factory constructs the configured vector index backend.
package factory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vana-garden/vana-rag-server/internal/config"
	"github.com/vana-garden/vana-rag-server/internal/vectorindex"
	"github.com/vana-garden/vana-rag-server/internal/vectorindex/pgvector"
	"github.com/vana-garden/vana-rag-server/internal/vectorindex/pinecone"
)

// New creates the vector index named by cfg.Backend.
func New(ctx context.Context, cfg config.IndexConfig, dimensions int, pineconeAPIKey string, logger *slog.Logger) (vectorindex.Index, error) {
	switch cfg.Backend {
	case "pinecone":
		if pineconeAPIKey == "" {
			return nil, fmt.Errorf("pinecone backend requires an API key")
		}
		return pinecone.New(ctx, cfg.Pinecone, pineconeAPIKey, logger)
	case "pgvector":
		return pgvector.New(ctx, cfg, dimensions, logger)
	default:
		return nil, fmt.Errorf("unknown index backend: %s", cfg.Backend)
	}
}
