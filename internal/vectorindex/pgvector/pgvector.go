//-------------------------------------------------------------------------
//
// Vana RAG Server
//
// Copyright (c) 2026, Vana Garden Project
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

// Package pgvector implements the vector index over a PostgreSQL table
// with the pgvector extension.
package pgvector

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vana-garden/vana-rag-server/internal/config"
	"github.com/vana-garden/vana-rag-server/internal/database"
	"github.com/vana-garden/vana-rag-server/internal/vectorindex"
)

// Index serves similarity queries from a pgvector-backed passage table.
type Index struct {
	pool   *database.Pool
	table  config.TableConfig
	logger *slog.Logger
}

// New connects to PostgreSQL and ensures the passage table exists.
func New(ctx context.Context, cfg config.IndexConfig, dimensions int, logger *slog.Logger) (*Index, error) {
	pool, err := database.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.EnsureSchema(ctx, cfg.Table, dimensions); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	logger.Info("connected to pgvector index",
		"host", cfg.Database.Host,
		"database", cfg.Database.Database,
		"table", cfg.Table.Name)

	return &Index{
		pool:   pool,
		table:  cfg.Table,
		logger: logger,
	}, nil
}

// Query returns the topK passages closest to the vector, most similar first.
func (idx *Index) Query(ctx context.Context, vector []float32, topK int) ([]vectorindex.Passage, error) {
	passages, err := idx.pool.SearchPassages(ctx, idx.table, vector, topK)
	if err != nil {
		return nil, fmt.Errorf("pgvector query failed: %w", err)
	}
	return passages, nil
}

// Upsert inserts or replaces documents in the passage table.
func (idx *Index) Upsert(ctx context.Context, docs []vectorindex.Document) error {
	if err := idx.pool.UpsertPassages(ctx, idx.table, docs); err != nil {
		return fmt.Errorf("pgvector upsert failed: %w", err)
	}
	return nil
}

// Close releases the database connection pool.
func (idx *Index) Close() error {
	idx.pool.Close()
	return nil
}
