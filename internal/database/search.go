//-------------------------------------------------------------------------
//
// Vana RAG Server
//
// Copyright (c) 2026, Vana Garden Project
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"

	"github.com/vana-garden/vana-rag-server/internal/config"
	"github.com/vana-garden/vana-rag-server/internal/vectorindex"
)

// SearchPassages performs cosine-similarity search over the passage table
// and returns the topK closest passages, most similar first. Scores are
// cosine similarity in [-1, 1].
func (p *Pool) SearchPassages(ctx context.Context, table config.TableConfig, vector []float32, topK int) ([]vectorindex.Passage, error) {
	// Identifiers cannot be bound as parameters, so they are sanitized
	// before interpolation.
	query := fmt.Sprintf(`
		SELECT %s, %s, COALESCE(%s, ''), 1 - (%s <=> $1) AS score
		FROM %s
		ORDER BY %s <=> $1
		LIMIT $2`,
		pgx.Identifier{table.IDColumn}.Sanitize(),
		pgx.Identifier{table.TextColumn}.Sanitize(),
		pgx.Identifier{table.SourceColumn}.Sanitize(),
		pgx.Identifier{table.VectorColumn}.Sanitize(),
		pgx.Identifier{table.Name}.Sanitize(),
		pgx.Identifier{table.VectorColumn}.Sanitize(),
	)

	rows, err := p.pool.Query(ctx, query, pgvector.NewVector(vector), topK)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search query: %w", err)
	}
	defer rows.Close()

	var passages []vectorindex.Passage
	for rows.Next() {
		var pass vectorindex.Passage
		if err := rows.Scan(&pass.ID, &pass.Text, &pass.Source, &pass.Score); err != nil {
			return nil, fmt.Errorf("failed to scan search result: %w", err)
		}
		if pass.Source == "" {
			pass.Source = vectorindex.UnknownSource
		}
		passages = append(passages, pass)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read search results: %w", err)
	}

	return passages, nil
}

// UpsertPassages inserts or replaces documents in the passage table.
func (p *Pool) UpsertPassages(ctx context.Context, table config.TableConfig, docs []vectorindex.Document) error {
	if len(docs) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (%s) DO UPDATE SET
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s`,
		pgx.Identifier{table.Name}.Sanitize(),
		pgx.Identifier{table.IDColumn}.Sanitize(),
		pgx.Identifier{table.TextColumn}.Sanitize(),
		pgx.Identifier{table.SourceColumn}.Sanitize(),
		pgx.Identifier{table.VectorColumn}.Sanitize(),
		pgx.Identifier{table.IDColumn}.Sanitize(),
		pgx.Identifier{table.TextColumn}.Sanitize(),
		pgx.Identifier{table.TextColumn}.Sanitize(),
		pgx.Identifier{table.SourceColumn}.Sanitize(),
		pgx.Identifier{table.SourceColumn}.Sanitize(),
		pgx.Identifier{table.VectorColumn}.Sanitize(),
		pgx.Identifier{table.VectorColumn}.Sanitize(),
	)

	batch := &pgx.Batch{}
	for _, doc := range docs {
		batch.Queue(query, doc.ID, doc.Text, doc.Source, pgvector.NewVector(doc.Embedding))
	}

	results := p.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range docs {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to upsert passage: %w", err)
		}
	}

	return nil
}

// EnsureSchema creates the vector extension and the passage table if they
// do not already exist.
func (p *Pool) EnsureSchema(ctx context.Context, table config.TableConfig, dimensions int) error {
	if _, err := p.pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS vector"); err != nil {
		return fmt.Errorf("failed to create vector extension: %w", err)
	}

	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			%s TEXT PRIMARY KEY,
			%s TEXT NOT NULL,
			%s TEXT,
			%s vector(%d)
		)`,
		pgx.Identifier{table.Name}.Sanitize(),
		pgx.Identifier{table.IDColumn}.Sanitize(),
		pgx.Identifier{table.TextColumn}.Sanitize(),
		pgx.Identifier{table.SourceColumn}.Sanitize(),
		pgx.Identifier{table.VectorColumn}.Sanitize(),
		dimensions,
	)

	if _, err := p.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create passage table: %w", err)
	}

	return nil
}
