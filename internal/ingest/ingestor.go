//-------------------------------------------------------------------------
//
// Vana RAG Server
//
// Copyright (c) 2026, Vana Garden Project
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/vana-garden/vana-rag-server/internal/config"
	"github.com/vana-garden/vana-rag-server/internal/pipeline"
	"github.com/vana-garden/vana-rag-server/internal/vectorindex"
)

// Ingestor embeds document chunks and writes them into the vector index.
type Ingestor struct {
	embedder pipeline.Embedder
	index    vectorindex.Index
	chunker  *Chunker
	workers  int
	batch    int
	logger   *slog.Logger
}

// Stats summarizes one ingestion run.
type Stats struct {
	Chunks   int // chunks produced by splitting
	Filtered int // chunks dropped by the keyword filter
	Indexed  int // documents written to the index
}

// NewIngestor creates an ingestor from the ingest config section.
func NewIngestor(embedder pipeline.Embedder, index vectorindex.Index, cfg config.IngestConfig, logger *slog.Logger) *Ingestor {
	if logger == nil {
		logger = slog.Default()
	}
	workers := cfg.Concurrency
	if workers <= 0 {
		workers = 4
	}
	batch := cfg.BatchSize
	if batch <= 0 {
		batch = 50
	}
	return &Ingestor{
		embedder: embedder,
		index:    index,
		chunker:  NewChunker(cfg.ChunkSize, cfg.ChunkOverlap),
		workers:  workers,
		batch:    batch,
		logger:   logger,
	}
}

// IngestFile loads, chunks, filters, embeds, and indexes one document.
// The source label defaults to the file name without extension.
func (ing *Ingestor) IngestFile(ctx context.Context, path, source string) (*Stats, error) {
	if source == "" {
		base := filepath.Base(path)
		source = strings.TrimSuffix(base, filepath.Ext(base))
	}

	text, err := LoadDocument(path)
	if err != nil {
		return nil, err
	}

	return ing.IngestText(ctx, text, source)
}

// IngestText chunks and indexes raw text under the given source label.
func (ing *Ingestor) IngestText(ctx context.Context, text, source string) (*Stats, error) {
	chunks := ing.chunker.Split(text)
	kept := FilterRelevant(chunks)

	stats := &Stats{
		Chunks:   len(chunks),
		Filtered: len(chunks) - len(kept),
	}

	ing.logger.Info("chunked document",
		"source", source,
		"chunks", stats.Chunks,
		"filtered_out", stats.Filtered)

	if len(kept) == 0 {
		return stats, nil
	}

	docs, err := ing.embedChunks(ctx, kept, source)
	if err != nil {
		return nil, err
	}

	for start := 0; start < len(docs); start += ing.batch {
		end := start + ing.batch
		if end > len(docs) {
			end = len(docs)
		}
		if err := ing.index.Upsert(ctx, docs[start:end]); err != nil {
			return nil, fmt.Errorf("failed to upsert batch at %d: %w", start, err)
		}
		stats.Indexed = end
		ing.logger.Info("upserted batch", "source", source, "indexed", end, "total", len(docs))
	}

	return stats, nil
}

// embedChunks embeds all chunks with bounded parallelism, preserving chunk
// order in the returned documents.
func (ing *Ingestor) embedChunks(ctx context.Context, chunks []string, source string) ([]vectorindex.Document, error) {
	docs := make([]vectorindex.Document, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ing.workers)

	for i, chunk := range chunks {
		g.Go(func() error {
			vector, err := ing.embedder.Embed(gctx, chunk)
			if err != nil {
				return fmt.Errorf("failed to embed chunk %d: %w", i, err)
			}
			docs[i] = vectorindex.Document{
				ID:        fmt.Sprintf("%s-%04d", source, i),
				Text:      chunk,
				Source:    source,
				Embedding: vector,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}
