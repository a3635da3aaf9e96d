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
	"fmt"
	"log/slog"
	"strings"

	"github.com/vana-garden/vana-rag-server/internal/config"
	"github.com/vana-garden/vana-rag-server/internal/vectorindex"
)

// Metadata keys used for stored passages.
const (
	metadataText   = "text"
	metadataSource = "source"
)

// Index implements vectorindex.Index against a single Pinecone index.
type Index struct {
	client    *Client
	host      string
	namespace string
	logger    *slog.Logger
}

// New creates a Pinecone-backed index. When cfg.Host is empty the
// data-plane host is resolved through the control plane, which adds a
// round trip at startup; prefer setting host in production.
func New(ctx context.Context, cfg config.PineconeConfig, apiKey string, logger *slog.Logger) (*Index, error) {
	if logger == nil {
		logger = slog.Default()
	}

	client, err := NewClient(ClientConfig{
		APIKey:     apiKey,
		APIVersion: cfg.APIVersion,
		BaseURL:    cfg.BaseURL,
	})
	if err != nil {
		return nil, err
	}

	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		desc, err := client.DescribeIndex(ctx, cfg.IndexName)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve index host: %w", err)
		}
		host = desc.Host
		logger.Info("resolved pinecone index host",
			"index", cfg.IndexName,
			"host", host,
			"dimension", desc.Dimension,
		)
	}

	return &Index{
		client:    client,
		host:      host,
		namespace: cfg.Namespace,
		logger:    logger,
	}, nil
}

// Query returns the topK nearest passages. Matches come back in Pinecone's
// descending score order and are adapted to Passage without reordering.
func (i *Index) Query(ctx context.Context, vector []float32, topK int) ([]vectorindex.Passage, error) {
	resp, err := i.client.QueryVectors(ctx, i.host, QueryRequest{
		Namespace:       i.namespace,
		Vector:          vector,
		TopK:            topK,
		IncludeMetadata: true,
	})
	if err != nil {
		return nil, fmt.Errorf("pinecone query failed: %w", err)
	}

	passages := make([]vectorindex.Passage, 0, len(resp.Matches))
	for _, m := range resp.Matches {
		passages = append(passages, vectorindex.Passage{
			ID:     m.ID,
			Text:   metadataString(m.Metadata, metadataText),
			Score:  m.Score,
			Source: sourceOrUnknown(metadataString(m.Metadata, metadataSource)),
		})
	}
	return passages, nil
}

// Upsert writes documents with their text and source as metadata.
func (i *Index) Upsert(ctx context.Context, docs []vectorindex.Document) error {
	vectors := make([]Vector, len(docs))
	for n, d := range docs {
		vectors[n] = Vector{
			ID:     d.ID,
			Values: d.Embedding,
			Metadata: map[string]any{
				metadataText:   d.Text,
				metadataSource: d.Source,
			},
		}
	}

	resp, err := i.client.UpsertVectors(ctx, i.host, UpsertRequest{
		Namespace: i.namespace,
		Vectors:   vectors,
	})
	if err != nil {
		return fmt.Errorf("pinecone upsert failed: %w", err)
	}

	i.logger.Debug("upserted vectors", "count", resp.UpsertedCount)
	return nil
}

// Close is a no-op; the client holds no persistent connections.
func (i *Index) Close() error {
	return nil
}

// metadataString extracts a string metadata value, tolerating absent
// metadata and non-string values.
func metadataString(metadata map[string]any, key string) string {
	if metadata == nil {
		return ""
	}
	if s, ok := metadata[key].(string); ok {
		return s
	}
	return ""
}

// sourceOrUnknown applies the provenance default.
func sourceOrUnknown(source string) string {
	if source == "" {
		return vectorindex.UnknownSource
	}
	return source
}

var _ vectorindex.Index = (*Index)(nil)
