//-------------------------------------------------------------------------
//
// Vana RAG Server
//
// Copyright (c) 2026, Vana Garden Project
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

// Package vectorindex defines the nearest-neighbor retrieval interface and
// the internal passage representation. Provider response shapes (Pinecone
// matches, pgvector rows) are adapted to Passage at the backend boundary so
// the pipeline never touches them directly.
package vectorindex

import "context"

// UnknownSource is the provenance label used when a stored passage carries
// no source metadata.
const UnknownSource = "Unknown"

// Passage is a retrieved knowledge passage with its similarity score.
type Passage struct {
	// ID identifies the stored vector.
	ID string

	// Text is the passage content used for context assembly.
	Text string

	// Score is the similarity to the query vector; higher is more
	// relevant. Backends return passages in descending score order and
	// callers must not reorder them.
	Score float64

	// Source is the provenance label, UnknownSource when absent.
	Source string
}

// Document is a passage being written into the index.
type Document struct {
	ID        string
	Text      string
	Source    string
	Embedding []float32
}

// Index is a nearest-neighbor search backend over embedded passages.
type Index interface {
	// Query returns up to topK passages nearest to vector, ordered by
	// descending score. Zero matches yields an empty slice, not an
	// error.
	Query(ctx context.Context, vector []float32, topK int) ([]Passage, error)

	// Upsert writes documents into the index, replacing any existing
	// entries with the same IDs.
	Upsert(ctx context.Context, docs []Document) error

	// Close releases backend resources.
	Close() error
}
