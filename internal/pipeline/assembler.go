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
	"strings"

	"github.com/vana-garden/vana-rag-server/internal/vectorindex"
)

// AssembleContext joins passage texts into a single context block in
// retrieval order, separated by blank lines. Passages with empty text are
// dropped without disturbing the order of the rest.
func AssembleContext(passages []vectorindex.Passage) string {
	parts := make([]string, 0, len(passages))
	for _, p := range passages {
		if p.Text == "" {
			continue
		}
		parts = append(parts, p.Text)
	}
	return strings.Join(parts, "\n\n")
}
