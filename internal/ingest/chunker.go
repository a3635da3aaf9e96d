//-------------------------------------------------------------------------
//
// Vana RAG Server
//
// Copyright (c) 2026, Vana Garden Project
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

package ingest

import "strings"

// relevanceKeywords mark chunks worth indexing. Chunks mentioning none of
// them are boilerplate (title pages, indexes) and are dropped.
var relevanceKeywords = []string{
	"use", "used", "useful",
	"treat", "treats", "treatment",
	"medicine", "medicinal",
	"benefit", "benefits",
	"therapy", "therapeutic",
	"indicated", "helps",
	"parts used", "uses", "description", "general description", "food", "recipes",
}

// Chunker splits text into overlapping chunks, preferring to break at
// paragraph, line, and word boundaries in that order.
type Chunker struct {
	chunkSize int
	overlap   int
}

// NewChunker creates a chunker. Non-positive sizes fall back to 1000/200.
func NewChunker(chunkSize, overlap int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = 200
		if overlap >= chunkSize {
			overlap = chunkSize / 5
		}
	}
	return &Chunker{chunkSize: chunkSize, overlap: overlap}
}

// Split cuts text into chunks of at most the configured size, each
// overlapping the previous by the configured amount. Whitespace-only
// chunks are dropped.
func (c *Chunker) Split(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var chunks []string
	runes := []rune(text)

	start := 0
	for start < len(runes) {
		end := start + c.chunkSize
		last := end >= len(runes)
		if last {
			end = len(runes)
		} else {
			// Break at a natural boundary when one is close enough
			// to the target size.
			end = start + boundary(runes[start:end])
		}

		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		if last {
			break
		}

		next := end - c.overlap
		if next <= start {
			next = start + 1
		}
		start = next
	}
	return chunks
}

// boundary returns the cut position within window, preferring paragraph
// breaks, then line breaks, then spaces, as long as the cut keeps at least
// half the window.
func boundary(window []rune) int {
	s := string(window)
	min := len(window) / 2

	for _, sep := range []string{"\n\n", "\n", " "} {
		if idx := strings.LastIndex(s, sep); idx > 0 {
			pos := len([]rune(s[:idx]))
			if pos >= min {
				return pos + len([]rune(sep))
			}
		}
	}
	return len(window)
}

// Relevant reports whether a chunk mentions at least one medicinal-content
// keyword.
func Relevant(chunk string) bool {
	lower := strings.ToLower(chunk)
	for _, kw := range relevanceKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// FilterRelevant keeps chunks that pass the keyword filter, preserving
// order.
func FilterRelevant(chunks []string) []string {
	kept := make([]string, 0, len(chunks))
	for _, ch := range chunks {
		if Relevant(ch) {
			kept = append(kept, ch)
		}
	}
	return kept
}
