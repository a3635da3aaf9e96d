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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunker_ShortText(t *testing.T) {
	c := NewChunker(1000, 200)
	chunks := c.Split("Tulsi is a medicinal herb.")
	require.Len(t, chunks, 1)
	assert.Equal(t, "Tulsi is a medicinal herb.", chunks[0])
}

func TestChunker_Empty(t *testing.T) {
	c := NewChunker(1000, 200)
	assert.Nil(t, c.Split(""))
	assert.Nil(t, c.Split("   \n\n  "))
}

func TestChunker_SizeAndOverlap(t *testing.T) {
	c := NewChunker(100, 20)
	text := strings.Repeat("herbal remedies and their uses in daily life ", 50)

	chunks := c.Split(text)
	require.Greater(t, len(chunks), 1)

	for i, ch := range chunks {
		assert.LessOrEqual(t, len([]rune(ch)), 100, "chunk %d exceeds size", i)
	}

	// Consecutive chunks share text through the overlap.
	for i := 1; i < len(chunks); i++ {
		prev := chunks[i-1]
		tail := prev[len(prev)-10:]
		assert.Contains(t, text, tail)
	}
}

func TestChunker_CoversAllText(t *testing.T) {
	c := NewChunker(80, 10)
	text := "Neem purifies blood. Amla is rich in vitamin C. Ashwagandha reduces stress. " +
		"Brahmi sharpens memory. Turmeric heals wounds. Ginger aids digestion. " +
		"Tulsi treats coughs and colds. Shatavari supports vitality."

	chunks := c.Split(text)
	require.NotEmpty(t, chunks)

	joined := strings.Join(chunks, " ")
	for _, word := range []string{"Neem", "Amla", "Ashwagandha", "Brahmi", "Turmeric", "Ginger", "Tulsi", "Shatavari"} {
		assert.Contains(t, joined, word)
	}
}

func TestChunker_PrefersParagraphBoundary(t *testing.T) {
	c := NewChunker(60, 10)
	text := "First paragraph about medicinal uses.\n\nSecond paragraph about treatment benefits and long therapeutic traditions."

	chunks := c.Split(text)
	require.Greater(t, len(chunks), 1)
	assert.Equal(t, "First paragraph about medicinal uses.", chunks[0])
}

func TestRelevant(t *testing.T) {
	assert.True(t, Relevant("Tulsi leaves are used to treat coughs."))
	assert.True(t, Relevant("GENERAL DESCRIPTION of the plant."))
	assert.False(t, Relevant("Table of contents. Chapter one. Page 3."))
}

func TestFilterRelevant(t *testing.T) {
	chunks := []string{
		"Index of plants, page 1.",
		"Ginger is a medicinal rhizome.",
		"Copyright notice.",
		"Neem treats skin conditions.",
	}

	kept := FilterRelevant(chunks)
	require.Len(t, kept, 2)
	assert.Equal(t, "Ginger is a medicinal rhizome.", kept[0])
	assert.Equal(t, "Neem treats skin conditions.", kept[1])
}
