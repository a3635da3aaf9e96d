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
	"testing"

	"github.com/vana-garden/vana-rag-server/internal/vectorindex"
)

func TestAssembleContext(t *testing.T) {
	passages := []vectorindex.Passage{
		{ID: "a", Text: "Tulsi leaves treat coughs.", Score: 0.9},
		{ID: "b", Text: "Ginger aids digestion.", Score: 0.8},
	}

	got := AssembleContext(passages)
	want := "Tulsi leaves treat coughs.\n\nGinger aids digestion."
	if got != want {
		t.Errorf("AssembleContext = %q, want %q", got, want)
	}
}

func TestAssembleContext_DropsEmptyText(t *testing.T) {
	passages := []vectorindex.Passage{
		{ID: "a", Text: "Neem purifies blood.", Score: 0.9},
		{ID: "b", Text: "", Score: 0.8},
		{ID: "c", Text: "Amla is rich in vitamin C.", Score: 0.7},
	}

	got := AssembleContext(passages)
	want := "Neem purifies blood.\n\nAmla is rich in vitamin C."
	if got != want {
		t.Errorf("AssembleContext = %q, want %q", got, want)
	}
}

func TestAssembleContext_Empty(t *testing.T) {
	if got := AssembleContext(nil); got != "" {
		t.Errorf("AssembleContext(nil) = %q, want empty", got)
	}
	if got := AssembleContext([]vectorindex.Passage{{Text: ""}}); got != "" {
		t.Errorf("AssembleContext(all empty) = %q, want empty", got)
	}
}

func TestDietQuery(t *testing.T) {
	got := dietQuery([]string{"Tulsi", "Ginger"})
	want := "Suggest recipes segregated as Breakfast, Lunch, and Dinner from the following plants: Tulsi, Ginger."
	if got != want {
		t.Errorf("dietQuery = %q, want %q", got, want)
	}
}
