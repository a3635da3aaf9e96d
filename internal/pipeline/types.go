//-------------------------------------------------------------------------
//
// Vana RAG Server
//
// Copyright (c) 2026, Vana Garden Project
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

package pipeline

// ChatRequest is a free-text question about medicinal plants.
type ChatRequest struct {
	Query string `json:"query"`
}

// ChatResponse carries the generated answer and the provenance of each
// passage used for context, in retrieval order.
type ChatResponse struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
}

// DietRequest names the plants a meal plan should be built around.
type DietRequest struct {
	PlantNames []string `json:"plantNames"`
}

// DietPlanResponse carries the plan as raw JSON text, passed through from
// the model unparsed, plus the IDs of the passages used for context.
type DietPlanResponse struct {
	Plan        string   `json:"plan"`
	SourceNodes []string `json:"sourceNodes"`
}
