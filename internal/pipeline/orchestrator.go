//-------------------------------------------------------------------------
//
// Vana RAG Server
//
// Copyright (c) 2026, Vana Garden Project
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

// Package pipeline implements the retrieval-augmented question-answering
// core: embed the query, retrieve nearest passages, assemble a context
// block, and drive a constrained generation step. Two variants share the
// skeleton: free-text chat, which degrades gracefully when generation
// fails, and diet planning, which fails fast because its caller requires
// parseable JSON.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vana-garden/vana-rag-server/internal/config"
	"github.com/vana-garden/vana-rag-server/internal/llm"
	"github.com/vana-garden/vana-rag-server/internal/vectorindex"
)

// Embedder turns query text into a unit-norm vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Retriever finds the passages nearest to a query vector.
type Retriever interface {
	Query(ctx context.Context, vector []float32, topK int) ([]vectorindex.Passage, error)
}

// variant parameterizes one run of the shared pipeline skeleton.
type variant struct {
	name         string
	topK         int
	systemPrompt string
	userLabel    string
	temperature  float64
	maxTokens    int
	jsonMode     bool

	// degradeOnGenerationFailure substitutes the raw context for the
	// answer instead of failing the request.
	degradeOnGenerationFailure bool

	// shortCircuitOnNoMatches skips generation entirely when retrieval
	// returns nothing.
	shortCircuitOnNoMatches bool

	emptyContentFallback string
}

// result is the raw outcome of one pipeline run before response shaping.
type result struct {
	content      string
	passages     []vectorindex.Passage
	shortCircuit bool
}

// Orchestrator coordinates the pipeline stages for both variants.
type Orchestrator struct {
	embedder  Embedder
	retriever Retriever
	completer llm.CompletionProvider
	logger    *slog.Logger
	chat      variant
	diet      variant
}

// NewOrchestrator creates a pipeline orchestrator. Variant parameters
// (topK, token limits, temperature) come from the chat and diet config
// sections.
func NewOrchestrator(embedder Embedder, retriever Retriever, completer llm.CompletionProvider, chatCfg config.ChatConfig, dietCfg config.DietConfig, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		embedder:  embedder,
		retriever: retriever,
		completer: completer,
		logger:    logger,
		chat: variant{
			name:                       "chat",
			topK:                       chatCfg.TopK,
			systemPrompt:               chatSystemPrompt,
			userLabel:                  chatUserLabel,
			temperature:                chatCfg.Temperature,
			maxTokens:                  chatCfg.MaxTokens,
			jsonMode:                   false,
			degradeOnGenerationFailure: true,
			shortCircuitOnNoMatches:    true,
			emptyContentFallback:       emptyChatContent,
		},
		diet: variant{
			name:                       "diet",
			topK:                       dietCfg.TopK,
			systemPrompt:               dietSystemPrompt,
			userLabel:                  dietUserLabel,
			temperature:                dietCfg.Temperature,
			maxTokens:                  dietCfg.MaxTokens,
			jsonMode:                   true,
			degradeOnGenerationFailure: false,
			shortCircuitOnNoMatches:    false,
			emptyContentFallback:       emptyDietContent,
		},
	}
}

// Chat answers a free-text question from the retrieved context. Zero
// matches short-circuit to a fixed no-information answer without a
// generation call; a generation failure degrades to the raw context with
// the sources still attached.
func (o *Orchestrator) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", ErrInvalidInput)
	}

	res, err := o.run(ctx, o.chat, query)
	if err != nil {
		return nil, err
	}

	if res.shortCircuit {
		return &ChatResponse{
			Answer:  noMatchAnswer,
			Sources: []string{},
		}, nil
	}

	sources := make([]string, len(res.passages))
	for i, p := range res.passages {
		sources[i] = p.Source
	}

	return &ChatResponse{
		Answer:  res.content,
		Sources: sources,
	}, nil
}

// DietPlan builds a meal plan around the named plants. The query is
// synthesized from the names, retrieval widens to the diet topK, and
// generation runs in JSON mode even when retrieval found nothing. A
// generation failure fails the request.
func (o *Orchestrator) DietPlan(ctx context.Context, req DietRequest) (*DietPlanResponse, error) {
	names := make([]string, 0, len(req.PlantNames))
	for _, n := range req.PlantNames {
		if trimmed := strings.TrimSpace(n); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: plantNames array is required", ErrInvalidInput)
	}

	res, err := o.run(ctx, o.diet, dietQuery(names))
	if err != nil {
		return nil, err
	}

	sourceNodes := make([]string, len(res.passages))
	for i, p := range res.passages {
		sourceNodes[i] = p.ID
	}

	return &DietPlanResponse{
		Plan:        res.content,
		SourceNodes: sourceNodes,
	}, nil
}

// run executes the shared skeleton: embed, retrieve, assemble, generate.
func (o *Orchestrator) run(ctx context.Context, v variant, query string) (*result, error) {
	o.logger.Info("pipeline started", "pipeline", v.name, "top_k", v.topK)

	// Embedding is the one stage that cannot degrade: without a vector
	// there is no retrieval.
	vector, err := o.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	// A retrieval failure is treated as zero matches rather than failing
	// the request.
	passages, err := o.retriever.Query(ctx, vector, v.topK)
	if err != nil {
		o.logger.Warn("retrieval failed, continuing without context",
			"pipeline", v.name, "error", err)
		passages = nil
	}

	if len(passages) == 0 && v.shortCircuitOnNoMatches {
		o.logger.Info("no passages retrieved, skipping generation", "pipeline", v.name)
		return &result{shortCircuit: true}, nil
	}

	contextBlock := AssembleContext(passages)

	resp, err := o.completer.Complete(ctx, llm.CompletionRequest{
		SystemPrompt: v.systemPrompt,
		Messages: []llm.Message{
			{Role: "user", Content: userMessage(v.userLabel, contextBlock, query)},
		},
		MaxTokens:   v.maxTokens,
		Temperature: v.temperature,
		JSONMode:    v.jsonMode,
	})
	if err != nil {
		if !v.degradeOnGenerationFailure {
			return nil, fmt.Errorf("%w: %v", ErrGenerationUnavailable, err)
		}
		o.logger.Warn("generation failed, returning raw context",
			"pipeline", v.name, "error", err)
		return &result{
			content:  degradePrefix + contextBlock,
			passages: passages,
		}, nil
	}

	content := resp.Content
	if content == "" {
		content = v.emptyContentFallback
	}

	o.logger.Info("pipeline completed",
		"pipeline", v.name,
		"passages", len(passages),
		"tokens", resp.Usage.TotalTokens)

	return &result{
		content:  content,
		passages: passages,
	}, nil
}
