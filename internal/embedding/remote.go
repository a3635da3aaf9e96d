//-------------------------------------------------------------------------
//
// Vana RAG Server
//
// Copyright (c) 2026, Vana Garden Project
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

package embedding

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// RemoteConfig configures the OpenAI-compatible embeddings backend.
type RemoteConfig struct {
	APIKey     string
	BaseURL    string
	Model      string
	Dimensions int
}

// RemoteEmbedder calls an OpenAI-compatible /embeddings endpoint. Results
// are L2-normalized before being returned, so downstream cosine scoring
// behaves identically to the local backend.
type RemoteEmbedder struct {
	client     *openai.Client
	model      string
	dimensions int
}

// NewRemoteEmbedder creates a remote embedding backend.
func NewRemoteEmbedder(cfg RemoteConfig) (*RemoteEmbedder, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("remote embedding provider requires an API key")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("remote embedding provider requires a model")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &RemoteEmbedder{
		client:     openai.NewClientWithConfig(clientConfig),
		model:      cfg.Model,
		dimensions: cfg.Dimensions,
	}, nil
}

// Embed requests an embedding for text.
func (e *RemoteEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequestStrings{
		Input: []string{text},
		Model: openai.EmbeddingModel(e.model),
	})
	if err != nil {
		return nil, fmt.Errorf("embeddings request failed: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("no embedding returned")
	}

	vec := resp.Data[0].Embedding
	if e.dimensions > 0 && len(vec) != e.dimensions {
		return nil, fmt.Errorf("expected %d dimensions, got %d", e.dimensions, len(vec))
	}
	if err := normalizeL2(vec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return vec, nil
}

// Dimensions returns the embedding dimension.
func (e *RemoteEmbedder) Dimensions() int {
	return e.dimensions
}

// Close is a no-op for the remote backend.
func (e *RemoteEmbedder) Close() error {
	return nil
}

var _ Embedder = (*RemoteEmbedder)(nil)
