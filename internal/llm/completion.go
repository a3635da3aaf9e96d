//-------------------------------------------------------------------------
//
// Vana RAG Server
//
// Copyright (c) 2026, Vana Garden Project
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Default base URLs for known OpenAI-compatible providers.
const (
	groqBaseURL   = "https://api.groq.com/openai/v1"
	ollamaBaseURL = "http://localhost:11434/v1"
)

// Config configures an OpenAI-compatible completion provider.
type Config struct {
	// Provider is "groq", "openai", "ollama", or any other name for a
	// generic OpenAI-compatible endpoint (BaseURL required then).
	Provider string
	APIKey   string
	Model    string
	BaseURL  string

	// Timeout bounds each Complete call. Zero means 60 seconds.
	Timeout time.Duration
}

// Provider implements CompletionProvider on top of any OpenAI-compatible
// chat-completions endpoint. Groq is the default deployment target.
type Provider struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewProvider creates a completion provider for the configured endpoint.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("completion provider requires a model")
	}

	baseURL := cfg.BaseURL
	switch strings.ToLower(cfg.Provider) {
	case "groq":
		if baseURL == "" {
			baseURL = groqBaseURL
		}
	case "ollama":
		if baseURL == "" {
			baseURL = ollamaBaseURL
		}
	case "openai":
		// go-openai's default base URL.
	default:
		if baseURL == "" {
			return nil, fmt.Errorf("provider %q requires base_url", cfg.Provider)
		}
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Provider{
		client:  openai.NewClientWithConfig(clientConfig),
		model:   cfg.Model,
		timeout: timeout,
	}, nil
}

// Complete generates a completion. The call is bounded by the provider
// timeout in addition to any deadline already on ctx.
func (p *Provider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	oreq := openai.ChatCompletionRequest{
		Model:       p.model,
		Messages:    convertMessages(req),
		MaxTokens:   req.MaxTokens,
		Temperature: float32(req.Temperature),
	}
	if req.JSONMode {
		oreq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, oreq)
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}

	out := &CompletionResponse{
		Usage: TokenUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}
	if len(resp.Choices) > 0 {
		out.Content = resp.Choices[0].Message.Content
		out.FinishReason = string(resp.Choices[0].FinishReason)
	}
	return out, nil
}

// ModelName returns the model name.
func (p *Provider) ModelName() string {
	return p.model
}

// convertMessages maps the request to go-openai messages, prepending the
// system prompt when present.
func convertMessages(req CompletionRequest) []openai.ChatCompletionMessage {
	msgs := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	if req.SystemPrompt != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemPrompt,
		})
	}
	for _, m := range req.Messages {
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}
	return msgs
}

var _ CompletionProvider = (*Provider)(nil)
