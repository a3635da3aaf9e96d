//-------------------------------------------------------------------------
//
// Vana RAG Server
//
// Copyright (c) 2026, Vana Garden Project
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Environment variable names for API keys.
const (
	EnvGroqAPIKey     = "GROQ_API_KEY"
	EnvPineconeAPIKey = "PINECONE_API_KEY"
	EnvOpenAIAPIKey   = "OPENAI_API_KEY"
)

// Default API key file paths (relative to home directory).
const (
	DefaultGroqKeyFile     = ".groq-api-key"
	DefaultPineconeKeyFile = ".pinecone-api-key"
	DefaultOpenAIKeyFile   = ".openai-api-key"
)

// LoadedKeys holds all loaded API keys.
type LoadedKeys struct {
	Groq     string
	Pinecone string
	OpenAI   string
}

// APIKeyLoader handles loading API keys from configured paths, environment
// variables, or default file locations.
type APIKeyLoader struct {
	config APIKeysConfig
}

// NewAPIKeyLoader creates a new API key loader with the given configuration.
func NewAPIKeyLoader(cfg APIKeysConfig) *APIKeyLoader {
	return &APIKeyLoader{config: cfg}
}

// LoadGroqKey loads the Groq API key.
func (l *APIKeyLoader) LoadGroqKey() (string, error) {
	return l.loadKey(l.config.Groq, EnvGroqAPIKey, DefaultGroqKeyFile, "Groq")
}

// LoadPineconeKey loads the Pinecone API key.
func (l *APIKeyLoader) LoadPineconeKey() (string, error) {
	return l.loadKey(l.config.Pinecone, EnvPineconeAPIKey, DefaultPineconeKeyFile, "Pinecone")
}

// LoadOpenAIKey loads the OpenAI API key.
func (l *APIKeyLoader) LoadOpenAIKey() (string, error) {
	return l.loadKey(l.config.OpenAI, EnvOpenAIAPIKey, DefaultOpenAIKeyFile, "OpenAI")
}

// LoadRequiredKeys loads only the API keys the configuration actually needs:
// the Pinecone key when the pinecone index backend is selected, the Groq key
// when generation uses Groq, and the OpenAI key when either the remote
// embedding provider or OpenAI generation is configured. Local providers
// (ollama, on-disk models) require no keys.
func (l *APIKeyLoader) LoadRequiredKeys(cfg *Config) (*LoadedKeys, error) {
	keys := &LoadedKeys{}

	if cfg.Index.Backend == "pinecone" {
		key, err := l.LoadPineconeKey()
		if err != nil {
			return nil, err
		}
		keys.Pinecone = key
	}

	switch strings.ToLower(cfg.Generation.Provider) {
	case "groq":
		key, err := l.LoadGroqKey()
		if err != nil {
			return nil, err
		}
		keys.Groq = key
	case "openai":
		key, err := l.LoadOpenAIKey()
		if err != nil {
			return nil, err
		}
		keys.OpenAI = key
	}

	if cfg.Embedding.Provider == "remote" && keys.OpenAI == "" {
		key, err := l.LoadOpenAIKey()
		if err != nil {
			return nil, err
		}
		keys.OpenAI = key
	}

	return keys, nil
}

// loadKey loads an API key with the following priority:
// 1. Configured file path (if specified in config)
// 2. Environment variable
// 3. Default file location (~/.provider-api-key)
func (l *APIKeyLoader) loadKey(
	configPath, envVar, defaultFile, providerName string,
) (string, error) {
	// Priority 1: Configured file path
	if configPath != "" {
		path := expandPath(configPath)
		return readKeyFile(path, providerName)
	}

	// Priority 2: Environment variable
	if key := os.Getenv(envVar); key != "" {
		return key, nil
	}

	// Priority 3: Default file location
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	path := filepath.Join(homeDir, defaultFile)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return "", fmt.Errorf(
			"%s API key not found: set %s environment variable or create %s",
			providerName, envVar, path)
	}

	return readKeyFile(path, providerName)
}

// readKeyFile reads an API key from a file.
func readKeyFile(path, providerName string) (string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return "", fmt.Errorf("%s API key file not found: %s", providerName, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s API key: %w", providerName, err)
	}

	key := strings.TrimSpace(string(data))
	if key == "" {
		return "", fmt.Errorf("%s API key file is empty: %s", providerName, path)
	}

	return key, nil
}
