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

	"gopkg.in/yaml.v3"
)

const (
	// ConfigFileName is the default configuration file name.
	ConfigFileName = "vana-rag-server.yaml"

	// SystemConfigPath is the system-wide configuration path.
	SystemConfigPath = "/etc/vana/" + ConfigFileName
)

// Load loads the configuration from the specified path, or searches
// default locations if path is empty.
//
// Search order:
//  1. Explicit path (if provided)
//  2. /etc/vana/vana-rag-server.yaml
//  3. vana-rag-server.yaml in the binary's directory
func Load(path string) (*Config, error) {
	configPath, err := findConfigFile(path)
	if err != nil {
		return nil, err
	}

	return loadFromFile(configPath)
}

// findConfigFile finds the configuration file using the search order.
func findConfigFile(explicitPath string) (string, error) {
	// If explicit path provided, use it
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicitPath)
		}
		return explicitPath, nil
	}

	// Search order for config file
	searchPaths := []string{
		SystemConfigPath,
		getBinaryDirConfigPath(),
	}

	for _, p := range searchPaths {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("no configuration file found; searched: %v", searchPaths)
}

// getBinaryDirConfigPath returns the path to config file in the binary's
// directory.
func getBinaryDirConfigPath() string {
	executable, err := os.Executable()
	if err != nil {
		return ""
	}

	// Resolve symlinks to get the actual binary location
	executable, err = filepath.EvalSymlinks(executable)
	if err != nil {
		return ""
	}

	return filepath.Join(filepath.Dir(executable), ConfigFileName)
}

// loadFromFile loads and parses the configuration from a YAML file.
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := DefaultConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(cfg)

	// Validate the configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// applyDefaults fills in values yaml.Unmarshal may have zeroed out when a
// section was present but a field was not.
func applyDefaults(cfg *Config) {
	def := DefaultConfig()

	if cfg.Embedding.Dimensions == 0 {
		cfg.Embedding.Dimensions = def.Embedding.Dimensions
	}
	if cfg.Embedding.MaxTokens == 0 {
		cfg.Embedding.MaxTokens = def.Embedding.MaxTokens
	}
	if cfg.Embedding.Model == "" {
		cfg.Embedding.Model = def.Embedding.Model
	}

	if cfg.Index.Table.IDColumn == "" {
		cfg.Index.Table.IDColumn = def.Index.Table.IDColumn
	}
	if cfg.Index.Table.TextColumn == "" {
		cfg.Index.Table.TextColumn = def.Index.Table.TextColumn
	}
	if cfg.Index.Table.SourceColumn == "" {
		cfg.Index.Table.SourceColumn = def.Index.Table.SourceColumn
	}
	if cfg.Index.Table.VectorColumn == "" {
		cfg.Index.Table.VectorColumn = def.Index.Table.VectorColumn
	}
	if cfg.Index.Database.Port == 0 {
		cfg.Index.Database.Port = 5432
	}
	if cfg.Index.Database.SSLMode == "" {
		cfg.Index.Database.SSLMode = "prefer"
	}

	if cfg.Generation.Model == "" {
		cfg.Generation.Model = def.Generation.Model
	}
	if cfg.Generation.TimeoutSeconds == 0 {
		cfg.Generation.TimeoutSeconds = def.Generation.TimeoutSeconds
	}

	if cfg.Chat.TopK == 0 {
		cfg.Chat.TopK = def.Chat.TopK
	}
	if cfg.Chat.MaxTokens == 0 {
		cfg.Chat.MaxTokens = def.Chat.MaxTokens
	}
	if cfg.Chat.Temperature == 0 {
		cfg.Chat.Temperature = def.Chat.Temperature
	}

	if cfg.Diet.TopK == 0 {
		cfg.Diet.TopK = def.Diet.TopK
	}
	if cfg.Diet.MaxTokens == 0 {
		cfg.Diet.MaxTokens = def.Diet.MaxTokens
	}
	if cfg.Diet.Temperature == 0 {
		cfg.Diet.Temperature = def.Diet.Temperature
	}

	if cfg.Ingest.ChunkSize == 0 {
		cfg.Ingest.ChunkSize = def.Ingest.ChunkSize
	}
	if cfg.Ingest.ChunkOverlap == 0 {
		cfg.Ingest.ChunkOverlap = def.Ingest.ChunkOverlap
	}
	if cfg.Ingest.Concurrency == 0 {
		cfg.Ingest.Concurrency = def.Ingest.Concurrency
	}
	if cfg.Ingest.BatchSize == 0 {
		cfg.Ingest.BatchSize = def.Ingest.BatchSize
	}
}
