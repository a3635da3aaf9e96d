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

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, path[2:])
	}
	return path
}

// ValidationError represents a single configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}

	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the configuration for errors and returns all validation
// errors found.
func (c *Config) Validate() error {
	var errs ValidationErrors

	errs = append(errs, c.validateServer()...)
	errs = append(errs, c.validateEmbedding()...)
	errs = append(errs, c.validateIndex()...)
	errs = append(errs, c.validateGeneration()...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// validateServer validates server configuration.
func (c *Config) validateServer() ValidationErrors {
	var errs ValidationErrors

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, ValidationError{
			Field:   "server.port",
			Message: "must be between 1 and 65535",
		})
	}

	if c.Server.TLS.Enabled {
		if c.Server.TLS.CertFile == "" {
			errs = append(errs, ValidationError{
				Field:   "server.tls.cert_file",
				Message: "required when TLS is enabled",
			})
		} else if _, err := os.Stat(expandPath(c.Server.TLS.CertFile)); err != nil {
			errs = append(errs, ValidationError{
				Field:   "server.tls.cert_file",
				Message: fmt.Sprintf("file not found: %s", c.Server.TLS.CertFile),
			})
		}

		if c.Server.TLS.KeyFile == "" {
			errs = append(errs, ValidationError{
				Field:   "server.tls.key_file",
				Message: "required when TLS is enabled",
			})
		} else if _, err := os.Stat(expandPath(c.Server.TLS.KeyFile)); err != nil {
			errs = append(errs, ValidationError{
				Field:   "server.tls.key_file",
				Message: fmt.Sprintf("file not found: %s", c.Server.TLS.KeyFile),
			})
		}
	}

	return errs
}

// validateEmbedding validates the embedding configuration.
func (c *Config) validateEmbedding() ValidationErrors {
	var errs ValidationErrors

	switch c.Embedding.Provider {
	case "local":
		if c.Embedding.ModelPath == "" {
			errs = append(errs, ValidationError{
				Field:   "embedding.model_path",
				Message: "required for the local provider",
			})
		}
	case "remote":
		if c.Embedding.Model == "" {
			errs = append(errs, ValidationError{
				Field:   "embedding.model",
				Message: "required for the remote provider",
			})
		}
	case "mock":
		// No additional settings.
	default:
		errs = append(errs, ValidationError{
			Field:   "embedding.provider",
			Message: fmt.Sprintf("unknown provider %q (expected local, remote, or mock)", c.Embedding.Provider),
		})
	}

	if c.Embedding.Dimensions <= 0 {
		errs = append(errs, ValidationError{
			Field:   "embedding.dimensions",
			Message: "must be positive",
		})
	}

	return errs
}

// validateIndex validates the vector index configuration.
func (c *Config) validateIndex() ValidationErrors {
	var errs ValidationErrors

	switch c.Index.Backend {
	case "pinecone":
		if c.Index.Pinecone.IndexName == "" && c.Index.Pinecone.Host == "" {
			errs = append(errs, ValidationError{
				Field:   "index.pinecone.index_name",
				Message: "index_name or host is required for the pinecone backend",
			})
		}
	case "pgvector":
		if c.Index.Database.Host == "" {
			errs = append(errs, ValidationError{
				Field:   "index.database.host",
				Message: "required for the pgvector backend",
			})
		}
		if c.Index.Database.Database == "" {
			errs = append(errs, ValidationError{
				Field:   "index.database.database",
				Message: "required for the pgvector backend",
			})
		}
		if c.Index.Table.Name == "" {
			errs = append(errs, ValidationError{
				Field:   "index.table.name",
				Message: "required for the pgvector backend",
			})
		}
	default:
		errs = append(errs, ValidationError{
			Field:   "index.backend",
			Message: fmt.Sprintf("unknown backend %q (expected pinecone or pgvector)", c.Index.Backend),
		})
	}

	return errs
}

// validateGeneration validates the generation configuration.
func (c *Config) validateGeneration() ValidationErrors {
	var errs ValidationErrors

	if c.Generation.Provider == "" {
		errs = append(errs, ValidationError{
			Field:   "generation.provider",
			Message: "required",
		})
	}
	if c.Generation.Model == "" {
		errs = append(errs, ValidationError{
			Field:   "generation.model",
			Message: "required",
		})
	}

	return errs
}
