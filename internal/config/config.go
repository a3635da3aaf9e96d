//-------------------------------------------------------------------------
//
// Vana RAG Server
//
// Copyright (c) 2026, Vana Garden Project
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

// Package config handles configuration loading and validation for the
// Vana RAG Server.
package config

// Config is the root configuration structure for the server.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	APIKeys    APIKeysConfig    `yaml:"api_keys"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Index      IndexConfig      `yaml:"index"`
	Generation GenerationConfig `yaml:"generation"`
	Chat       ChatConfig       `yaml:"chat"`
	Diet       DietConfig       `yaml:"diet"`
	Ingest     IngestConfig     `yaml:"ingest"`
}

// APIKeysConfig contains paths to files containing API keys for external
// services. If not specified, keys are loaded from environment variables
// (GROQ_API_KEY, PINECONE_API_KEY, OPENAI_API_KEY) or default file
// locations (~/.groq-api-key, ~/.pinecone-api-key, ~/.openai-api-key).
type APIKeysConfig struct {
	Groq     string `yaml:"groq"`     // Path to file containing Groq API key
	Pinecone string `yaml:"pinecone"` // Path to file containing Pinecone API key
	OpenAI   string `yaml:"openai"`   // Path to file containing OpenAI API key
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	ListenAddress string     `yaml:"listen_address"`
	Port          int        `yaml:"port"`
	TLS           TLSConfig  `yaml:"tls"`
	CORS          CORSConfig `yaml:"cors"`
}

// CORSConfig contains CORS (Cross-Origin Resource Sharing) settings.
type CORSConfig struct {
	Enabled        bool     `yaml:"enabled"`
	AllowedOrigins []string `yaml:"allowed_origins"` // Origins to allow, or ["*"] for all
}

// TLSConfig contains TLS/HTTPS settings.
type TLSConfig struct {
	Enabled  bool   `yaml:"enabled"`
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

// EmbeddingConfig selects and configures the embedding backend.
type EmbeddingConfig struct {
	// Provider is one of "local" (ONNX model on disk), "remote"
	// (OpenAI-compatible embeddings API), or "mock" (deterministic,
	// for development without a model).
	Provider string `yaml:"provider"`

	// ModelPath is the path to the ONNX model file (local provider).
	ModelPath string `yaml:"model_path"`

	// Model is the model identifier sent to the remote provider.
	Model string `yaml:"model"`

	// BaseURL overrides the remote provider endpoint.
	BaseURL string `yaml:"base_url"`

	// Dimensions is the embedding dimensionality. All backends must
	// produce vectors of exactly this size.
	Dimensions int `yaml:"dimensions"`

	// MaxTokens is the token window for the local model.
	MaxTokens int `yaml:"max_tokens"`
}

// IndexConfig selects and configures the vector index backend.
type IndexConfig struct {
	// Backend is one of "pinecone" or "pgvector".
	Backend  string         `yaml:"backend"`
	Pinecone PineconeConfig `yaml:"pinecone"`
	Database DatabaseConfig `yaml:"database"`
	Table    TableConfig    `yaml:"table"`
}

// PineconeConfig contains Pinecone index settings.
type PineconeConfig struct {
	IndexName string `yaml:"index_name"`
	// Host is the data-plane host of the index. If empty it is resolved
	// via the control plane at startup.
	Host       string `yaml:"host"`
	Namespace  string `yaml:"namespace"`
	BaseURL    string `yaml:"base_url"`
	APIVersion string `yaml:"api_version"`
}

// DatabaseConfig contains PostgreSQL connection settings (pgvector backend).
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`

	// Certificate-based authentication
	SSLCert   string `yaml:"ssl_cert"`
	SSLKey    string `yaml:"ssl_key"`
	SSLRootCA string `yaml:"ssl_root_ca"`
}

// TableConfig defines the passage table used by the pgvector backend.
type TableConfig struct {
	Name         string `yaml:"name"`
	IDColumn     string `yaml:"id_column"`
	TextColumn   string `yaml:"text_column"`
	SourceColumn string `yaml:"source_column"`
	VectorColumn string `yaml:"vector_column"`
}

// GenerationConfig configures the text-generation provider.
type GenerationConfig struct {
	// Provider is one of "groq", "openai", "ollama", or any other
	// OpenAI-compatible provider (requires base_url).
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url"`

	// TimeoutSeconds bounds each generation call.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// ChatConfig contains settings for the chat pipeline.
type ChatConfig struct {
	TopK        int     `yaml:"top_k"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

// DietConfig contains settings for the diet-plan pipeline.
type DietConfig struct {
	TopK        int     `yaml:"top_k"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

// IngestConfig contains settings for corpus ingestion.
type IngestConfig struct {
	ChunkSize    int `yaml:"chunk_size"`    // Target chunk size in characters
	ChunkOverlap int `yaml:"chunk_overlap"` // Overlap between chunks in characters
	Concurrency  int `yaml:"concurrency"`   // Parallel embedding workers
	BatchSize    int `yaml:"batch_size"`    // Documents per upsert call
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			ListenAddress: "0.0.0.0",
			Port:          8080,
			TLS: TLSConfig{
				Enabled: false,
			},
		},
		Embedding: EmbeddingConfig{
			Provider:   "local",
			ModelPath:  "models/all-MiniLM-L6-v2.onnx",
			Model:      "all-MiniLM-L6-v2",
			Dimensions: 384,
			MaxTokens:  256,
		},
		Index: IndexConfig{
			Backend: "pinecone",
			Pinecone: PineconeConfig{
				IndexName: "common-medicinal-plants-vana",
			},
			Table: TableConfig{
				Name:         "herbal_passages",
				IDColumn:     "id",
				TextColumn:   "content",
				SourceColumn: "source",
				VectorColumn: "embedding",
			},
		},
		Generation: GenerationConfig{
			Provider:       "groq",
			Model:          "llama-3.1-8b-instant",
			TimeoutSeconds: 60,
		},
		Chat: ChatConfig{
			TopK:        3,
			MaxTokens:   1024,
			Temperature: 0.5,
		},
		Diet: DietConfig{
			TopK:        5,
			MaxTokens:   2048,
			Temperature: 0.5,
		},
		Ingest: IngestConfig{
			ChunkSize:    1000,
			ChunkOverlap: 200,
			Concurrency:  4,
			BatchSize:    50,
		},
	}
}
