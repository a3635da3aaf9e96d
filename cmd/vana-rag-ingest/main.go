//-------------------------------------------------------------------------
//
// Vana RAG Server
//
// Copyright (c) 2026, Vana Garden Project
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

// Command vana-rag-ingest loads a document, chunks it, embeds the chunks
// that look medicinal, and upserts them into the configured vector index.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/vana-garden/vana-rag-server/internal/config"
	"github.com/vana-garden/vana-rag-server/internal/embedding"
	"github.com/vana-garden/vana-rag-server/internal/ingest"
	"github.com/vana-garden/vana-rag-server/internal/vectorindex/factory"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to configuration file")
		filePath   = flag.String("file", "", "Document to ingest (PDF or plain text)")
		source     = flag.String("source", "", "Source label for provenance (defaults to the file name)")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Vana RAG Ingest - Index a document into the herbal knowledge base

Usage:
    vana-rag-ingest -file <path> [options]

Options:
    -file string
        Document to ingest. PDF files are extracted page by page;
        anything else is treated as plain text.

    -source string
        Source label stored with each passage. Defaults to the file
        name without extension.

    -config string
        Path to configuration file. Same search order as the server.
`)
	}

	flag.Parse()

	if *filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(*configPath, *filePath, *source, logger); err != nil {
		logger.Error("ingestion failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath, filePath, source string, logger *slog.Logger) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	keys, err := config.NewAPIKeyLoader(cfg.APIKeys).LoadRequiredKeys(cfg)
	if err != nil {
		return fmt.Errorf("failed to load API keys: %w", err)
	}

	embedder, err := embedding.NewFromConfig(cfg.Embedding, keys.OpenAI, logger)
	if err != nil {
		return fmt.Errorf("failed to configure embedder: %w", err)
	}
	defer func() {
		if err := embedder.Close(); err != nil {
			logger.Error("failed to close embedder", "error", err)
		}
	}()

	index, err := factory.New(ctx, cfg.Index, cfg.Embedding.Dimensions, keys.Pinecone, logger)
	if err != nil {
		return fmt.Errorf("failed to create vector index: %w", err)
	}
	defer func() {
		if err := index.Close(); err != nil {
			logger.Error("failed to close index", "error", err)
		}
	}()

	ingestor := ingest.NewIngestor(embedder, index, cfg.Ingest, logger)

	stats, err := ingestor.IngestFile(ctx, filePath, source)
	if err != nil {
		return err
	}

	logger.Info("ingestion complete",
		"chunks", stats.Chunks,
		"filtered_out", stats.Filtered,
		"indexed", stats.Indexed)
	return nil
}
