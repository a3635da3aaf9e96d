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
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Factory constructs an embedding backend. It is called at most twice per
// load attempt (initial try plus one retry) and never concurrently.
type Factory func(ctx context.Context) (Embedder, error)

// Lazy defers backend construction to the first Embed call. Concurrent
// callers during a cold start share a single in-flight load instead of each
// triggering their own; a successful load is cached for the process
// lifetime and read without further synchronization cost. A failed load is
// retried once within the same attempt before the call fails, and a later
// call may attempt a fresh load.
type Lazy struct {
	factory    Factory
	dimensions int
	logger     *slog.Logger

	group    singleflight.Group
	mu       sync.RWMutex
	embedder Embedder
}

// NewLazy wraps factory in a lazily-initialized Embedder. The dimensions
// value is reported before the backend is loaded and must match what the
// backend produces.
func NewLazy(factory Factory, dimensions int, logger *slog.Logger) *Lazy {
	if logger == nil {
		logger = slog.Default()
	}
	return &Lazy{
		factory:    factory,
		dimensions: dimensions,
		logger:     logger,
	}
}

// Embed loads the backend if needed, then delegates to it.
func (l *Lazy) Embed(ctx context.Context, text string) ([]float32, error) {
	e, err := l.get(ctx)
	if err != nil {
		return nil, err
	}
	return e.Embed(ctx, text)
}

// get returns the loaded backend, loading it on first use. The singleflight
// group guarantees that N concurrent cold-start callers produce exactly one
// underlying load.
func (l *Lazy) get(ctx context.Context) (Embedder, error) {
	l.mu.RLock()
	e := l.embedder
	l.mu.RUnlock()
	if e != nil {
		return e, nil
	}

	v, err, _ := l.group.Do("load", func() (interface{}, error) {
		// A previous flight may have finished between the read above
		// and joining this one.
		l.mu.RLock()
		cached := l.embedder
		l.mu.RUnlock()
		if cached != nil {
			return cached, nil
		}

		l.logger.Info("loading embedding model")
		loaded, loadErr := l.factory(ctx)
		if loadErr != nil {
			l.logger.Warn("embedding model load failed, retrying once", "error", loadErr)
			loaded, loadErr = l.factory(ctx)
		}
		if loadErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, loadErr)
		}

		l.mu.Lock()
		l.embedder = loaded
		l.mu.Unlock()
		l.logger.Info("embedding model loaded", "dimensions", loaded.Dimensions())
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(Embedder), nil
}

// Warmup triggers the model load without embedding anything. Errors are
// logged, not returned: the load will be retried by the first request.
func (l *Lazy) Warmup(ctx context.Context) {
	if _, err := l.get(ctx); err != nil {
		l.logger.Error("embedding model warmup failed", "error", err)
	}
}

// Dimensions returns the configured embedding dimensionality.
func (l *Lazy) Dimensions() int {
	return l.dimensions
}

// Close releases the loaded backend, if any.
func (l *Lazy) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.embedder == nil {
		return nil
	}
	err := l.embedder.Close()
	l.embedder = nil
	return err
}

var _ Embedder = (*Lazy)(nil)
