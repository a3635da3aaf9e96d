//-------------------------------------------------------------------------
//
// Vana RAG Server
//
// Copyright (c) 2026, Vana Garden Project
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

package pipeline

import "errors"

var (
	// ErrInvalidInput indicates a request that fails validation before
	// the pipeline runs (empty query, empty plant list).
	ErrInvalidInput = errors.New("invalid input")

	// ErrGenerationUnavailable indicates the generation call failed for
	// a pipeline that cannot degrade. The diet pipeline fails the whole
	// request on this; the chat pipeline never returns it.
	ErrGenerationUnavailable = errors.New("generation unavailable")
)
