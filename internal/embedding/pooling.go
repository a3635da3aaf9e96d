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
	"errors"
	"math"
)

// errZeroVector is returned when pooling or normalization would hand a
// zero vector to the caller. A zero vector retrieves arbitrary neighbors,
// so it must never reach the index.
var errZeroVector = errors.New("embedding collapsed to zero vector")

// meanPool averages token-level embeddings into a single sentence vector,
// counting only positions enabled in the attention mask. tokenEmbeddings is
// laid out [tokens][dims] flattened.
func meanPool(tokenEmbeddings []float32, attentionMask []int64, tokens, dims int) ([]float32, error) {
	pooled := make([]float32, dims)
	count := 0

	for t := 0; t < tokens; t++ {
		if attentionMask[t] == 0 {
			continue
		}
		base := t * dims
		for d := 0; d < dims; d++ {
			pooled[d] += tokenEmbeddings[base+d]
		}
		count++
	}

	if count == 0 {
		return nil, errZeroVector
	}

	inv := float32(1.0 / float64(count))
	for d := range pooled {
		pooled[d] *= inv
	}
	return pooled, nil
}

// normalizeL2 scales x in place to unit L2 norm. It returns errZeroVector
// when the input has no magnitude to normalize.
func normalizeL2(x []float32) error {
	var sum float64
	for _, v := range x {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return errZeroVector
	}

	inv := float32(1.0 / math.Sqrt(sum))
	for i := range x {
		x[i] *= inv
	}
	return nil
}
