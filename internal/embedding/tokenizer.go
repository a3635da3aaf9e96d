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
	"strings"
	"unicode"
)

// BERT special token IDs.
const (
	tokenCLS = 101
	tokenSEP = 102
)

// Tokenizer produces BERT-style model inputs (input_ids, attention_mask,
// token_type_ids), padded to maxTokens.
type Tokenizer interface {
	Tokenize(text string, maxTokens int) (inputIDs, attentionMask, tokenTypeIDs []int64)
}

// HashTokenizer lowercases, splits on whitespace and punctuation, and maps
// each token to a stable hashed ID within the BERT vocabulary range. It is
// an approximation of the model's real wordpiece vocabulary: nearby texts
// still tokenize consistently, which is what unit-level determinism needs.
type HashTokenizer struct{}

// Tokenize converts text into padded model inputs. Position 0 is [CLS] and
// the final content position is [SEP]; the attention mask covers both.
func (t *HashTokenizer) Tokenize(text string, maxTokens int) (inputIDs, attentionMask, tokenTypeIDs []int64) {
	if maxTokens <= 0 {
		maxTokens = 256
	}
	inputIDs = make([]int64, maxTokens)
	attentionMask = make([]int64, maxTokens)
	tokenTypeIDs = make([]int64, maxTokens)

	inputIDs[0] = tokenCLS
	attentionMask[0] = 1

	pos := 1
	for _, tok := range splitTokens(text) {
		if pos >= maxTokens-1 {
			break
		}
		inputIDs[pos] = hashTokenID(tok)
		attentionMask[pos] = 1
		pos++
	}
	if pos < maxTokens {
		inputIDs[pos] = tokenSEP
		attentionMask[pos] = 1
	}
	return inputIDs, attentionMask, tokenTypeIDs
}

// splitTokens lowercases text and splits it into word and punctuation
// tokens.
func splitTokens(text string) []string {
	var tokens []string
	var word strings.Builder

	flush := func() {
		if word.Len() > 0 {
			tokens = append(tokens, word.String())
			word.Reset()
		}
	}

	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsSpace(r):
			flush()
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			flush()
			tokens = append(tokens, string(r))
		default:
			word.WriteRune(r)
		}
	}
	flush()
	return tokens
}

// hashTokenID maps a token to a deterministic ID above the special-token
// range and below the BERT vocabulary size.
func hashTokenID(tok string) int64 {
	const (
		vocabSize    = 30522
		reservedUpTo = 999 // [PAD], [UNK], [CLS], [SEP], [MASK], unused slots
	)

	var h uint32
	for _, c := range tok {
		h = 31*h + uint32(c)
	}
	return int64(reservedUpTo+1) + int64(h%(vocabSize-reservedUpTo-1))
}
