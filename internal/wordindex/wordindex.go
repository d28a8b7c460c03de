// Package wordindex converts fixed-length windows of DNA symbols into
// dense integer indexes.
//
// A window of k symbols is encoded in mixed radix 4 with the first symbol
// as the most significant digit:
//
//	index = Σ code(window[i]) * 4^(k-1-i)
//
// The same encoder serves both the counting and the scoring paths of the
// Markov model; the encoding must never diverge between the two, or the
// fitted probabilities silently stop matching the scored words.
package wordindex

import "github.com/seqtools/markovbg/internal/alphabet"

// Invalid is returned when a window contains a symbol outside the
// alphabet. Callers must check for it before indexing into any table.
const Invalid = -1

// Size returns the number of distinct indexes for windows of length k,
// i.e. 4^k. Size(0) is 1: the empty window has exactly one encoding.
func Size(k int) int {
	return 1 << (2 * k)
}

// Index encodes the window seq[pos:pos+k]. It returns Invalid if any
// symbol in the window is outside the alphabet or if the window does not
// fit inside seq.
func Index(seq string, pos, k int) int {
	if pos < 0 || pos+k > len(seq) {
		return Invalid
	}
	idx := 0
	for i := 0; i < k; i++ {
		code := alphabet.Encode(seq[pos+i])
		if code == alphabet.Invalid {
			return Invalid
		}
		idx = idx<<2 | code
	}
	return idx
}

// ReverseComplementIndex encodes the reverse complement of the window
// seq[pos:pos+k]: complement codes read from the last symbol to the
// first. Sentinel behavior matches Index.
func ReverseComplementIndex(seq string, pos, k int) int {
	if pos < 0 || pos+k > len(seq) {
		return Invalid
	}
	idx := 0
	for i := k - 1; i >= 0; i-- {
		code := alphabet.Encode(seq[pos+i])
		if code == alphabet.Invalid {
			return Invalid
		}
		idx = idx<<2 | alphabet.Complement(code)
	}
	return idx
}

// Decode is the inverse of Index on the valid domain: it rebuilds the
// k-symbol window encoded by idx. The second return is false when idx is
// outside [0, 4^k).
func Decode(idx, k int) (string, bool) {
	if idx < 0 || idx >= Size(k) {
		return "", false
	}
	word := make([]byte, k)
	for i := k - 1; i >= 0; i-- {
		b, _ := alphabet.Decode(idx & 3)
		word[i] = b
		idx >>= 2
	}
	return string(word), true
}
