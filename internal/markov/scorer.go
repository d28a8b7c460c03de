package markov

import (
	"math"

	"github.com/seqtools/markovbg/internal/alphabet"
	"github.com/seqtools/markovbg/internal/wordindex"
)

// ScoreOptions configure scoring.
type ScoreOptions struct {
	// SkipInvalid drops every term whose window contains a symbol
	// outside the alphabet instead of failing. Off by default: an
	// unexpected symbol in a query is usually a caller bug.
	SkipInvalid bool
}

// LogProbability scores a word under the model with the default options,
// failing on any symbol outside the alphabet.
func (m *Model) LogProbability(word string) (float64, error) {
	return m.LogProbabilityWithOptions(word, ScoreOptions{})
}

// LogProbabilityWithOptions returns the log-probability of a word under
// the model, accumulated term by term in the log domain. A running
// product of raw probabilities underflows to 0 long before a genome-scale
// scan finishes; the sum of logs does not.
//
// For order 0 the score is the sum of log priori over every symbol. For
// order >= 1 it is seeded with log stationary of the first prefix and
// accumulates log P(suffix|prefix) for each subsequent position; words
// shorter than order+1 fail with WordLengthError.
//
// A result of -Inf means some probability along the path is exactly 0
// (possible whenever the model was built with pseudo-count 0). That is a
// legitimate score, not an error: when ranking words it simply sorts
// last.
func (m *Model) LogProbabilityWithOptions(word string, opt ScoreOptions) (float64, error) {
	if m.order == 0 {
		var logp float64
		for i := 0; i < len(word); i++ {
			code := alphabet.Encode(word[i])
			if code == alphabet.Invalid {
				if opt.SkipInvalid {
					continue
				}
				return 0, &InvalidSymbolError{Position: i, Symbol: word[i]}
			}
			logp += m.logPriori[code]
		}
		return logp, nil
	}

	if len(word) < m.order+1 {
		return 0, &WordLengthError{Need: m.order + 1, Got: len(word)}
	}
	if !opt.SkipInvalid {
		for i := 0; i < len(word); i++ {
			if !alphabet.IsValid(word[i]) {
				return 0, &InvalidSymbolError{Position: i, Symbol: word[i]}
			}
		}
	}

	var logp float64
	if prefix := wordindex.Index(word, 0, m.order); prefix != wordindex.Invalid {
		logp = math.Log(m.stationary[prefix])
	}
	for i := m.order; i < len(word); i++ {
		full := wordindex.Index(word, i-m.order, m.order+1)
		if full == wordindex.Invalid {
			continue // only reachable with SkipInvalid
		}
		logp += math.Log(m.transition[full])
	}
	return logp, nil
}

// Probability returns exp of LogProbability. Convenience only: the
// probability domain underflows to 0 for words beyond a few dozen
// symbols, so prefer LogProbability everywhere the magnitude matters.
func (m *Model) Probability(word string) (float64, error) {
	logp, err := m.LogProbability(word)
	if err != nil {
		return 0, err
	}
	return math.Exp(logp), nil
}
