// Package markov implements an order-k Markov chain background model
// over the DNA alphabet, with maximum-likelihood parameter estimation
// under pseudo-count smoothing:
//
//	                   C(suffix|prefix) + pseudo
//	P(suffix|prefix) = -------------------------
//	                     C(prefix) + N*pseudo
//
// where N is the alphabet size, C(suffix|prefix) the count of the
// prefix+suffix window and C(prefix) the prefix count.
//
// A model is built once — from a raw sequence (Fit), from order-0 priori
// probabilities (FromPriori) or from a pre-computed frequency table
// (LoadTable) — and is immutable afterwards. Scoring borrows the model
// read-only, so a fitted model may be shared freely across goroutines.
package markov

import (
	"fmt"
	"math"

	"github.com/seqtools/markovbg/internal/alphabet"
	"github.com/seqtools/markovbg/internal/wordindex"
)

// Model is a fitted order-k background model.
//
// The transition matrix is stored as a single flat row-major buffer of
// 4^order rows by 4 columns; row i holds the suffix probabilities for the
// prefix whose word index is i. For order 0 the stationary vector
// degenerates to a single entry and the transition row doubles as the
// priori vector.
type Model struct {
	order  int
	pseudo float64

	// Raw counts are retained after fitting so the same counts can be
	// renormalized under a different pseudo weight (see WithPseudo).
	// Nil for models built by FromPriori.
	stationaryCount []float64
	transitionCount []float64

	stationary []float64
	transition []float64

	priori    [alphabet.Size]float64
	logPriori [alphabet.Size]float64
}

// Order returns the model order k.
func (m *Model) Order() int {
	return m.order
}

// Pseudo returns the smoothing weight the model was normalized with.
func (m *Model) Pseudo() float64 {
	return m.pseudo
}

// Prefixes returns the number of distinct prefixes, 4^order.
func (m *Model) Prefixes() int {
	return wordindex.Size(m.order)
}

// StationaryProb returns the probability of a prefix by its word index.
func (m *Model) StationaryProb(prefix int) float64 {
	return m.stationary[prefix]
}

// TransitionProb returns P(suffix|prefix) for a prefix word index and a
// suffix symbol code.
func (m *Model) TransitionProb(prefix, suffix int) float64 {
	return m.transition[prefix*alphabet.Size+suffix]
}

// Priori returns the order-0 marginal probabilities. Meaningful only for
// order-0 models.
func (m *Model) Priori() [alphabet.Size]float64 {
	return m.priori
}

// Clone returns a deep copy of the model.
func (m *Model) Clone() *Model {
	c := &Model{
		order:     m.order,
		pseudo:    m.pseudo,
		priori:    m.priori,
		logPriori: m.logPriori,
	}
	if m.stationaryCount != nil {
		c.stationaryCount = append([]float64(nil), m.stationaryCount...)
		c.transitionCount = append([]float64(nil), m.transitionCount...)
	}
	c.stationary = append([]float64(nil), m.stationary...)
	c.transition = append([]float64(nil), m.transition...)
	return c
}

// WithPseudo renormalizes the model's retained raw counts under a
// different pseudo-count, returning a new model. The receiver is left
// untouched. Fails for models that carry no counts (FromPriori).
func (m *Model) WithPseudo(pseudo float64) (*Model, error) {
	if pseudo < 0 {
		return nil, fmt.Errorf("pseudo-count must be >= 0, got %g", pseudo)
	}
	if m.stationaryCount == nil {
		return nil, fmt.Errorf("model carries no raw counts to renormalize")
	}
	c := m.Clone()
	c.pseudo = pseudo
	if err := c.normalize(); err != nil {
		return nil, err
	}
	return c, nil
}

// Records flattens the model into (oligo, frequency) records: one
// (order+1)-mer per transition, with frequency
// stationary(prefix) * P(suffix|prefix). Loading the records back with
// LoadTable reproduces the same probabilities.
func (m *Model) Records() []Record {
	k := m.order + 1
	records := make([]Record, 0, wordindex.Size(k))
	for prefix := 0; prefix < m.Prefixes(); prefix++ {
		for suffix := 0; suffix < alphabet.Size; suffix++ {
			oligo, _ := wordindex.Decode(prefix*alphabet.Size+suffix, k)
			records = append(records, Record{
				Oligo: oligo,
				Freq:  m.stationary[prefix] * m.TransitionProb(prefix, suffix),
			})
		}
	}
	return records
}

func (m *Model) String() string {
	return fmt.Sprintf("Model { order: %d, pseudo: %g, prefixes: %d }",
		m.order, m.pseudo, m.Prefixes())
}

// normalize turns the retained raw counts into probabilities. Stationary
// probabilities are smoothed the same way as transitions, with one
// pseudo-count per prefix. A prefix whose row has no counts and no
// smoothing keeps an all-zero row: scoring through it yields -Inf, which
// is defined data, not an error.
func (m *Model) normalize() error {
	rows := wordindex.Size(m.order)
	m.stationary = make([]float64, rows)
	m.transition = make([]float64, rows*alphabet.Size)

	var total float64
	for _, c := range m.stationaryCount {
		total += c
	}
	if total == 0 && m.pseudo == 0 {
		return &DegenerateModelError{}
	}

	denom := total + float64(rows)*m.pseudo
	for prefix := 0; prefix < rows; prefix++ {
		m.stationary[prefix] = (m.stationaryCount[prefix] + m.pseudo) / denom

		var rowSum float64
		for suffix := 0; suffix < alphabet.Size; suffix++ {
			rowSum += m.transitionCount[prefix*alphabet.Size+suffix]
		}
		rowDenom := rowSum + alphabet.Size*m.pseudo
		if rowDenom == 0 {
			continue
		}
		for suffix := 0; suffix < alphabet.Size; suffix++ {
			i := prefix*alphabet.Size + suffix
			m.transition[i] = (m.transitionCount[i] + m.pseudo) / rowDenom
		}
	}

	if m.order == 0 {
		for code := 0; code < alphabet.Size; code++ {
			m.priori[code] = m.transition[code]
			m.logPriori[code] = math.Log(m.priori[code])
		}
	}
	return nil
}
