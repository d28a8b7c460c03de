package markov

import (
	"math"

	"github.com/seqtools/markovbg/internal/alphabet"
)

// prioriTolerance bounds how far the priori probabilities may drift
// from summing to exactly 1.
const prioriTolerance = 1e-6

// FromPriori builds an order-0 (Bernoulli) model from marginal symbol
// probabilities, in code order (pA, pC, pG, pT).
//
// The probabilities must be non-negative and sum to 1 within 1e-6. Log
// probabilities are computed once here, not per scoring call. A zero
// entry is accepted: its log is -Inf, and scoring any word containing
// that symbol returns -Inf rather than failing.
func FromPriori(priori [alphabet.Size]float64) (*Model, error) {
	var sum float64
	for _, p := range priori {
		if p < 0 {
			return nil, &InvalidPrioriError{Sum: sum}
		}
		sum += p
	}
	if math.Abs(sum-1) > prioriTolerance {
		return nil, &InvalidPrioriError{Sum: sum}
	}

	m := &Model{
		order:      0,
		stationary: []float64{1},
		transition: make([]float64, alphabet.Size),
		priori:     priori,
	}
	for code, p := range priori {
		m.transition[code] = p
		m.logPriori[code] = math.Log(p)
	}
	return m, nil
}

// Uniform returns the order-0 model with equal probability for every
// symbol, the background used when no frequency table is supplied.
func Uniform() *Model {
	var priori [alphabet.Size]float64
	for i := range priori {
		priori[i] = 1.0 / alphabet.Size
	}
	m, _ := FromPriori(priori)
	return m
}
