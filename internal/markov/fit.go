package markov

import (
	"fmt"

	"github.com/seqtools/markovbg/internal/alphabet"
	"github.com/seqtools/markovbg/internal/wordindex"
)

// FitOptions configure model fitting.
type FitOptions struct {
	// BothStrands also counts the reverse complement of every window,
	// producing a strand-symmetric model.
	BothStrands bool
}

// Fit estimates an order-k model from a raw sequence with the default
// options (single strand).
func Fit(seq string, order int, pseudo float64) (*Model, error) {
	return FitWithOptions(seq, order, pseudo, FitOptions{})
}

// FitWithOptions estimates an order-k model from a raw sequence.
//
// A window of length order+1 slides over the sequence with step 1; each
// valid window increments the count of its prefix and of its
// prefix+suffix pair. Windows containing a symbol outside the alphabet
// are skipped, never counted as code 0. Smoothing is applied at
// normalization time, so the raw counts stay available for WithPseudo.
//
// A sequence shorter than order+1 contributes no counts; with pseudo > 0
// this normalizes to a uniform model, with pseudo = 0 it fails with
// DegenerateModelError.
func FitWithOptions(seq string, order int, pseudo float64, opt FitOptions) (*Model, error) {
	if order < 0 {
		return nil, &InvalidOrderError{Order: order, Reason: "order must be >= 0"}
	}
	if pseudo < 0 {
		return nil, fmt.Errorf("pseudo-count must be >= 0, got %g", pseudo)
	}

	rows := wordindex.Size(order)
	m := &Model{
		order:           order,
		pseudo:          pseudo,
		stationaryCount: make([]float64, rows),
		transitionCount: make([]float64, rows*alphabet.Size),
	}

	if order == 0 {
		for i := 0; i < len(seq); i++ {
			code := alphabet.Encode(seq[i])
			if code == alphabet.Invalid {
				continue
			}
			m.transitionCount[code]++
			m.stationaryCount[0]++
			if opt.BothStrands {
				m.transitionCount[alphabet.Complement(code)]++
				m.stationaryCount[0]++
			}
		}
	} else {
		for i := 0; i+order < len(seq); i++ {
			full := wordindex.Index(seq, i, order+1)
			if full == wordindex.Invalid {
				continue
			}
			m.transitionCount[full]++
			m.stationaryCount[full>>2]++
			if opt.BothStrands {
				rc := wordindex.ReverseComplementIndex(seq, i, order+1)
				m.transitionCount[rc]++
				m.stationaryCount[rc>>2]++
			}
		}
	}

	if err := m.normalize(); err != nil {
		return nil, err
	}
	return m, nil
}
