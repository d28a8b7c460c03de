package markov

import (
	"fmt"
	"strings"

	"github.com/seqtools/markovbg/internal/alphabet"
	"github.com/seqtools/markovbg/internal/wordindex"
)

// Record is one frequency-table entry: an oligomer and its relative
// frequency, as emitted by a prior oligo-counting step.
type Record struct {
	Oligo string
	Freq  float64
}

// LoadTable builds a model from pre-computed oligomer frequencies.
//
// The order is inferred from the first record: oligomers of length k+1
// build an order-k model, so a table of single symbols builds the
// order-0 priori path. Every oligomer must have the same length; a
// repeated oligomer rejects the whole load (see DuplicateOligoError).
//
// Each record contributes its frequency to the stationary mass of its
// k-symbol prefix and sets the transition weight of its final symbol.
// After all records are consumed the stationary vector is normalized to
// sum to 1 across prefixes and each transition row across its 4
// suffixes. A table need not be complete: missing suffixes of a partly
// covered prefix get probability 0 (no smoothing is applied to loaded
// tables), and scoring through them yields -Inf.
func LoadTable(records []Record) (*Model, error) {
	if len(records) == 0 {
		return nil, &InvalidOrderError{Order: -1, Reason: "frequency table is empty"}
	}

	order := len(records[0].Oligo) - 1
	if order < 0 {
		return nil, &InvalidOrderError{Order: order, Reason: "first record has an empty oligomer"}
	}

	rows := wordindex.Size(order)
	m := &Model{
		order:           order,
		stationaryCount: make([]float64, rows),
		transitionCount: make([]float64, rows*alphabet.Size),
	}

	seen := make([]bool, rows*alphabet.Size)
	for _, r := range records {
		if len(r.Oligo) != order+1 {
			return nil, &InvalidOrderError{
				Order:  order,
				Reason: fmt.Sprintf("oligomer %q has length %d, expected %d", r.Oligo, len(r.Oligo), order+1),
			}
		}
		if r.Freq < 0 {
			return nil, fmt.Errorf("oligomer %q has negative frequency %g", r.Oligo, r.Freq)
		}
		full := wordindex.Index(r.Oligo, 0, order+1)
		if full == wordindex.Invalid {
			for j := 0; j < len(r.Oligo); j++ {
				if !alphabet.IsValid(r.Oligo[j]) {
					return nil, &InvalidSymbolError{Position: j, Symbol: r.Oligo[j]}
				}
			}
		}
		if seen[full] {
			return nil, &DuplicateOligoError{Oligo: strings.ToUpper(r.Oligo)}
		}
		seen[full] = true
		m.transitionCount[full] = r.Freq
		m.stationaryCount[full>>2] += r.Freq
	}

	if err := m.normalize(); err != nil {
		return nil, err
	}
	return m, nil
}
