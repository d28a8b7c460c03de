// Package markovbg provides a high-level API for the Markov background
// model: fitting from sequence, loading from frequency tables, and
// log-probability scoring of words.
//
// Example usage:
//
//	model, err := markovbg.Fit("AAAAACGTACGT", 2, 1.0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	logp, err := model.LogProbability("ACGTAC")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("log P = %.4f\n", logp)
package markovbg

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/seqtools/markovbg/internal/fasta"
	"github.com/seqtools/markovbg/internal/freqtable"
	"github.com/seqtools/markovbg/internal/markov"
)

// Re-export types for convenience
type (
	Model                = markov.Model
	Record               = markov.Record
	FitOptions           = markov.FitOptions
	ScoreOptions         = markov.ScoreOptions
	ModelError           = markov.ModelError
	InvalidSymbolError   = markov.InvalidSymbolError
	InvalidOrderError    = markov.InvalidOrderError
	InvalidPrioriError   = markov.InvalidPrioriError
	DuplicateOligoError  = markov.DuplicateOligoError
	DegenerateModelError = markov.DegenerateModelError
	WordLengthError      = markov.WordLengthError
	Sequence             = fasta.Sequence
)

// Version is the library version.
const Version = "0.2.0"

// Info returns a version string.
func Info() string {
	return fmt.Sprintf("markovbg %s", Version)
}

// Fit estimates an order-k model from a raw sequence.
func Fit(seq string, order int, pseudo float64) (*Model, error) {
	return markov.Fit(seq, order, pseudo)
}

// FitWithOptions estimates an order-k model with explicit options.
func FitWithOptions(seq string, order int, pseudo float64, opt FitOptions) (*Model, error) {
	return markov.FitWithOptions(seq, order, pseudo, opt)
}

// FitSequences fits one model over several sequences, pooling the counts
// of every sequence into the same model.
func FitSequences(seqs []*Sequence, order int, pseudo float64, opt FitOptions) (*Model, error) {
	var joined strings.Builder
	for i, s := range seqs {
		if i > 0 {
			// a separator outside the alphabet keeps windows from
			// spanning two sequences
			joined.WriteByte('\n')
		}
		joined.WriteString(s.Bases)
	}
	return markov.FitWithOptions(joined.String(), order, pseudo, opt)
}

// FromPriori builds an order-0 (Bernoulli) model from marginal symbol
// probabilities in (A, C, G, T) order.
func FromPriori(priori [4]float64) (*Model, error) {
	return markov.FromPriori(priori)
}

// Uniform returns the order-0 model with equal symbol probabilities.
func Uniform() *Model {
	return markov.Uniform()
}

// LoadTable builds a model from pre-parsed frequency records.
func LoadTable(records []Record) (*Model, error) {
	return markov.LoadTable(records)
}

// ParseTable parses a frequency-table stream into records.
func ParseTable(r io.Reader) ([]Record, error) {
	return freqtable.Parse(r)
}

// ReadTable reads a frequency-table file and builds a model from it.
func ReadTable(filename string) (*Model, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	return freqtable.Load(file)
}

// WriteTable writes a model as a frequency table.
func WriteTable(w io.Writer, m *Model) error {
	return freqtable.Write(w, m)
}

// ParseFASTA parses FASTA records from a reader.
func ParseFASTA(r io.Reader) ([]*Sequence, error) {
	return fasta.Parse(r)
}

// ReadFASTA reads FASTA records from a file; "-" reads stdin.
func ReadFASTA(filename string) ([]*Sequence, error) {
	return fasta.Read(filename)
}
