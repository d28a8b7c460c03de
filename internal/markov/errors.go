package markov

import "fmt"

// ModelError is the base error type for model construction and scoring.
type ModelError interface {
	error
	IsModelError()
}

// InvalidSymbolError is returned when a symbol outside the alphabet
// appears where it cannot be skipped.
type InvalidSymbolError struct {
	Position int
	Symbol   byte
}

func (e *InvalidSymbolError) Error() string {
	return fmt.Sprintf("invalid symbol '%c' at position %d", e.Symbol, e.Position)
}

func (e *InvalidSymbolError) IsModelError() {}

// InvalidOrderError is returned when the model order is negative or
// cannot be inferred consistently from a frequency table.
type InvalidOrderError struct {
	Order  int
	Reason string
}

func (e *InvalidOrderError) Error() string {
	return fmt.Sprintf("invalid order %d: %s", e.Order, e.Reason)
}

func (e *InvalidOrderError) IsModelError() {}

// InvalidPrioriError is returned when order-0 priori probabilities do not
// sum to 1 within tolerance, or contain a negative entry.
type InvalidPrioriError struct {
	Sum float64
}

func (e *InvalidPrioriError) Error() string {
	return fmt.Sprintf("priori probabilities must be non-negative and sum to 1, got sum %g", e.Sum)
}

func (e *InvalidPrioriError) IsModelError() {}

// DuplicateOligoError is returned when a frequency table contains the
// same oligomer twice. Last-write-wins would silently pick one of the two
// frequencies, so the whole load is rejected instead.
type DuplicateOligoError struct {
	Oligo string
}

func (e *DuplicateOligoError) Error() string {
	return fmt.Sprintf("duplicate oligomer %q in frequency table", e.Oligo)
}

func (e *DuplicateOligoError) IsModelError() {}

// DegenerateModelError is returned when fitting with pseudo-count 0
// produced no counts at all, leaving nothing to normalize.
type DegenerateModelError struct{}

func (e *DegenerateModelError) Error() string {
	return "no valid window in training input and pseudo-count is 0; model would be all zero"
}

func (e *DegenerateModelError) IsModelError() {}

// WordLengthError is returned when a query word is too short to contain
// a single prefix+suffix window.
type WordLengthError struct {
	Need int
	Got  int
}

func (e *WordLengthError) Error() string {
	return fmt.Sprintf("word of length %d is shorter than order+1 = %d", e.Got, e.Need)
}

func (e *WordLengthError) IsModelError() {}
