// Package freqtable reads oligomer frequency tables in the format
// emitted by oligo-counting tools: one tab-separated record per line,
// comment lines starting with ';' or '#'.
//
// Two layouts are accepted:
//
//	oligo<TAB>freq
//	oligo<TAB>id<TAB>freq[<TAB>occ...]
//
// In the wider layout the frequency is the third column; any further
// columns are ignored.
package freqtable

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/seqtools/markovbg/internal/markov"
)

// MalformedRecordError is returned when a table line cannot be parsed.
// The whole load fails; a partly read table is never returned.
type MalformedRecordError struct {
	Line   int
	Text   string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// Parse reads frequency records from a stream.
func Parse(r io.Reader) ([]markov.Record, error) {
	records := make([]markov.Record, 0)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if len(strings.TrimSpace(line)) == 0 {
			continue
		}
		if line[0] == ';' || line[0] == '#' {
			continue
		}

		fields := strings.Split(line, "\t")
		var freqField string
		switch {
		case len(fields) == 2:
			freqField = fields[1]
		case len(fields) >= 3:
			freqField = fields[2]
		default:
			return nil, &MalformedRecordError{Line: lineNo, Text: line,
				Reason: "expected at least 2 tab-separated columns"}
		}

		freq, err := strconv.ParseFloat(strings.TrimSpace(freqField), 64)
		if err != nil {
			return nil, &MalformedRecordError{Line: lineNo, Text: line,
				Reason: "frequency is not a number"}
		}

		records = append(records, markov.Record{Oligo: fields[0], Freq: freq})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading table: %w", err)
	}

	return records, nil
}

// Load parses a stream and builds a model from it in one step.
func Load(r io.Reader) (*markov.Model, error) {
	records, err := Parse(r)
	if err != nil {
		return nil, err
	}
	return markov.LoadTable(records)
}

// Write emits a model's records in the 2-column layout, with a comment
// header naming the columns.
func Write(w io.Writer, m *markov.Model) error {
	if _, err := fmt.Fprintf(w, "; markov model, order %d\n; oligo\tfreq\n", m.Order()); err != nil {
		return err
	}
	for _, r := range m.Records() {
		if _, err := fmt.Fprintf(w, "%s\t%.13f\n", r.Oligo, r.Freq); err != nil {
			return err
		}
	}
	return nil
}
