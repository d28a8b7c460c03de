// Package fasta provides a minimal FASTA reader for feeding training
// sequences to the model fitter.
//
// Sequences are not validated here: the fitter skips windows containing
// symbols outside the alphabet (N runs, IUPAC codes), so rejecting them
// at parse time would refuse perfectly usable genomes.
package fasta

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Sequence is one FASTA record.
type Sequence struct {
	ID          string
	Description string
	Bases       string
}

// Parse reads all records from a FASTA stream. Input without a header
// line is accepted as a single anonymous sequence.
func Parse(r io.Reader) ([]*Sequence, error) {
	sequences := make([]*Sequence, 0)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1<<20), 1<<20)

	var currentID, currentDesc string
	var currentBases strings.Builder

	flush := func() {
		if currentBases.Len() > 0 {
			sequences = append(sequences, &Sequence{
				ID:          currentID,
				Description: currentDesc,
				Bases:       currentBases.String(),
			})
			currentBases.Reset()
		}
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 {
			continue
		}

		if line[0] == '>' {
			flush()
			parts := strings.SplitN(line[1:], " ", 2)
			currentID = parts[0]
			if len(parts) > 1 {
				currentDesc = parts[1]
			} else {
				currentDesc = ""
			}
		} else {
			currentBases.WriteString(line)
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading fasta: %w", err)
	}

	return sequences, nil
}

// Read opens a file and parses it; "-" reads from stdin.
func Read(filename string) ([]*Sequence, error) {
	if filename == "-" {
		return Parse(os.Stdin)
	}
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	return Parse(file)
}
