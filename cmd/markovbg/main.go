// Command markovbg fits Markov background models over DNA sequences and
// scores words against them.
//
// Usage:
//
//	markovbg [command] [options]
//
// Commands:
//
//	fit         Fit a model from sequence and print it as a frequency table
//	score       Score words against a background model
//	version     Show version information
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/seqtools/markovbg/pkg/markovbg"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "fit":
		fitCmd(os.Args[2:])
	case "score":
		scoreCmd(os.Args[2:])
	case "version":
		fmt.Println(markovbg.Info())
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`markovbg - Markov background models for DNA sequences

Usage:
  markovbg <command> [options]

Commands:
  fit       Fit a model from sequence and print it as a frequency table
  score     Score words against a background model
  version   Show version information
  help      Show this help message

Use "markovbg <command> -h" for more information about a command.`)
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func fitCmd(args []string) {
	fs := flag.NewFlagSet("fit", flag.ExitOnError)
	file := fs.String("fasta", "", "FASTA file to train on ('-' for stdin)")
	seq := fs.String("seq", "", "inline training sequence")
	order := fs.Int("order", 1, "model order (prefix length)")
	pseudo := fs.Float64("pseudo", 1.0, "pseudo-count weight")
	bothStrands := fs.Bool("2str", false, "also count reverse complements")
	out := fs.String("o", "", "output file (default stdout)")
	fs.Parse(args)

	if *file == "" && *seq == "" {
		fmt.Fprintln(os.Stderr, "Error: Either -fasta or -seq is required")
		fs.Usage()
		os.Exit(1)
	}

	opt := markovbg.FitOptions{BothStrands: *bothStrands}
	var model *markovbg.Model
	var err error

	if *file != "" {
		sequences, rerr := markovbg.ReadFASTA(*file)
		if rerr != nil {
			fatal("reading FASTA: %v", rerr)
		}
		model, err = markovbg.FitSequences(sequences, *order, *pseudo, opt)
	} else {
		model, err = markovbg.FitWithOptions(*seq, *order, *pseudo, opt)
	}
	if err != nil {
		fatal("fitting model: %v", err)
	}

	w := os.Stdout
	if *out != "" && *out != "-" {
		f, cerr := os.Create(*out)
		if cerr != nil {
			fatal("creating output: %v", cerr)
		}
		defer f.Close()
		w = f
	}
	if err := markovbg.WriteTable(w, model); err != nil {
		fatal("writing table: %v", err)
	}
}

func scoreCmd(args []string) {
	fs := flag.NewFlagSet("score", flag.ExitOnError)
	bg := fs.String("bg", "", "background frequency table (oligo-analysis format)")
	priori := fs.String("priori", "", "order-0 priori as pA,pC,pG,pT")
	file := fs.String("fasta", "", "FASTA file to fit the background from")
	order := fs.Int("order", 1, "model order when fitting with -fasta")
	pseudo := fs.Float64("pseudo", 1.0, "pseudo-count weight when fitting with -fasta")
	word := fs.String("word", "", "comma-separated words to score")
	wordsFile := fs.String("words", "", "file with one word per line ('-' for stdin)")
	skipInvalid := fs.Bool("skip-invalid", false, "skip windows containing symbols outside ACGT")
	fs.Parse(args)

	model := loadBackground(*bg, *priori, *file, *order, *pseudo)

	words := make([]string, 0)
	if *word != "" {
		for _, w := range strings.Split(*word, ",") {
			if w != "" {
				words = append(words, w)
			}
		}
	}
	if *wordsFile != "" {
		words = append(words, readWords(*wordsFile)...)
	}
	if len(words) == 0 {
		fmt.Fprintln(os.Stderr, "Error: Either -word or -words is required")
		fs.Usage()
		os.Exit(1)
	}

	opt := markovbg.ScoreOptions{SkipInvalid: *skipInvalid}
	fmt.Println("#word\tlogP")
	for _, w := range words {
		logp, err := model.LogProbabilityWithOptions(w, opt)
		if err != nil {
			fatal("scoring %q: %v", w, err)
		}
		fmt.Printf("%s\t%G\n", w, logp)
	}
}

// loadBackground picks the background model source: a frequency table,
// explicit priori probabilities, a training FASTA, or the uniform
// order-0 fallback when nothing is given.
func loadBackground(bg, priori, file string, order int, pseudo float64) *markovbg.Model {
	given := 0
	for _, s := range []string{bg, priori, file} {
		if s != "" {
			given++
		}
	}
	if given > 1 {
		fatal("-bg, -priori and -fasta are mutually exclusive")
	}

	switch {
	case bg != "":
		model, err := markovbg.ReadTable(bg)
		if err != nil {
			fatal("loading background: %v", err)
		}
		return model
	case priori != "":
		model, err := markovbg.FromPriori(parsePriori(priori))
		if err != nil {
			fatal("invalid priori: %v", err)
		}
		return model
	case file != "":
		sequences, err := markovbg.ReadFASTA(file)
		if err != nil {
			fatal("reading FASTA: %v", err)
		}
		model, err := markovbg.FitSequences(sequences, order, pseudo, markovbg.FitOptions{})
		if err != nil {
			fatal("fitting background: %v", err)
		}
		return model
	default:
		return markovbg.Uniform()
	}
}

func parsePriori(s string) [4]float64 {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		fatal("-priori needs exactly 4 comma-separated values, got %d", len(parts))
	}
	var priori [4]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			fatal("invalid priori value %q", p)
		}
		priori[i] = v
	}
	return priori
}

func readWords(filename string) []string {
	r := os.Stdin
	if filename != "-" {
		f, err := os.Open(filename)
		if err != nil {
			fatal("opening words file: %v", err)
		}
		defer f.Close()
		r = f
	}

	words := make([]string, 0)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' || line[0] == ';' {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		fatal("reading words: %v", err)
	}
	return words
}
