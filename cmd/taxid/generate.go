package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/dmitrymomot/taxid/pkg/taxid"
)

const maxGenerate = 10000

func runGenerate(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		kind = fs.String("type", "both", "individual, organization or both")
		n    = fs.Int("n", 1, "number of INNs to print")
		seed = fs.Uint64("seed", 0, "seed for reproducible output; 0 picks a random seed")
	)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	var t taxid.EntityType
	switch *kind {
	case "individual":
		t = taxid.Individual
	case "organization":
		t = taxid.Organization
	case "both", "":
	default:
		fmt.Fprintf(stderr, "generate: unknown type %q\n", *kind)
		return exitUsage
	}
	if *n < 1 || *n > maxGenerate {
		fmt.Fprintf(stderr, "generate: -n must be between 1 and %d\n", maxGenerate)
		return exitUsage
	}

	var r *rand.Rand
	if *seed != 0 {
		r = rand.New(rand.NewPCG(*seed, *seed))
	}
	for _, inn := range taxid.Generate(r, *n, t) {
		fmt.Fprintln(stdout, inn)
	}
	return exitOK
}
