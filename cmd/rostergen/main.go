// Command rostergen writes a fake roster CSV for demos and pipeline testing.
package main

import (
	"flag"
	"os"

	"github.com/fieldhouse/combine/internal/domain/schema"
	"github.com/fieldhouse/combine/internal/rostergen"
)

const defaultRows = 50

func main() {
	var (
		out       = flag.String("out", "", "Output file (default: stdout)")
		rows      = flag.Int("rows", defaultRows, "Number of data rows")
		sport     = flag.String("sport", "football", "Sport template: football, basketball, soccer, track")
		seed      = flag.Uint64("seed", 0, "Random seed (0 = random)")
		messy     = flag.Bool("messy", false, "Synonym headers, combined names, European decimals")
		missing   = flag.Float64("missing", 0, "Fraction of score cells left empty")
		duplicate = flag.Float64("duplicates", 0, "Fraction of rows repeated verbatim")
	)
	flag.Parse()

	tmpl, ok := schema.BaseTemplates()[*sport]
	if !ok {
		os.Stderr.WriteString("unknown sport template: " + *sport + "\n")
		os.Exit(1)
	}

	opts := []rostergen.Option{
		rostergen.WithTemplate(tmpl),
		rostergen.WithRows(*rows),
		rostergen.WithSeed(*seed),
		rostergen.WithMissingRate(*missing),
		rostergen.WithDuplicateRate(*duplicate),
	}
	if *messy {
		opts = append(opts,
			rostergen.WithCombinedNames(),
			rostergen.WithSynonymHeaders(),
			rostergen.WithEuropeanDecimals(),
		)
	}

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			os.Stderr.WriteString("create output: " + err.Error() + "\n")
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	if err := rostergen.New(opts...).WriteCSV(w); err != nil {
		os.Stderr.WriteString("generate roster: " + err.Error() + "\n")
		os.Exit(1)
	}
}
