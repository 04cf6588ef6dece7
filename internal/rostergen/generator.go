// Package rostergen generates fake roster spreadsheets for demos and load
// testing. It can emit clean files or deliberately messy ones that exercise
// the whole import pipeline: synonym headers, combined name columns,
// European decimals, gaps, and duplicate rows.
package rostergen

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/fieldhouse/combine/internal/domain/schema"
)

var ageGroups = []string{"U10", "U12", "U14", "U16", "U18"}

// Generator produces one roster file per call to Generate.
type Generator struct {
	faker    *gofakeit.Faker
	template schema.Template
	rows     int

	combinedNames    bool
	synonymHeaders   bool
	europeanDecimals bool
	missingRate      float64
	duplicateRate    float64
}

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithSeed makes output reproducible.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.faker = gofakeit.New(seed)
	}
}

// WithTemplate selects the sport template whose drills become columns.
func WithTemplate(t schema.Template) Option {
	return func(g *Generator) {
		if len(t.Drills) > 0 {
			g.template = t
		}
	}
}

// WithRows sets how many data rows to generate.
func WithRows(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.rows = n
		}
	}
}

// WithCombinedNames emits a single "Player Name" column instead of split
// first and last columns.
func WithCombinedNames() Option {
	return func(g *Generator) {
		g.combinedNames = true
	}
}

// WithSynonymHeaders uses the header spellings organizers actually type:
// "#", "Division", units in parentheses.
func WithSynonymHeaders() Option {
	return func(g *Generator) {
		g.synonymHeaders = true
	}
}

// WithEuropeanDecimals formats measurements with a decimal comma.
func WithEuropeanDecimals() Option {
	return func(g *Generator) {
		g.europeanDecimals = true
	}
}

// WithMissingRate leaves roughly this fraction of score cells empty.
func WithMissingRate(rate float64) Option {
	return func(g *Generator) {
		if rate >= 0 && rate <= 1 {
			g.missingRate = rate
		}
	}
}

// WithDuplicateRate re-emits roughly this fraction of rows verbatim,
// simulating the copy-paste duplicates real uploads contain.
func WithDuplicateRate(rate float64) Option {
	return func(g *Generator) {
		if rate >= 0 && rate <= 1 {
			g.duplicateRate = rate
		}
	}
}

// New constructs a Generator with default configuration: 50 clean football
// rows, random seed.
func New(opts ...Option) *Generator {
	g := &Generator{
		faker:    gofakeit.New(0),
		template: schema.BaseTemplates()["football"],
		rows:     50,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Generate returns the header row and data rows for one roster file.
func (g *Generator) Generate() ([]string, [][]string) {
	headers := g.headers()

	rows := make([][]string, 0, g.rows)
	for i := 0; i < g.rows; i++ {
		if len(rows) > 0 && g.faker.Float64Range(0, 1) < g.duplicateRate {
			dup := make([]string, len(rows[len(rows)-1]))
			copy(dup, rows[len(rows)-1])
			rows = append(rows, dup)
			continue
		}
		rows = append(rows, g.row(len(headers)))
	}
	return headers, rows
}

// WriteCSV generates a roster and writes it as CSV.
func (g *Generator) WriteCSV(w io.Writer) error {
	headers, rows := g.Generate()

	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func (g *Generator) headers() []string {
	var headers []string
	if g.combinedNames {
		headers = append(headers, "Player Name")
	} else {
		headers = append(headers, "First Name", "Last Name")
	}
	if g.synonymHeaders {
		headers = append(headers, "#", "Division")
	} else {
		headers = append(headers, "Jersey", "Age Group")
	}
	for _, d := range g.template.Drills {
		label := d.Label
		if g.synonymHeaders && d.Unit != "" {
			label = fmt.Sprintf("%s (%s)", d.Label, d.Unit)
		}
		headers = append(headers, label)
	}
	return headers
}

func (g *Generator) row(width int) []string {
	row := make([]string, 0, width)

	first, last := g.faker.FirstName(), g.faker.LastName()
	if g.combinedNames {
		row = append(row, first+" "+last)
	} else {
		row = append(row, first, last)
	}
	row = append(row,
		fmt.Sprintf("%d", g.faker.Number(1, 99)),
		ageGroups[g.faker.Number(0, len(ageGroups)-1)],
	)

	for _, d := range g.template.Drills {
		if g.faker.Float64Range(0, 1) < g.missingRate {
			row = append(row, "")
			continue
		}
		row = append(row, g.value(d))
	}
	return row
}

func (g *Generator) value(d schema.DrillDefinition) string {
	lo, hi := 0.0, 100.0
	if d.MinValue != nil {
		lo = *d.MinValue
	}
	if d.MaxValue != nil {
		hi = *d.MaxValue
	}

	v := g.faker.Float64Range(lo, hi)
	s := fmt.Sprintf("%.2f", v)
	if g.europeanDecimals {
		s = strings.Replace(s, ".", ",", 1)
	}
	return s
}
