package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// delimiter candidates for sniffing, in tie-break priority order.
var delimiters = []rune{',', '\t', ';', '|'}

// ParseCSV parses a comma-separated upload. Ragged rows are tolerated;
// missing trailing cells simply leave those fields absent.
func ParseCSV(r io.Reader) (*Document, error) {
	return parseSeparated(r, ',')
}

// ParseDelimited parses a text export whose delimiter is unknown. The
// delimiter is sniffed from the header line by counting candidate
// occurrences; commas win ties.
func ParseDelimited(r io.Reader) (*Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, ErrEmptyFile
	}

	header := string(raw)
	if i := strings.IndexByte(header, '\n'); i >= 0 {
		header = header[:i]
	}

	best := ','
	bestCount := 0
	for _, d := range delimiters {
		if n := strings.Count(header, string(d)); n > bestCount {
			best, bestCount = d, n
		}
	}

	return parseSeparated(strings.NewReader(string(raw)), best)
}

func parseSeparated(r io.Reader, comma rune) (*Document, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	grid, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse upload: %w", err)
	}
	if len(grid) == 0 {
		return nil, ErrEmptyFile
	}
	return tabulate(grid)
}
