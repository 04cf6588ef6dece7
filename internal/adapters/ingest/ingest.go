// Package ingest parses uploaded roster files into raw rows. It accepts
// CSV, delimiter-sniffed text exports, and Excel workbooks; everything
// downstream works on headers plus string cells and never sees the file
// format.
package ingest

import (
	"strings"

	"github.com/fieldhouse/combine/internal/domain/model"
)

// Document is a parsed upload: the header row plus every data row keyed by
// header. Cells keep their raw string form; cleaning happens later.
type Document struct {
	Headers []string
	Rows    []model.RawRow
}

// tabulate builds a Document from a rectangular-ish cell grid. The first
// non-empty row is the header row. Columns with a blank header and repeats
// of an already seen header are dropped; fully empty data rows are skipped.
func tabulate(grid [][]string) (*Document, error) {
	var headers []string
	start := 0
	for i, row := range grid {
		if !rowEmpty(row) {
			headers = row
			start = i + 1
			break
		}
	}
	if headers == nil {
		return nil, ErrNoHeaderRow
	}

	keep := make([]int, 0, len(headers))
	seen := make(map[string]bool, len(headers))
	doc := &Document{}
	for i, h := range headers {
		h = strings.TrimSpace(stripBOM(h))
		if h == "" || seen[h] {
			continue
		}
		seen[h] = true
		headers[i] = h
		keep = append(keep, i)
		doc.Headers = append(doc.Headers, h)
	}
	if len(doc.Headers) == 0 {
		return nil, ErrNoHeaderRow
	}

	for _, row := range grid[start:] {
		if rowEmpty(row) {
			continue
		}
		rr := make(model.RawRow, len(keep))
		for _, col := range keep {
			if col < len(row) {
				rr[headers[col]] = row[col]
			}
		}
		doc.Rows = append(doc.Rows, rr)
	}
	return doc, nil
}

func rowEmpty(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func stripBOM(s string) string {
	return strings.TrimPrefix(s, "\ufeff")
}
