package ingest

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// previewRows is how many rows a sheet listing includes per sheet.
const previewRows = 3

// SheetInfo describes one worksheet so the organizer can pick the right
// one before committing an import.
type SheetInfo struct {
	Name    string     `json:"name"`
	Rows    int        `json:"rows"`
	Preview [][]string `json:"preview"`
}

// ListSheets opens a workbook and returns every sheet with a short preview.
func ListSheets(r io.Reader) ([]SheetInfo, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	var out []SheetInfo
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", name, err)
		}
		info := SheetInfo{Name: name, Rows: len(rows)}
		for i := 0; i < len(rows) && i < previewRows; i++ {
			info.Preview = append(info.Preview, rows[i])
		}
		out = append(out, info)
	}
	return out, nil
}

// ParseExcel parses one sheet of a workbook. An empty sheet name selects
// the first sheet.
func ParseExcel(r io.Reader, sheet string) (*Document, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	names := f.GetSheetList()
	if len(names) == 0 {
		return nil, ErrEmptyFile
	}
	if sheet == "" {
		sheet = names[0]
	} else if !contains(names, sheet) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSheet, sheet)
	}

	grid, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(grid) == 0 {
		return nil, ErrEmptyFile
	}
	return tabulate(grid)
}

func contains(names []string, want string) bool {
	for _, n := range names {
		if n == want {
			return true
		}
	}
	return false
}
