package ingest

import "errors"

var (
	// ErrNoHeaderRow indicates a file with no usable header row.
	ErrNoHeaderRow = errors.New("no header row")
	// ErrEmptyFile indicates a file with no content at all.
	ErrEmptyFile = errors.New("empty file")
	// ErrUnknownSheet indicates a sheet name not present in the workbook.
	ErrUnknownSheet = errors.New("unknown sheet")
)
