package service

import "errors"

var (
	// ErrMissingEvent indicates a request without an event id.
	ErrMissingEvent = errors.New("missing event id")
	// ErrNoRows indicates an upload with no data rows.
	ErrNoRows = errors.New("no rows to import")
	// ErrTooManyRows indicates an upload beyond the configured row cap.
	ErrTooManyRows = errors.New("too many rows")
)
