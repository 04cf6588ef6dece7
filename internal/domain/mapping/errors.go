package mapping

import "errors"

// ErrNoHeaders indicates an upload whose header row is empty.
var ErrNoHeaders = errors.New("no headers to map")
