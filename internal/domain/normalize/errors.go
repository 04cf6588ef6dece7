package normalize

import "errors"

var (
	// ErrEmptyValue indicates a cell with no content after cleaning.
	ErrEmptyValue = errors.New("empty value")
	// ErrNotNumeric indicates a cell that cannot be coerced to a number.
	ErrNotNumeric = errors.New("not a numeric value")
	// ErrNotInteger indicates a jersey number cell with a fractional part.
	ErrNotInteger = errors.New("not an integer value")
)
