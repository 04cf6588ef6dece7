package api

import "fmt"

// Error helpers tag failures with the operation that produced them so log
// lines and error payloads say where to look.

// Wrap annotates err with an operation name.
func Wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// NewKind builds an operation-tagged error from a sentinel kind.
func NewKind(op string, kind error) error {
	return fmt.Errorf("%s: %w", op, kind)
}

// WrapKind annotates err with both an operation and a sentinel kind, so
// callers can match the kind while logs keep the cause.
func WrapKind(op string, kind, err error) error {
	return fmt.Errorf("%s: %w: %w", op, kind, err)
}
