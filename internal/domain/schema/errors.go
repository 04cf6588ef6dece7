package schema

import "errors"

var (
	// ErrUnknownTemplate indicates a template id not present in the registry.
	ErrUnknownTemplate = errors.New("unknown template")
	// ErrUnknownDrill indicates a drill key not configured for the event.
	ErrUnknownDrill = errors.New("unknown drill")
	// ErrInvalidDrill indicates a custom drill definition missing required fields.
	ErrInvalidDrill = errors.New("invalid drill definition")
	// ErrDuplicateDrillKey indicates a custom drill key that already exists for the event.
	ErrDuplicateDrillKey = errors.New("duplicate drill key")
)
