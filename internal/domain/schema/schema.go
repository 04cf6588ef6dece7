// Package schema supplies per-event drill definitions: a base sport template
// merged with event-scoped custom drills, minus keys the organizer disabled.
package schema

import "context"

// DrillDefinition describes one measured category configured for an event.
// Key is identity-bearing and never changes once assigned; only Active may
// be toggled after creation.
type DrillDefinition struct {
	Key           string   `json:"key"`
	Label         string   `json:"label"`
	Unit          string   `json:"unit"`
	Active        bool     `json:"active"`
	LowerIsBetter bool     `json:"lower_is_better"`
	Category      string   `json:"category"`
	MinValue      *float64 `json:"min_value,omitempty"`
	MaxValue      *float64 `json:"max_value,omitempty"`
	DefaultWeight float64  `json:"default_weight"`
}

// Template is a base drill set for one sport.
type Template struct {
	ID     string            `json:"id"`
	Sport  string            `json:"sport"`
	Name   string            `json:"name"`
	Drills []DrillDefinition `json:"drills"`
}

// Provider supplies the ordered drill definitions for an event. The result
// includes inactive drills (Active=false) so callers can still display
// historical scores; ranking consumers filter on Active themselves.
type Provider interface {
	DrillDefinitions(ctx context.Context, eventID string) ([]DrillDefinition, error)
}

// ActiveDrills filters a definition list down to the currently active ones,
// preserving order.
func ActiveDrills(defs []DrillDefinition) []DrillDefinition {
	out := make([]DrillDefinition, 0, len(defs))
	for _, d := range defs {
		if d.Active {
			out = append(out, d)
		}
	}
	return out
}

func floatPtr(v float64) *float64 { return &v }
