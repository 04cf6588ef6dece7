package schema

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Detection confidence levels.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// Thresholds for sport detection: how many headers must resolve to a
// template's drill keys.
const (
	detectHighMatches   = 3
	detectMediumMatches = 1
)

// eventConfig holds the per-event view over a base template.
type eventConfig struct {
	templateID   string
	customDrills []DrillDefinition
	disabledKeys map[string]bool
}

// Registry implements Provider from built-in templates plus per-event
// configuration. Event configuration is mutable behind a lock; the merged
// definition list handed out is always a fresh slice.
type Registry struct {
	mu              sync.RWMutex
	templates       map[string]Template
	events          map[string]*eventConfig
	defaultTemplate string
}

// Option applies a configuration option to the Registry.
type Option func(*Registry)

// WithDefaultTemplate sets the template used by events that never called
// ConfigureEvent.
func WithDefaultTemplate(id string) Option {
	return func(r *Registry) {
		if id != "" {
			r.defaultTemplate = id
		}
	}
}

// WithTemplate registers an additional base template.
func WithTemplate(t Template) Option {
	return func(r *Registry) {
		if t.ID != "" {
			r.templates[t.ID] = t
		}
	}
}

// NewRegistry creates a Registry seeded with the built-in sport templates.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		templates:       BaseTemplates(),
		events:          make(map[string]*eventConfig),
		defaultTemplate: "football",
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// ConfigureEvent binds an event to a base template. Calling it again with a
// different template re-bases the event; custom drills and disabled keys
// are kept.
func (r *Registry) ConfigureEvent(_ context.Context, eventID, templateID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.templates[templateID]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTemplate, templateID)
	}
	cfg := r.eventConfigLocked(eventID)
	cfg.templateID = templateID
	return nil
}

// AddCustomDrill appends an event-scoped drill. The key is identity-bearing
// and must not collide with an existing key for the event.
func (r *Registry) AddCustomDrill(ctx context.Context, eventID string, d DrillDefinition) error {
	if strings.TrimSpace(d.Key) == "" {
		return fmt.Errorf("%w: empty key", ErrInvalidDrill)
	}
	if strings.TrimSpace(d.Label) == "" {
		return fmt.Errorf("%w: empty label", ErrInvalidDrill)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cfg := r.eventConfigLocked(eventID)
	for _, existing := range r.mergedLocked(cfg) {
		if existing.Key == d.Key {
			return fmt.Errorf("%w: %s", ErrDuplicateDrillKey, d.Key)
		}
	}
	d.Active = true
	if d.Category == "" {
		d.Category = "custom"
	}
	cfg.customDrills = append(cfg.customDrills, d)
	return nil
}

// SetDrillActive toggles a drill on or off for an event. Keys never change;
// this is the only mutation allowed after creation.
func (r *Registry) SetDrillActive(_ context.Context, eventID, key string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cfg := r.eventConfigLocked(eventID)
	for i := range cfg.customDrills {
		if cfg.customDrills[i].Key == key {
			cfg.customDrills[i].Active = active
			return nil
		}
	}
	tmpl, ok := r.templates[r.templateIDLocked(cfg)]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTemplate, cfg.templateID)
	}
	for _, d := range tmpl.Drills {
		if d.Key == key {
			if active {
				delete(cfg.disabledKeys, key)
			} else {
				cfg.disabledKeys[key] = true
			}
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownDrill, key)
}

// DrillDefinitions returns the merged, ordered drill list for an event:
// base template drills first (inactive ones flagged, not removed), then
// custom drills. The slice is owned by the caller.
func (r *Registry) DrillDefinitions(_ context.Context, eventID string) ([]DrillDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cfg, ok := r.events[eventID]
	if !ok {
		cfg = &eventConfig{disabledKeys: map[string]bool{}}
	}
	if _, ok := r.templates[r.templateIDLocked(cfg)]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTemplate, cfg.templateID)
	}
	return r.mergedLocked(cfg), nil
}

// DetectSport guesses the base template for a set of source headers by
// counting headers that normalize to a template's drill keys or labels.
// Returns the template id and a confidence level.
func (r *Registry) DetectSport(headers []string) (string, string) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	normalized := make([]string, 0, len(headers))
	for _, h := range headers {
		normalized = append(normalized, normalizeToken(h))
	}

	best := r.defaultTemplate
	maxScore := 0
	for id, tmpl := range r.templates {
		score := 0
		keys := make(map[string]bool, len(tmpl.Drills)*2)
		for _, d := range tmpl.Drills {
			keys[normalizeToken(d.Key)] = true
			keys[normalizeToken(d.Label)] = true
		}
		for _, h := range normalized {
			if keys[h] {
				score++
			}
		}
		// Ties resolve to the lexically first template so detection is
		// deterministic across calls.
		if score > maxScore || (score == maxScore && score > 0 && id < best) {
			maxScore = score
			best = id
		}
	}

	switch {
	case maxScore >= detectHighMatches:
		return best, ConfidenceHigh
	case maxScore >= detectMediumMatches:
		return best, ConfidenceMedium
	default:
		return r.defaultTemplate, ConfidenceLow
	}
}

// Templates returns the registered base templates keyed by id.
func (r *Registry) Templates() map[string]Template {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]Template, len(r.templates))
	for id, t := range r.templates {
		out[id] = t
	}
	return out
}

func (r *Registry) eventConfigLocked(eventID string) *eventConfig {
	cfg, ok := r.events[eventID]
	if !ok {
		cfg = &eventConfig{disabledKeys: map[string]bool{}}
		r.events[eventID] = cfg
	}
	return cfg
}

func (r *Registry) templateIDLocked(cfg *eventConfig) string {
	if cfg.templateID != "" {
		return cfg.templateID
	}
	return r.defaultTemplate
}

func (r *Registry) mergedLocked(cfg *eventConfig) []DrillDefinition {
	tmpl := r.templates[r.templateIDLocked(cfg)]
	out := make([]DrillDefinition, 0, len(tmpl.Drills)+len(cfg.customDrills))
	for _, d := range tmpl.Drills {
		if cfg.disabledKeys[d.Key] {
			d.Active = false
		}
		out = append(out, d)
	}
	out = append(out, cfg.customDrills...)
	return out
}

// normalizeToken lowercases and collapses whitespace/punctuation runs into a
// single underscore, the same canonical form header matching uses.
func normalizeToken(s string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
		default:
			pendingSep = true
		}
	}
	return b.String()
}
