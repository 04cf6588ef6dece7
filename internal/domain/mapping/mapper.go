// Package mapping proposes a column mapping from uploaded spreadsheet
// headers to identity fields and drill keys. The proposal is advisory:
// callers may override any assignment before running an import.
package mapping

import (
	"strings"

	"github.com/fieldhouse/combine/internal/domain/schema"
)

// Match confidence scores. Exact header matches outrank fuzzy containment
// matches so the organizer sees which assignments to double-check.
const (
	ScoreExact = 90
	ScoreFuzzy = 60
)

// Confidence labels derived from match scores; callers never need to know
// the score convention.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// Assignment binds one source header to one target field or drill key.
type Assignment struct {
	Header     string `json:"header"`
	Target     string `json:"target"`
	Score      int    `json:"score"`
	Confidence string `json:"confidence"`
}

// Proposal is the full mapping suggestion for an upload. Assignments appear
// in source header order; headers that matched nothing land in Unmapped.
type Proposal struct {
	Assignments []Assignment `json:"assignments"`
	Unmapped    []string     `json:"unmapped"`
}

// TargetFor returns the proposed target for a source header.
func (p Proposal) TargetFor(header string) (string, bool) {
	for _, a := range p.Assignments {
		if a.Header == header {
			return a.Target, true
		}
	}
	return "", false
}

// FieldMapping flattens the proposal into header -> target form, the shape
// imports consume.
func (p Proposal) FieldMapping() map[string]string {
	out := make(map[string]string, len(p.Assignments))
	for _, a := range p.Assignments {
		out[a.Header] = a.Target
	}
	return out
}

// Propose maps source headers onto identity fields and the event's drill
// keys. Each header is consumed at most once and each target claimed at
// most once; earlier headers win ties. Matching order is identity synonyms,
// then exact drill matches, then fuzzy drill matches.
func Propose(headers []string, drills []schema.DrillDefinition) (Proposal, error) {
	if len(headers) == 0 {
		return Proposal{}, ErrNoHeaders
	}

	type column struct {
		raw   string
		token string
	}
	cols := make([]column, 0, len(headers))
	for _, h := range headers {
		cols = append(cols, column{raw: h, token: normalizeHeader(h)})
	}

	assigned := make(map[int]Assignment, len(cols))
	claimed := make(map[string]bool)

	claim := func(i int, target string, score int) {
		assigned[i] = Assignment{
			Header:     cols[i].raw,
			Target:     target,
			Score:      score,
			Confidence: confidenceFor(score),
		}
		claimed[target] = true
	}

	// Identity fields first so "Vertical Jump" can never shadow "Name".
	for i, c := range cols {
		if _, done := assigned[i]; done {
			continue
		}
		target, ok := identitySynonyms[c.token]
		if !ok && strings.TrimSpace(c.raw) == "#" {
			target, ok = FieldNumber, true
		}
		if !ok || claimed[target] {
			continue
		}
		if target == FieldNumber && mentionsName(c.token) {
			continue
		}
		claim(i, target, ScoreExact)
	}

	// Second identity pass: segment containment, e.g. "Jersey No." or
	// "Athlete First". FieldName goes last; "name" appears inside too many
	// other headers to let it claim early.
	for _, target := range []string{
		FieldFirst, FieldLast, FieldNumber, FieldAgeGroup,
		FieldExternalID, FieldTeamName, FieldPosition, FieldName,
	} {
		if claimed[target] {
			continue
		}
		for i, c := range cols {
			if _, done := assigned[i]; done {
				continue
			}
			if !segmentMatchesField(c.token, target) {
				continue
			}
			if target == FieldNumber && (mentionsName(c.token) || strings.Contains(c.token, "player")) {
				continue
			}
			claim(i, target, ScoreFuzzy)
			break
		}
	}

	active := schema.ActiveDrills(drills)

	for i, c := range cols {
		if _, done := assigned[i]; done {
			continue
		}
		for _, d := range active {
			if claimed[d.Key] {
				continue
			}
			if c.token == normalizeHeader(d.Key) || c.token == normalizeHeader(d.Label) {
				claim(i, d.Key, ScoreExact)
				break
			}
		}
	}

	for i, c := range cols {
		if _, done := assigned[i]; done {
			continue
		}
		for _, d := range active {
			if claimed[d.Key] {
				continue
			}
			if fuzzyMatch(c.token, normalizeHeader(d.Key)) || fuzzyMatch(c.token, normalizeHeader(d.Label)) {
				claim(i, d.Key, ScoreFuzzy)
				break
			}
		}
	}

	p := Proposal{Assignments: make([]Assignment, 0, len(assigned))}
	for i, c := range cols {
		if a, ok := assigned[i]; ok {
			p.Assignments = append(p.Assignments, a)
		} else {
			p.Unmapped = append(p.Unmapped, c.raw)
		}
	}
	return p, nil
}

func confidenceFor(score int) string {
	switch {
	case score >= ScoreExact:
		return ConfidenceHigh
	case score >= ScoreFuzzy:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// mentionsName guards the jersey number target: a header like "Player Name"
// contains a number synonym substring but is never a number column.
func mentionsName(token string) bool {
	return strings.Contains(token, "name")
}

// segmentMatchesField reports whether any underscore-separated segment of
// token is a synonym for the given identity field. Whole segments only;
// "no" must not match inside "normalized".
func segmentMatchesField(token, field string) bool {
	for _, seg := range strings.Split(token, "_") {
		if identitySynonyms[seg] == field {
			return true
		}
	}
	return false
}

// fuzzyMatch accepts containment in either direction. Tokens shorter than
// three runes match too aggressively to trust.
func fuzzyMatch(a, b string) bool {
	if len(a) < 3 || len(b) < 3 {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// normalizeHeader lowercases a header, strips parenthesized units, and
// collapses whitespace and punctuation runs into single underscores.
// "40-Yard Dash (sec)" and "40_yard_dash" normalize identically.
func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexByte(s, '('); i >= 0 {
		if j := strings.IndexByte(s[i:], ')'); j >= 0 {
			s = s[:i] + s[i+j+1:]
		}
	}

	var b strings.Builder
	pendingSep := false
	for _, r := range s {
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
