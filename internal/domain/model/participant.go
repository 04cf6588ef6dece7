// Package model contains domain models passed between layers.
package model

import "time"

// RawRow is one uploaded line: source header -> raw cell value.
// Rows are ephemeral; they exist only during a single import call.
type RawRow map[string]string

// Participant is the durable record owned by an event. It is created on the
// first import that resolves its identity key and merged in place afterwards.
type Participant struct {
	ID         string             `json:"id"`
	EventID    string             `json:"event_id"`
	Name       string             `json:"name"`
	First      string             `json:"first"`
	Last       string             `json:"last"`
	Number     *int               `json:"number"`
	AgeGroup   string             `json:"age_group,omitempty"`
	ExternalID string             `json:"external_id,omitempty"`
	TeamName   string             `json:"team_name,omitempty"`
	Position   string             `json:"position,omitempty"`
	Scores     map[string]float64 `json:"scores"`
	CreatedAt  time.Time          `json:"created_at"`
}

// Clone returns a deep copy so store snapshots never alias caller state.
func (p *Participant) Clone() *Participant {
	if p == nil {
		return nil
	}
	cp := *p
	if p.Number != nil {
		n := *p.Number
		cp.Number = &n
	}
	cp.Scores = make(map[string]float64, len(p.Scores))
	for k, v := range p.Scores {
		cp.Scores[k] = v
	}
	return &cp
}

// ImportLogEntry is the audit record persisted per committed import.
type ImportLogEntry struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Timestamp time.Time `json:"timestamp"`
	Method    string    `json:"method,omitempty"`
	Filename  string    `json:"filename,omitempty"`
	Created   int       `json:"created"`
	Updated   int       `json:"updated"`
	Rejected  int       `json:"rejected"`
}
