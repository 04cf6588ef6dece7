package identity

import (
	"fmt"
	"strings"
	"time"

	"github.com/fieldhouse/combine/internal/domain/model"
	"github.com/fieldhouse/combine/internal/domain/normalize"
)

// Mode selects how an import treats rows that do not match an existing
// participant.
type Mode string

const (
	// ModeFull creates missing participants and merges everything.
	ModeFull Mode = "full"
	// ModeScoresOnly only merges scores into existing participants; rows
	// that match nobody are rejected.
	ModeScoresOnly Mode = "scores_only"
)

// Rejection reasons.
const (
	ReasonMissingName        = "missing_name"
	ReasonInvalidRow         = "row_validation"
	ReasonDuplicateInFile    = "duplicate_in_file"
	ReasonUnknownParticipant = "unknown_participant"
)

// RejectedIdentity names the identity fields of a refused row so duplicate
// collisions can be explained without parsing prose.
type RejectedIdentity struct {
	First  string `json:"first"`
	Last   string `json:"last"`
	Number *int   `json:"number,omitempty"`
}

// Rejection records one row the import refused, with enough detail for the
// organizer to fix the source file. DuplicateOfRow and Identity are set for
// within-file duplicates.
type Rejection struct {
	RowIndex       int               `json:"row_index"`
	Reason         string            `json:"reason"`
	Details        string            `json:"details,omitempty"`
	DuplicateOfRow int               `json:"duplicate_of_row,omitempty"`
	Identity       *RejectedIdentity `json:"identity,omitempty"`
}

// Result is the staged outcome of resolving an upload. Creates and Updates
// hold fully merged participant snapshots ready for an atomic batch write;
// nothing has touched the store yet.
type Result struct {
	Creates       []*model.Participant
	Updates       []*model.Participant
	Rejections    []Rejection
	ScoresWritten map[string]int
}

// Resolve matches normalized rows against existing participants and stages
// creates, updates, and rejections. Rows are processed strictly in file
// order: the first occurrence of an identity key wins and later duplicates
// are rejected. Existing participants are matched by external id first,
// then by identity key.
func Resolve(
	eventID string,
	rows []normalize.Row,
	existingByKey map[string]*model.Participant,
	byExternalID map[string]*model.Participant,
	mode Mode,
	now time.Time,
) Result {
	res := Result{ScoresWritten: make(map[string]int)}

	seen := make(map[string]normalize.Row, len(rows))
	stagedCreates := make(map[string]*model.Participant, len(rows))
	stagedUpdates := make(map[string]*model.Participant)

	for _, row := range rows {
		if len(row.Errors) > 0 {
			res.Rejections = append(res.Rejections, Rejection{
				RowIndex: row.Index,
				Reason:   ReasonInvalidRow,
				Details:  strings.Join(row.Errors, "; "),
			})
			continue
		}
		if row.First == "" && row.Last == "" {
			res.Rejections = append(res.Rejections, Rejection{
				RowIndex: row.Index,
				Reason:   ReasonMissingName,
			})
			continue
		}

		key := Key(eventID, row.First, row.Last, row.Number)
		if first, dup := seen[key]; dup {
			res.Rejections = append(res.Rejections, Rejection{
				RowIndex:       row.Index,
				Reason:         ReasonDuplicateInFile,
				Details:        duplicateDetails(first, row),
				DuplicateOfRow: first.Index,
				Identity:       rejectedIdentity(row),
			})
			continue
		}
		seen[key] = row

		existing := lookupExisting(row, key, existingByKey, byExternalID)
		if existing == nil {
			if mode == ModeScoresOnly {
				res.Rejections = append(res.Rejections, Rejection{
					RowIndex: row.Index,
					Reason:   ReasonUnknownParticipant,
					Details:  fmt.Sprintf("no participant matches %q", row.DisplayName()),
				})
				continue
			}
			p := newParticipant(eventID, key, row, now)
			stagedCreates[key] = p
			res.Creates = append(res.Creates, p)
			tally(res.ScoresWritten, row.Scores)
			continue
		}

		// Two rows can reach the same record through different keys when one
		// matches by external id. Merge into the already staged copy so the
		// batch carries a single snapshot per participant.
		staged, ok := stagedUpdates[existing.ID]
		if !ok {
			staged = existing.Clone()
			stagedUpdates[existing.ID] = staged
			res.Updates = append(res.Updates, staged)
		}
		merge(staged, row, mode)
		tally(res.ScoresWritten, row.Scores)
	}

	return res
}

// lookupExisting finds the record a row refers to. External ids are
// authoritative when present; they let an organizer re-import a roster
// after fixing a misspelled name without forking the participant.
func lookupExisting(
	row normalize.Row,
	key string,
	existingByKey map[string]*model.Participant,
	byExternalID map[string]*model.Participant,
) *model.Participant {
	if row.ExternalID != "" {
		if p, ok := byExternalID[row.ExternalID]; ok {
			return p
		}
	}
	return existingByKey[key]
}

func newParticipant(eventID, key string, row normalize.Row, now time.Time) *model.Participant {
	p := &model.Participant{
		ID:         ID(key),
		EventID:    eventID,
		Name:       row.DisplayName(),
		First:      row.First,
		Last:       row.Last,
		AgeGroup:   row.AgeGroup,
		ExternalID: row.ExternalID,
		TeamName:   row.TeamName,
		Position:   row.Position,
		Scores:     make(map[string]float64, len(row.Scores)),
		CreatedAt:  now,
	}
	if row.Number != nil {
		n := *row.Number
		p.Number = &n
	}
	for k, v := range row.Scores {
		p.Scores[k] = v
	}
	return p
}

// merge folds a row into an existing snapshot. Scores merge per drill with
// the newest value winning. Full mode rewrites identity fields from the row,
// so re-importing a roster with a corrected name lands the fix on the record
// it matched (typically via external id); scores-only mode touches nothing
// but scores.
func merge(p *model.Participant, row normalize.Row, mode Mode) {
	if p.Scores == nil {
		p.Scores = make(map[string]float64, len(row.Scores))
	}
	for k, v := range row.Scores {
		p.Scores[k] = v
	}
	if mode == ModeScoresOnly {
		return
	}
	p.First = row.First
	p.Last = row.Last
	p.Name = row.DisplayName()
	if row.Number != nil {
		n := *row.Number
		p.Number = &n
	}
	if row.AgeGroup != "" {
		p.AgeGroup = row.AgeGroup
	}
	if row.TeamName != "" {
		p.TeamName = row.TeamName
	}
	if row.Position != "" {
		p.Position = row.Position
	}
	if row.ExternalID != "" && p.ExternalID == "" {
		p.ExternalID = row.ExternalID
	}
}

func rejectedIdentity(row normalize.Row) *RejectedIdentity {
	ri := &RejectedIdentity{First: row.First, Last: row.Last}
	if row.Number != nil {
		n := *row.Number
		ri.Number = &n
	}
	return ri
}

func duplicateDetails(first, dup normalize.Row) string {
	msg := fmt.Sprintf("row %d already claimed this identity", first.Index)
	if first.AgeGroup != dup.AgeGroup {
		msg += fmt.Sprintf(" (age groups differ: %q vs %q)", first.AgeGroup, dup.AgeGroup)
	}
	return msg
}

func tally(counts map[string]int, scores map[string]float64) {
	for k := range scores {
		counts[k]++
	}
}
