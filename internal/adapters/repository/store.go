// Package repository persists participants and import audit logs. Two
// implementations exist: an in-memory store for tests and single-node use,
// and a Redis-backed store for deployments that survive restarts.
package repository

import (
	"context"
	"sort"

	"github.com/fieldhouse/combine/internal/domain/model"
)

// Batch is one atomic import write: every create, every update, and the
// audit log entry land together or not at all.
type Batch struct {
	Creates []*model.Participant
	Updates []*model.Participant
	Log     *model.ImportLogEntry
}

// Size returns the number of participant writes in the batch.
func (b Batch) Size() int {
	return len(b.Creates) + len(b.Updates)
}

// Store is the persistence surface the import and ranking services depend
// on. Implementations must return deep copies; callers own what they get.
type Store interface {
	// Get fetches one participant by id.
	Get(ctx context.Context, eventID, id string) (*model.Participant, error)
	// ListByEvent returns every participant of an event in stable id order.
	ListByEvent(ctx context.Context, eventID string) ([]*model.Participant, error)
	// CountByEvent returns the participant count for an event.
	CountByEvent(ctx context.Context, eventID string) (int, error)
	// ApplyBatch writes an import batch atomically.
	ApplyBatch(ctx context.Context, eventID string, batch Batch) error
	// ImportLog returns the event's import audit entries, oldest first.
	ImportLog(ctx context.Context, eventID string) ([]model.ImportLogEntry, error)
	// Close releases any underlying connections.
	Close() error
}

func sortParticipants(ps []*model.Participant) {
	sort.Slice(ps, func(i, j int) bool { return ps[i].ID < ps[j].ID })
}
