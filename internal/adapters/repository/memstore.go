package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/fieldhouse/combine/internal/domain/model"
	"github.com/fieldhouse/combine/pkg/metrics"
)

// MemStore is the in-memory Store. It holds deep copies behind a single
// lock; at roster scale contention is not a concern.
type MemStore struct {
	mu      sync.RWMutex
	closed  bool
	events  map[string]map[string]*model.Participant
	imports map[string][]model.ImportLogEntry
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		events:  make(map[string]map[string]*model.Participant),
		imports: make(map[string][]model.ImportLogEntry),
	}
}

func (s *MemStore) Get(_ context.Context, eventID, id string) (*model.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}
	p, ok := s.events[eventID][id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return p.Clone(), nil
}

func (s *MemStore) ListByEvent(_ context.Context, eventID string) ([]*model.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}
	byID := s.events[eventID]
	out := make([]*model.Participant, 0, len(byID))
	for _, p := range byID {
		out = append(out, p.Clone())
	}
	sortParticipants(out)
	return out, nil
}

func (s *MemStore) CountByEvent(_ context.Context, eventID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return 0, ErrStoreClosed
	}
	return len(s.events[eventID]), nil
}

func (s *MemStore) ApplyBatch(_ context.Context, eventID string, batch Batch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	byID, ok := s.events[eventID]
	if !ok {
		byID = make(map[string]*model.Participant)
		s.events[eventID] = byID
	}
	for _, p := range batch.Creates {
		byID[p.ID] = p.Clone()
	}
	for _, p := range batch.Updates {
		byID[p.ID] = p.Clone()
	}
	if batch.Log != nil {
		s.imports[eventID] = append(s.imports[eventID], *batch.Log)
	}

	metrics.RecordStoreBatchSize(batch.Size())
	return nil
}

func (s *MemStore) ImportLog(_ context.Context, eventID string) ([]model.ImportLogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}
	out := make([]model.ImportLogEntry, len(s.imports[eventID]))
	copy(out, s.imports[eventID])
	return out, nil
}

func (s *MemStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}
