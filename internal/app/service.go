// Package service provides the core roster service that implements the
// dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fieldhouse/combine/internal/adapters/repository"
	"github.com/fieldhouse/combine/internal/config"
	"github.com/fieldhouse/combine/internal/domain/identity"
	"github.com/fieldhouse/combine/internal/domain/mapping"
	"github.com/fieldhouse/combine/internal/domain/model"
	"github.com/fieldhouse/combine/internal/domain/normalize"
	"github.com/fieldhouse/combine/internal/domain/ranking"
	"github.com/fieldhouse/combine/internal/domain/schema"
	"github.com/fieldhouse/combine/pkg/logger"
	"github.com/fieldhouse/combine/pkg/metrics"
)

// MappingProposal is the preview phase of a two-phase import: the proposed
// column mapping plus the detected sport, before anything is written.
type MappingProposal struct {
	Proposal   mapping.Proposal         `json:"proposal"`
	Sport      string                   `json:"sport"`
	Confidence string                   `json:"confidence"`
	Drills     []schema.DrillDefinition `json:"drills"`
}

// ImportRequest is one upload ready to commit. Mapping may be nil, in
// which case the proposal from the preview phase is recomputed.
type ImportRequest struct {
	EventID  string
	Headers  []string
	Rows     []model.RawRow
	Mapping  map[string]string
	Mode     identity.Mode
	Filename string
	Method   string
}

// ImportOutcome reports what one committed import did.
type ImportOutcome struct {
	ImportID      string               `json:"import_id"`
	Created       int                  `json:"created"`
	Updated       int                  `json:"updated"`
	Rejections    []identity.Rejection `json:"rejections"`
	ScoresWritten map[string]int       `json:"scores_written_by_drill"`
	ScoresTotal   int                  `json:"scores_written_total"`
	Warnings      []string             `json:"warnings,omitempty"`
}

// Service wires the import pipeline, the ranking engine, and the schema
// registry over one participant store.
type Service struct {
	mu sync.RWMutex

	store   repository.Store
	schemas *schema.Registry

	storeBackend    string
	redisAddr       string
	redisDB         int
	maxImportRows   int
	chunkSize       int
	maxRankingLimit int
	defaultTemplate string

	started bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore injects a participant store, bypassing backend construction.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithSchemaRegistry injects a pre-configured schema registry.
func WithSchemaRegistry(r *schema.Registry) Option {
	return func(s *Service) {
		if r != nil {
			s.schemas = r
		}
	}
}

// WithStoreBackend selects the store built on Start.
func WithStoreBackend(backend, redisAddr string, redisDB int) Option {
	return func(s *Service) {
		if backend != "" {
			s.storeBackend = backend
		}
		if redisAddr != "" {
			s.redisAddr = redisAddr
		}
		s.redisDB = redisDB
	}
}

// WithMaxImportRows caps how many rows a single upload may carry.
func WithMaxImportRows(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxImportRows = n
		}
	}
}

// WithChunkSize sets the store read chunk size.
func WithChunkSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.chunkSize = n
		}
	}
}

// WithMaxRankingLimit caps the limit parameter on ranking queries.
func WithMaxRankingLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxRankingLimit = n
		}
	}
}

// WithDefaultTemplate sets the sport template for unconfigured events.
func WithDefaultTemplate(id string) Option {
	return func(s *Service) {
		if id != "" {
			s.defaultTemplate = id
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		storeBackend:    config.StoreMemory,
		redisAddr:       "localhost:6379",
		maxImportRows:   5000,
		chunkSize:       400,
		maxRankingLimit: 500,
		defaultTemplate: "football",
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the store and schema registry.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting roster service...")

	if s.schemas == nil {
		s.schemas = schema.NewRegistry(schema.WithDefaultTemplate(s.defaultTemplate))
	}

	if s.store == nil {
		switch s.storeBackend {
		case config.StoreRedis:
			store, err := repository.NewRedisStore(ctx, s.redisAddr, s.redisDB,
				repository.WithChunkSize(s.chunkSize),
			)
			if err != nil {
				return fmt.Errorf("connect redis store: %w", err)
			}
			s.store = store
			s.logger.Info(ctx, "using redis store", logger.String("addr", s.redisAddr))
		default:
			s.store = repository.NewMemStore()
			s.logger.Info(ctx, "using in-memory store")
		}
	}

	s.started = true
	s.logger.Info(ctx, "roster service started",
		logger.Int("maxImportRows", s.maxImportRows),
		logger.Int("maxRankingLimit", s.maxRankingLimit),
		logger.String("defaultTemplate", s.defaultTemplate),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping roster service...")

	if s.store != nil {
		_ = s.store.Close()
	}

	s.started = false
	s.logger.Info(context.Background(), "roster service stopped")
}

// ProposeMapping previews an upload: sport detection plus a scored column
// mapping against the event's drills. Nothing is written.
func (s *Service) ProposeMapping(ctx context.Context, eventID string, headers []string) (*MappingProposal, error) {
	drills, err := s.schemas.DrillDefinitions(ctx, eventID)
	if err != nil {
		return nil, err
	}

	proposal, err := mapping.Propose(headers, drills)
	if err != nil {
		return nil, err
	}
	sport, confidence := s.schemas.DetectSport(headers)

	metrics.RecordMappingProposed()
	s.logger.Debug(ctx, "mapping proposed",
		logger.String("eventID", eventID),
		logger.String("sport", sport),
		logger.String("confidence", confidence),
		logger.Int("mapped", len(proposal.Assignments)),
		logger.Int("unmapped", len(proposal.Unmapped)),
	)

	return &MappingProposal{
		Proposal:   proposal,
		Sport:      sport,
		Confidence: confidence,
		Drills:     drills,
	}, nil
}

// Import commits an upload: rows are normalized under the mapping,
// resolved against existing participants, and written in one atomic batch
// together with the audit log entry.
func (s *Service) Import(ctx context.Context, req ImportRequest) (*ImportOutcome, error) {
	start := time.Now()
	metrics.RecordImportStarted()

	outcome, err := s.runImport(ctx, req)
	if err != nil {
		metrics.RecordImportFailed()
		return nil, err
	}

	metrics.RecordImportCommitted()
	metrics.RecordImportDuration(float64(time.Since(start).Microseconds()) / 1000.0)
	return outcome, nil
}

func (s *Service) runImport(ctx context.Context, req ImportRequest) (*ImportOutcome, error) {
	if req.EventID == "" {
		return nil, ErrMissingEvent
	}
	if len(req.Rows) == 0 {
		return nil, ErrNoRows
	}
	if len(req.Rows) > s.maxImportRows {
		return nil, fmt.Errorf("%w: %d rows, limit %d", ErrTooManyRows, len(req.Rows), s.maxImportRows)
	}
	mode := req.Mode
	if mode == "" {
		mode = identity.ModeFull
	}

	drills, err := s.schemas.DrillDefinitions(ctx, req.EventID)
	if err != nil {
		return nil, err
	}

	fieldMapping := req.Mapping
	if fieldMapping == nil {
		proposal, err := mapping.Propose(req.Headers, drills)
		if err != nil {
			return nil, err
		}
		fieldMapping = proposal.FieldMapping()
	}

	rows := normalize.Rows(req.Rows, fieldMapping, drills)

	existing, err := s.store.ListByEvent(ctx, req.EventID)
	if err != nil {
		return nil, fmt.Errorf("load existing participants: %w", err)
	}
	byKey := make(map[string]*model.Participant, len(existing))
	byExternalID := make(map[string]*model.Participant)
	for _, p := range existing {
		byKey[identity.Key(p.EventID, p.First, p.Last, p.Number)] = p
		if p.ExternalID != "" {
			byExternalID[p.ExternalID] = p
		}
	}

	res := identity.Resolve(req.EventID, rows, byKey, byExternalID, mode, time.Now().UTC())

	importID := uuid.NewString()
	batch := repository.Batch{
		Creates: res.Creates,
		Updates: res.Updates,
		Log: &model.ImportLogEntry{
			ID:        importID,
			EventID:   req.EventID,
			Timestamp: time.Now().UTC(),
			Method:    req.Method,
			Filename:  req.Filename,
			Created:   len(res.Creates),
			Updated:   len(res.Updates),
			Rejected:  len(res.Rejections),
		},
	}
	if err := s.store.ApplyBatch(ctx, req.EventID, batch); err != nil {
		return nil, fmt.Errorf("apply import batch: %w", err)
	}

	metrics.RecordRowsCreated(len(res.Creates))
	metrics.RecordRowsUpdated(len(res.Updates))
	for _, rej := range res.Rejections {
		metrics.RecordRowRejected(rej.Reason)
	}
	for drill, n := range res.ScoresWritten {
		metrics.RecordScoresWritten(drill, n)
	}
	if count, err := s.store.CountByEvent(ctx, req.EventID); err == nil {
		metrics.UpdateTotalParticipants(count)
	}

	outcome := &ImportOutcome{
		ImportID:      importID,
		Created:       len(res.Creates),
		Updated:       len(res.Updates),
		Rejections:    res.Rejections,
		ScoresWritten: res.ScoresWritten,
	}
	for _, n := range res.ScoresWritten {
		outcome.ScoresTotal += n
	}
	for _, row := range rows {
		outcome.Warnings = append(outcome.Warnings, row.Warnings...)
	}

	s.logger.Info(ctx, "import committed",
		logger.String("eventID", req.EventID),
		logger.String("importID", importID),
		logger.Int("created", outcome.Created),
		logger.Int("updated", outcome.Updated),
		logger.Int("rejected", len(outcome.Rejections)),
	)

	return outcome, nil
}

// Rankings computes the weighted leaderboard for an event. Weight
// overrides apply per drill key; ageGroup filters the cohort before
// normalization so ranges reflect the filtered group.
func (s *Service) Rankings(
	ctx context.Context,
	eventID string,
	overrides map[string]float64,
	ageGroup string,
	limit int,
) ([]ranking.RankedParticipant, error) {
	start := time.Now()

	drills, err := s.schemas.DrillDefinitions(ctx, eventID)
	if err != nil {
		return nil, err
	}

	participants, err := s.store.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("load participants: %w", err)
	}
	if ageGroup != "" {
		filtered := participants[:0]
		for _, p := range participants {
			if p.AgeGroup == ageGroup {
				filtered = append(filtered, p)
			}
		}
		participants = filtered
	}

	ranked, err := ranking.Rank(participants, drills, overrides)
	if err != nil {
		return nil, err
	}

	if limit <= 0 || limit > s.maxRankingLimit {
		limit = s.maxRankingLimit
	}
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	metrics.RecordRankingComputed()
	metrics.RecordRankingDuration(float64(time.Since(start).Microseconds()) / 1000.0)
	return ranked, nil
}

// Stats computes the aggregate dashboard view for an event.
func (s *Service) Stats(ctx context.Context, eventID string) (*ranking.EventStats, error) {
	drills, err := s.schemas.DrillDefinitions(ctx, eventID)
	if err != nil {
		return nil, err
	}
	participants, err := s.store.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("load participants: %w", err)
	}
	stats := ranking.Stats(participants, drills)
	return &stats, nil
}

// Participants lists every participant of an event.
func (s *Service) Participants(ctx context.Context, eventID string) ([]*model.Participant, error) {
	return s.store.ListByEvent(ctx, eventID)
}

// Participant fetches one participant by id.
func (s *Service) Participant(ctx context.Context, eventID, id string) (*model.Participant, error) {
	return s.store.Get(ctx, eventID, id)
}

// ImportLog returns the event's import audit entries, oldest first.
func (s *Service) ImportLog(ctx context.Context, eventID string) ([]model.ImportLogEntry, error) {
	return s.store.ImportLog(ctx, eventID)
}

// Templates returns the registered base sport templates.
func (s *Service) Templates(_ context.Context) map[string]schema.Template {
	return s.schemas.Templates()
}

// DrillDefinitions returns the merged drill list for an event.
func (s *Service) DrillDefinitions(ctx context.Context, eventID string) ([]schema.DrillDefinition, error) {
	return s.schemas.DrillDefinitions(ctx, eventID)
}

// ConfigureEvent binds an event to a base template.
func (s *Service) ConfigureEvent(ctx context.Context, eventID, templateID string) error {
	return s.schemas.ConfigureEvent(ctx, eventID, templateID)
}

// AddCustomDrill adds an event-scoped drill.
func (s *Service) AddCustomDrill(ctx context.Context, eventID string, d schema.DrillDefinition) error {
	return s.schemas.AddCustomDrill(ctx, eventID, d)
}

// SetDrillActive toggles a drill for an event.
func (s *Service) SetDrillActive(ctx context.Context, eventID, key string, active bool) error {
	return s.schemas.SetDrillActive(ctx, eventID, key, active)
}
