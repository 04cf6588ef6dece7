// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/fieldhouse/combine/internal/adapters/repository"
	service "github.com/fieldhouse/combine/internal/app"
	"github.com/fieldhouse/combine/internal/domain/mapping"
	"github.com/fieldhouse/combine/internal/domain/model"
	"github.com/fieldhouse/combine/internal/domain/ranking"
	"github.com/fieldhouse/combine/internal/domain/schema"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Import pipeline.
	ProposeMapping(ctx context.Context, eventID string, headers []string) (*service.MappingProposal, error)
	Import(ctx context.Context, req service.ImportRequest) (*service.ImportOutcome, error)
	ImportLog(ctx context.Context, eventID string) ([]model.ImportLogEntry, error)

	// Read operations.
	Rankings(ctx context.Context, eventID string, overrides map[string]float64, ageGroup string, limit int) ([]ranking.RankedParticipant, error)
	Stats(ctx context.Context, eventID string) (*ranking.EventStats, error)
	Participants(ctx context.Context, eventID string) ([]*model.Participant, error)
	Participant(ctx context.Context, eventID, id string) (*model.Participant, error)

	// Schema operations.
	Templates(ctx context.Context) map[string]schema.Template
	DrillDefinitions(ctx context.Context, eventID string) ([]schema.DrillDefinition, error)
	ConfigureEvent(ctx context.Context, eventID, templateID string) error
	AddCustomDrill(ctx context.Context, eventID string, d schema.DrillDefinition) error
	SetDrillActive(ctx context.Context, eventID, key string, active bool) error
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	templatesHandler *TemplatesHandler
	eventsHandler    *EventsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		templatesHandler: NewTemplatesHandler(deps),
		eventsHandler:    NewEventsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/templates", MetricsMiddleware(s.templatesHandler.HandleTemplates, "templates"))
	mux.HandleFunc("/events/", MetricsMiddleware(s.eventsHandler.HandleEvents, "events"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// statusFor maps service errors onto HTTP statuses.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, schema.ErrUnknownTemplate),
		errors.Is(err, schema.ErrUnknownDrill):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, service.ErrMissingEvent),
		errors.Is(err, service.ErrNoRows),
		errors.Is(err, service.ErrTooManyRows),
		errors.Is(err, mapping.ErrNoHeaders),
		errors.Is(err, schema.ErrInvalidDrill),
		errors.Is(err, schema.ErrDuplicateDrillKey),
		errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "bad_request"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// pathParts splits a request path below a prefix into its segments.
func pathParts(path, prefix string) []string {
	rest := strings.TrimPrefix(path, prefix)
	rest = strings.Trim(rest, "/")
	if rest == "" {
		return nil
	}
	return strings.Split(rest, "/")
}
