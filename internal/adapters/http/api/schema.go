// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/fieldhouse/combine/internal/domain/schema"
)

// TemplatesHandler serves the built-in sport templates.
type TemplatesHandler struct {
	deps Dependencies
}

// NewTemplatesHandler creates a new templates handler.
func NewTemplatesHandler(deps Dependencies) *TemplatesHandler {
	return &TemplatesHandler{deps: deps}
}

// HandleTemplates handles GET /templates requests.
func (h *TemplatesHandler) HandleTemplates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Templates(r.Context()))
}

type configureEventRequest struct {
	TemplateID string `json:"template_id"`
}

type drillActiveRequest struct {
	Active bool `json:"active"`
}

// handleSchema covers the event schema surface:
//
//	GET   /events/{id}/schema              merged drill list
//	PUT   /events/{id}/schema              bind a base template
//	POST  /events/{id}/schema/drills       add a custom drill
//	PATCH /events/{id}/schema/drills/{key} toggle a drill
func (h *EventsHandler) handleSchema(w http.ResponseWriter, r *http.Request, eventID string, rest []string) {
	const op = "api.event_schema"

	switch {
	case len(rest) == 0 && r.Method == http.MethodGet:
		drills, err := h.deps.DrillDefinitions(r.Context(), eventID)
		if err != nil {
			status, code := statusFor(err)
			writeError(w, status, code, Wrap(op, err))
			return
		}
		writeJSON(w, http.StatusOK, drills)

	case len(rest) == 0 && r.Method == http.MethodPut:
		var req configureEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		if err := h.deps.ConfigureEvent(r.Context(), eventID, req.TemplateID); err != nil {
			status, code := statusFor(err)
			writeError(w, status, code, Wrap(op, err))
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "configured"})

	case len(rest) == 1 && rest[0] == "drills" && r.Method == http.MethodPost:
		var d schema.DrillDefinition
		if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		if err := h.deps.AddCustomDrill(r.Context(), eventID, d); err != nil {
			status, code := statusFor(err)
			writeError(w, status, code, Wrap(op, err))
			return
		}
		writeJSON(w, http.StatusCreated, d)

	case len(rest) == 2 && rest[0] == "drills" && r.Method == http.MethodPatch:
		var req drillActiveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		if err := h.deps.SetDrillActive(r.Context(), eventID, rest[1], req.Active); err != nil {
			status, code := statusFor(err)
			writeError(w, status, code, Wrap(op, err))
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"key": rest[1], "active": req.Active})

	default:
		http.NotFound(w, r)
	}
}
