// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// EventsHandler routes everything under /events/{eventID}/.
type EventsHandler struct {
	deps Dependencies
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(deps Dependencies) *EventsHandler {
	return &EventsHandler{deps: deps}
}

// HandleEvents dispatches /events/{eventID}/{resource...} requests.
func (h *EventsHandler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	const op = "api.events"

	parts := pathParts(r.URL.Path, "/events/")
	if len(parts) < 2 {
		writeError(w, http.StatusNotFound, "not_found", NewKind(op, ErrBadRequest))
		return
	}
	eventID := parts[0]
	resource := parts[1]
	rest := parts[2:]

	switch resource {
	case "schema":
		h.handleSchema(w, r, eventID, rest)
	case "imports":
		h.handleImports(w, r, eventID, rest)
	case "participants":
		h.handleParticipants(w, r, eventID, rest)
	case "rankings":
		h.handleRankings(w, r, eventID, rest)
	case "stats":
		h.handleStats(w, r, eventID, rest)
	default:
		http.NotFound(w, r)
	}
}
