// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// handleParticipants handles GET /events/{id}/participants and
// GET /events/{id}/participants/{participantID}.
func (h *EventsHandler) handleParticipants(w http.ResponseWriter, r *http.Request, eventID string, rest []string) {
	const op = "api.event_participants"

	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	switch len(rest) {
	case 0:
		ps, err := h.deps.Participants(r.Context(), eventID)
		if err != nil {
			status, code := statusFor(err)
			writeError(w, status, code, Wrap(op, err))
			return
		}
		writeJSON(w, http.StatusOK, ps)

	case 1:
		p, err := h.deps.Participant(r.Context(), eventID, rest[0])
		if err != nil {
			status, code := statusFor(err)
			writeError(w, status, code, Wrap(op, err))
			return
		}
		writeJSON(w, http.StatusOK, p)

	default:
		http.NotFound(w, r)
	}
}
