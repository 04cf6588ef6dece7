// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// handleStats handles GET /events/{id}/stats requests.
func (h *EventsHandler) handleStats(w http.ResponseWriter, r *http.Request, eventID string, rest []string) {
	const op = "api.event_stats"

	if len(rest) != 0 || r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	stats, err := h.deps.Stats(r.Context(), eventID)
	if err != nil {
		status, code := statusFor(err)
		writeError(w, status, code, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
