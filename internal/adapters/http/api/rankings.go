// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strconv"
	"strings"
)

// weightParamPrefix marks per-drill weight override query parameters,
// e.g. ?weight_40m_dash=0.5.
const weightParamPrefix = "weight_"

// handleRankings handles GET /events/{id}/rankings requests. Optional
// query parameters: weight_{drill}=N overrides, age_group, limit.
func (h *EventsHandler) handleRankings(w http.ResponseWriter, r *http.Request, eventID string, rest []string) {
	const op = "api.event_rankings"

	if len(rest) != 0 || r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	query := r.URL.Query()

	limit := 0
	if raw := query.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		limit = n
	}

	var overrides map[string]float64
	for key, vals := range query {
		if !strings.HasPrefix(key, weightParamPrefix) || len(vals) == 0 {
			continue
		}
		weight, err := strconv.ParseFloat(vals[0], 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		if overrides == nil {
			overrides = make(map[string]float64)
		}
		overrides[strings.TrimPrefix(key, weightParamPrefix)] = weight
	}

	ranked, err := h.deps.Rankings(r.Context(), eventID, overrides, query.Get("age_group"), limit)
	if err != nil {
		status, code := statusFor(err)
		writeError(w, status, code, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, ranked)
}
