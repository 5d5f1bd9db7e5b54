package handlers

import (
	"net/http"

	"choretracker/internal/recurrence"
)

// CompletedHistory lists every task that has been completed at least once,
// grouped by recurrence and newest completion first.
func (h *Handlers) CompletedHistory(w http.ResponseWriter, r *http.Request) {
	ref, err := h.parseRef(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid at")
		return
	}

	respondJSON(w, http.StatusOK, toGroups(recurrence.CompletedHistory(h.tasks.List()), ref))
}

// InactiveHistory lists the deactivated tasks grouped by recurrence.
func (h *Handlers) InactiveHistory(w http.ResponseWriter, r *http.Request) {
	ref, err := h.parseRef(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid at")
		return
	}

	respondJSON(w, http.StatusOK, toGroups(recurrence.InactiveHistory(h.tasks.List()), ref))
}
