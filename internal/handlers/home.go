package handlers

import (
	"net/http"
	"time"

	"choretracker/internal/recurrence"
	"choretracker/internal/scheduler"
)

// CountsResponse holds the open-task badge numbers for every view.
type CountsResponse struct {
	At     time.Time         `json:"at"`
	Counts recurrence.Counts `json:"counts"`
}

// Counts returns the number of open tasks behind each view tab.
func (h *Handlers) Counts(w http.ResponseWriter, r *http.Request) {
	ref, err := h.parseRef(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid at")
		return
	}

	respondJSON(w, http.StatusOK, CountsResponse{
		At:     ref,
		Counts: recurrence.ComputeCounts(h.tasks.List(), ref),
	})
}

// Summary renders the daily chore report as plain text.
func (h *Handlers) Summary(w http.ResponseWriter, r *http.Request) {
	ref, err := h.parseRef(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid at")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(scheduler.Summary(h.tasks.List(), ref) + "\n"))
}

// Reset replaces every task with the starter list.
func (h *Handlers) Reset(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.Reset(r.Context())
	if err != nil {
		respondServerError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, tasks)
}
