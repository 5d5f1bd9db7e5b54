package handlers

import (
	"encoding/json"
	"net/http"

	"choretracker/internal/models"
	"choretracker/internal/recurrence"
)

// GetPreferences returns the saved sort and filter preferences.
func (h *Handlers) GetPreferences(w http.ResponseWriter, r *http.Request) {
	prefs, err := h.tasks.Preferences(r.Context())
	if err != nil {
		respondServerError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, prefs)
}

// SavePreferences replaces the saved preferences. Omitted fields take their
// default values.
func (h *Handlers) SavePreferences(w http.ResponseWriter, r *http.Request) {
	prefs := models.DefaultPreferences()
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := prefs.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := recurrence.ParseSortKey(prefs.SortKey); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.tasks.SavePreferences(r.Context(), prefs); err != nil {
		respondServerError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, prefs)
}
