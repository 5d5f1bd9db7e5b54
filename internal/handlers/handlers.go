package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"choretracker/internal/service"
)

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	tasks *service.TaskService
	now   func() time.Time
}

// New creates a new Handlers instance. now supplies the reference time when
// a request does not pass one; nil means the wall clock.
func New(svc *service.TaskService, now func() time.Time) *Handlers {
	if now == nil {
		now = time.Now
	}
	return &Handlers{
		tasks: svc,
		now:   now,
	}
}

// Register mounts every API route on r.
func (h *Handlers) Register(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/tasks", h.ListTasks)
		r.Post("/tasks", h.CreateTask)
		r.Get("/tasks/{id}", h.GetTask)
		r.Put("/tasks/{id}", h.UpdateTask)
		r.Delete("/tasks/{id}", h.DeleteTask)
		r.Post("/tasks/{id}/complete", h.CompleteTask)
		r.Post("/tasks/{id}/toggle", h.ToggleTask)

		r.Get("/counts", h.Counts)
		r.Get("/summary", h.Summary)
		r.Get("/history/completed", h.CompletedHistory)
		r.Get("/history/inactive", h.InactiveHistory)

		r.Get("/preferences", h.GetPreferences)
		r.Put("/preferences", h.SavePreferences)
		r.Post("/reset", h.Reset)
	})
}

// parseRef returns the reference time from the "at" query parameter, which
// may be RFC 3339 or a bare YYYY-MM-DD date in local time.
func (h *Handlers) parseRef(r *http.Request) (time.Time, error) {
	v := r.URL.Query().Get("at")
	if v == "" {
		return h.now(), nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t.Local(), nil
	}
	return time.ParseInLocation("2006-01-02", v, time.Local)
}

// parseBool reads an optional boolean query parameter, falling back to def.
func parseBool(r *http.Request, name string, def bool) (bool, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	return strconv.ParseBool(v)
}

func respondJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, map[string]string{"error": message})
}

func respondServerError(w http.ResponseWriter, err error) {
	log.Printf("internal server error: %v", err)
	respondError(w, http.StatusInternalServerError, "internal server error")
}

// respondServiceError maps service errors to status codes.
func respondServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrNotFound) {
		respondError(w, http.StatusNotFound, "task not found")
		return
	}
	respondServerError(w, err)
}
