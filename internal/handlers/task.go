package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"choretracker/internal/models"
	"choretracker/internal/recurrence"
	"choretracker/internal/service"
)

// TaskItem is a task with the flags a list row needs.
type TaskItem struct {
	models.Task
	Overdue        bool `json:"overdue"`
	OverdueDays    int  `json:"overdueDays"`
	CompletedToday bool `json:"completedToday"`
}

// GroupItem is one section of a grouped listing.
type GroupItem struct {
	Kind    recurrence.GroupKind `json:"kind"`
	Weekday *time.Weekday        `json:"weekday,omitempty"`
	Tasks   []TaskItem           `json:"tasks"`
}

// TaskList is the response of ListTasks. Groups is only set for the week
// view.
type TaskList struct {
	View   recurrence.View      `json:"view"`
	At     time.Time            `json:"at"`
	Sort   recurrence.SortKey   `json:"sort"`
	Dir    models.SortDirection `json:"dir"`
	Tasks  []TaskItem           `json:"tasks"`
	Groups []GroupItem          `json:"groups,omitempty"`
}

// TaskDetail is the response of GetTask.
type TaskDetail struct {
	Task     models.Task         `json:"task"`
	Insights recurrence.Insights `json:"insights"`
}

type createTaskRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Recurrence  models.Recurrence `json:"recurrence"`
	Weekday     *time.Weekday     `json:"weekday"`
}

func toItems(tasks []models.Task, ref time.Time) []TaskItem {
	items := make([]TaskItem, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, TaskItem{
			Task:           t,
			Overdue:        recurrence.IsOverdue(t, ref),
			OverdueDays:    recurrence.OverdueDays(t.NextDueDate, ref),
			CompletedToday: !recurrence.IsNotCompletedToday(t, ref),
		})
	}
	return items
}

func toGroups(groups []recurrence.Group, ref time.Time) []GroupItem {
	items := make([]GroupItem, 0, len(groups))
	for _, g := range groups {
		items = append(items, GroupItem{Kind: g.Kind, Weekday: g.Weekday, Tasks: toItems(g.Tasks, ref)})
	}
	return items
}

// ListTasks returns the tasks of one view. Sort and filter parameters that
// are not given fall back to the saved preferences.
func (h *Handlers) ListTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	ref, err := h.parseRef(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid at")
		return
	}

	view, err := recurrence.ParseView(q.Get("view"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	prefs, err := h.tasks.Preferences(ctx)
	if err != nil {
		respondServerError(w, err)
		return
	}

	sortParam := q.Get("sort")
	if sortParam == "" {
		sortParam = prefs.SortKey
	}
	key, err := recurrence.ParseSortKey(sortParam)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	dir := models.SortDirection(q.Get("dir"))
	if dir == "" {
		dir = prefs.SortDirection
	}
	if dir != models.SortAsc && dir != models.SortDesc {
		respondError(w, http.StatusBadRequest, "dir must be 'asc' or 'desc'")
		return
	}

	opts := recurrence.FilterOptions{View: view}
	for _, p := range []struct {
		name string
		def  bool
		dst  *bool
	}{
		{"inactive", prefs.ShowInactive, &opts.ShowInactive},
		{"overdue", prefs.ShowOverdue, &opts.ShowOverdue},
		{"completed", prefs.ShowCompleted, &opts.ShowCompleted},
	} {
		v, err := parseBool(r, p.name, p.def)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid "+p.name)
			return
		}
		*p.dst = v
	}

	filtered := recurrence.Filter(h.tasks.List(), opts, ref)

	resp := TaskList{View: view, At: ref, Sort: key, Dir: dir}
	if view == recurrence.ViewWeek {
		resp.Tasks = toItems(filtered, ref)
		resp.Groups = toGroups(recurrence.GroupTasks(filtered), ref)
	} else {
		resp.Tasks = toItems(recurrence.Sort(filtered, key, dir), ref)
	}

	respondJSON(w, http.StatusOK, resp)
}

// GetTask returns one task with its insights.
func (h *Handlers) GetTask(w http.ResponseWriter, r *http.Request) {
	ref, err := h.parseRef(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid at")
		return
	}

	task, err := h.tasks.Get(chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, TaskDetail{Task: task, Insights: recurrence.Describe(task, ref)})
}

// CreateTask creates a new task.
func (h *Handlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}

	candidate := models.Task{
		Title:       req.Title,
		Description: req.Description,
		Recurrence:  req.Recurrence,
		Weekday:     req.Weekday,
	}
	if err := candidate.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	task, err := h.tasks.Create(ctx, service.NewTask{
		Title:       req.Title,
		Description: req.Description,
		Recurrence:  req.Recurrence,
		Weekday:     req.Weekday,
	})
	if err != nil {
		respondServerError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, task)
}

// UpdateTask applies a partial update to a task.
func (h *Handlers) UpdateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	var patch service.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}

	current, err := h.tasks.Get(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	merged := patch.Merge(current)
	if err := merged.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	task, err := h.tasks.Update(ctx, id, patch)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, task)
}

// CompleteTask marks a task done for today.
func (h *Handlers) CompleteTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.tasks.CompleteToday(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, task)
}

// ToggleTask flips whether a task is active.
func (h *Handlers) ToggleTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.tasks.ToggleActive(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, task)
}

// DeleteTask deletes a task.
func (h *Handlers) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.tasks.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
