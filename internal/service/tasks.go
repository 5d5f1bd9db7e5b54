// Package service holds the task list in memory, applies the recurrence rules
// on every change and writes the whole list through to the store.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"choretracker/internal/models"
	"choretracker/internal/recurrence"
	"choretracker/internal/seed"
	"choretracker/internal/store"
)

// ErrNotFound is returned when no task has the requested id.
var ErrNotFound = errors.New("task not found")

// Options configures a TaskService. The zero value uses the wall clock, the
// default seed anchors, and leaves an empty store empty.
type Options struct {
	Now     func() time.Time
	Seed    bool
	Anchors seed.Anchors
}

// TaskService is safe for concurrent use. Every mutation runs
// find, mutate and save under one lock, and the in-memory list only changes
// once the store has accepted the new list.
type TaskService struct {
	store   store.Store
	now     func() time.Time
	anchors seed.Anchors

	mu    sync.Mutex
	tasks []models.Task

	obsMu     sync.Mutex
	observers map[uint64]func(Event)
	nextObs   uint64
}

// New loads the stored list, seeds it when empty (if enabled) and fills in
// any missing next due dates and creation times.
func New(ctx context.Context, s store.Store, opts Options) (*TaskService, error) {
	svc := &TaskService{
		store:     s,
		now:       opts.Now,
		anchors:   opts.Anchors,
		observers: make(map[uint64]func(Event)),
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	if svc.anchors == (seed.Anchors{}) {
		svc.anchors = seed.DefaultAnchors()
	}

	tasks, err := s.LoadTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	dirty := false
	if len(tasks) == 0 && opts.Seed {
		tasks = seed.Generate(svc.now(), svc.anchors)
		log.Printf("seeded %d starter tasks", len(tasks))
		dirty = true
	}

	if hydrate(tasks, svc.now()) {
		dirty = true
	}

	if dirty {
		if err := s.SaveTasks(ctx, tasks); err != nil {
			return nil, fmt.Errorf("failed to save initial tasks: %w", err)
		}
	}

	svc.tasks = tasks
	return svc, nil
}

// hydrate fills missing next due dates and creation times in place and
// reports whether anything changed.
func hydrate(tasks []models.Task, now time.Time) bool {
	changed := false
	for i := range tasks {
		t := &tasks[i]
		if t.NextDueDate == nil {
			next := recurrence.NextDueDate(t.Recurrence, now, t.Weekday)
			t.NextDueDate = &next
			changed = true
		}
		if t.CreatedAt.IsZero() {
			t.CreatedAt = now
			changed = true
		}
	}
	return changed
}

// List returns a copy of every task in storage order.
func (s *TaskService) List() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.tasks)
}

// Get returns a copy of the task with id.
func (s *TaskService) Get(id string) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Task{}, ErrNotFound
	}
	return s.tasks[i].Clone(), nil
}

// NewTask holds the caller-supplied fields of a task being created.
type NewTask struct {
	Title       string
	Description string
	Recurrence  models.Recurrence
	Weekday     *time.Weekday
}

// Create appends an active task scheduled from now. Input is not validated
// here; see models.Task.Validate.
func (s *TaskService) Create(ctx context.Context, in NewTask) (models.Task, error) {
	now := s.now()
	next := recurrence.NextDueDate(in.Recurrence, now, in.Weekday)

	task := models.Task{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Recurrence:  in.Recurrence,
		Active:      true,
		NextDueDate: &next,
		CreatedAt:   now,
	}
	if in.Weekday != nil {
		task.Weekday = models.WeekdayPtr(*in.Weekday)
	}

	err := s.mutate(ctx, func(tasks []models.Task) ([]models.Task, error) {
		return append(tasks, task), nil
	})
	if err != nil {
		return models.Task{}, err
	}

	s.notify(Event{Kind: EventCreated, TaskID: task.ID})
	return task.Clone(), nil
}

// Update merges patch into the task with id. The next due date is
// recomputed from now when the recurrence changes, or when the weekday
// changes on a weekly task.
func (s *TaskService) Update(ctx context.Context, id string, patch Patch) (models.Task, error) {
	var updated models.Task
	err := s.mutate(ctx, func(tasks []models.Task) ([]models.Task, error) {
		i := indexOf(tasks, id)
		if i < 0 {
			return nil, ErrNotFound
		}
		if patch.apply(&tasks[i]) {
			next := recurrence.NextDueDate(tasks[i].Recurrence, s.now(), tasks[i].Weekday)
			tasks[i].NextDueDate = &next
		}
		updated = tasks[i].Clone()
		return tasks, nil
	})
	if err != nil {
		return models.Task{}, err
	}

	s.notify(Event{Kind: EventUpdated, TaskID: id})
	return updated, nil
}

// CompleteToday marks the task done now and schedules its next occurrence.
func (s *TaskService) CompleteToday(ctx context.Context, id string) (models.Task, error) {
	var updated models.Task
	err := s.mutate(ctx, func(tasks []models.Task) ([]models.Task, error) {
		i := indexOf(tasks, id)
		if i < 0 {
			return nil, ErrNotFound
		}
		now := s.now()
		next := recurrence.NextDueDate(tasks[i].Recurrence, now, tasks[i].Weekday)
		tasks[i].LastCompletedAt = &now
		tasks[i].NextDueDate = &next
		updated = tasks[i].Clone()
		return tasks, nil
	})
	if err != nil {
		return models.Task{}, err
	}

	s.notify(Event{Kind: EventCompleted, TaskID: id})
	return updated, nil
}

// ToggleActive flips the active flag. Dates are left alone.
func (s *TaskService) ToggleActive(ctx context.Context, id string) (models.Task, error) {
	var updated models.Task
	err := s.mutate(ctx, func(tasks []models.Task) ([]models.Task, error) {
		i := indexOf(tasks, id)
		if i < 0 {
			return nil, ErrNotFound
		}
		tasks[i].Active = !tasks[i].Active
		updated = tasks[i].Clone()
		return tasks, nil
	})
	if err != nil {
		return models.Task{}, err
	}

	s.notify(Event{Kind: EventToggled, TaskID: id})
	return updated, nil
}

// Remove deletes the task with id.
func (s *TaskService) Remove(ctx context.Context, id string) error {
	err := s.mutate(ctx, func(tasks []models.Task) ([]models.Task, error) {
		i := indexOf(tasks, id)
		if i < 0 {
			return nil, ErrNotFound
		}
		return append(tasks[:i], tasks[i+1:]...), nil
	})
	if err != nil {
		return err
	}

	s.notify(Event{Kind: EventRemoved, TaskID: id})
	return nil
}

// Reset replaces the whole list with a freshly generated starter list.
func (s *TaskService) Reset(ctx context.Context) ([]models.Task, error) {
	fresh := seed.Generate(s.now(), s.anchors)
	err := s.mutate(ctx, func([]models.Task) ([]models.Task, error) {
		return fresh, nil
	})
	if err != nil {
		return nil, err
	}

	s.notify(Event{Kind: EventReset})
	return cloneAll(fresh), nil
}

// Preferences returns the stored list preferences.
func (s *TaskService) Preferences(ctx context.Context) (models.Preferences, error) {
	prefs, err := s.store.LoadPreferences(ctx)
	if err != nil {
		return models.Preferences{}, fmt.Errorf("failed to load preferences: %w", err)
	}
	return prefs, nil
}

// SavePreferences validates and stores the list preferences.
func (s *TaskService) SavePreferences(ctx context.Context, prefs models.Preferences) error {
	if err := prefs.Validate(); err != nil {
		return err
	}
	if _, err := recurrence.ParseSortKey(prefs.SortKey); err != nil {
		return err
	}
	if err := s.store.SavePreferences(ctx, prefs); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}

// mutate runs fn on a copy of the list and saves the result. The in-memory
// list is replaced only if both succeed.
func (s *TaskService) mutate(ctx context.Context, fn func([]models.Task) ([]models.Task, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(cloneAll(s.tasks))
	if err != nil {
		return err
	}
	if err := s.store.SaveTasks(ctx, next); err != nil {
		return fmt.Errorf("failed to save tasks: %w", err)
	}
	s.tasks = next
	return nil
}

func (s *TaskService) indexOf(id string) int {
	return indexOf(s.tasks, id)
}

func indexOf(tasks []models.Task, id string) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneAll(tasks []models.Task) []models.Task {
	out := make([]models.Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}
