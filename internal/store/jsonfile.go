package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"

	"choretracker/internal/models"
)

// JSONStore keeps the task list and preferences in a single JSON document.
// Writes go to a temporary file that is renamed over the original.
type JSONStore struct {
	path string
	mu   sync.Mutex
}

type jsonDocument struct {
	Tasks       []json.RawMessage `json:"tasks"`
	Preferences json.RawMessage   `json:"preferences,omitempty"`
}

// NewJSONStore creates a JSON-file store at path, creating the parent
// directory if needed. The file itself is created on first save.
func NewJSONStore(path string) (*JSONStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}
	return &JSONStore{path: path}, nil
}

// Close is a no-op; the file is not held open between operations.
func (s *JSONStore) Close() error {
	return nil
}

// LoadTasks returns the stored tasks. A missing file yields an empty list;
// a corrupt file or an undecodable entry is logged and skipped.
func (s *JSONStore) LoadTasks(ctx context.Context) ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}

	tasks := make([]models.Task, 0, len(doc.Tasks))
	for i, raw := range doc.Tasks {
		var task models.Task
		if err := json.Unmarshal(raw, &task); err != nil {
			log.Printf("skipping unreadable task at index %d: %v", i, err)
			continue
		}
		if task.ID == "" || !task.Recurrence.Valid() {
			log.Printf("skipping malformed task at index %d", i)
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// SaveTasks replaces the stored task list, keeping the stored preferences.
func (s *JSONStore) SaveTasks(ctx context.Context, tasks []models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}

	doc.Tasks = make([]json.RawMessage, 0, len(tasks))
	for _, task := range tasks {
		raw, err := json.Marshal(task)
		if err != nil {
			return fmt.Errorf("failed to encode task %s: %w", task.ID, err)
		}
		doc.Tasks = append(doc.Tasks, raw)
	}

	return s.write(doc)
}

// LoadPreferences returns the stored preferences or the defaults.
func (s *JSONStore) LoadPreferences(ctx context.Context) (models.Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return models.Preferences{}, err
	}
	if len(doc.Preferences) == 0 {
		return models.DefaultPreferences(), nil
	}
	return decodePreferences(doc.Preferences), nil
}

// SavePreferences replaces the stored preferences, keeping the task list.
func (s *JSONStore) SavePreferences(ctx context.Context, prefs models.Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}
	doc.Preferences = raw

	return s.write(doc)
}

// read loads the document. Callers must hold s.mu.
func (s *JSONStore) read() (jsonDocument, error) {
	var doc jsonDocument

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return doc, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	if err := json.Unmarshal(data, &doc); err != nil {
		log.Printf("ignoring corrupt data file %s: %v", s.path, err)
		return jsonDocument{}, nil
	}
	return doc, nil
}

// write replaces the document on disk. Callers must hold s.mu.
func (s *JSONStore) write(doc jsonDocument) error {
	if doc.Tasks == nil {
		doc.Tasks = []json.RawMessage{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode data file: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}
