package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"choretracker/internal/models"
)

const preferencesKey = "view"

// SQLiteStore implements the Store interface using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store with the given database path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared across queries.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// LoadTasks retrieves every task in the order it was saved. Rows that cannot
// be decoded are skipped.
func (s *SQLiteStore) LoadTasks(ctx context.Context) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, recurrence, weekday, active, last_completed_at, next_due_date, created_at
		FROM tasks ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]models.Task, 0)
	for rows.Next() {
		var (
			task          models.Task
			description   sql.NullString
			recurrence    string
			weekday       sql.NullInt64
			lastCompleted sql.NullString
			nextDue       sql.NullString
			createdAt     string
		)

		err := rows.Scan(
			&task.ID,
			&task.Title,
			&description,
			&recurrence,
			&weekday,
			&task.Active,
			&lastCompleted,
			&nextDue,
			&createdAt,
		)
		if err != nil {
			log.Printf("skipping unreadable task row: %v", err)
			continue
		}

		task.Description = description.String
		task.Recurrence = models.Recurrence(recurrence)
		if !task.Recurrence.Valid() {
			log.Printf("skipping task %s with unknown recurrence %q", task.ID, recurrence)
			continue
		}
		if weekday.Valid {
			task.Weekday = models.WeekdayPtr(time.Weekday(weekday.Int64))
		}
		task.LastCompletedAt = parseTimestamp(lastCompleted)
		task.NextDueDate = parseTimestamp(nextDue)
		if created := parseTimestamp(sql.NullString{String: createdAt, Valid: true}); created != nil {
			task.CreatedAt = *created
		}

		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

// SaveTasks replaces the stored list in a single transaction, so a failed
// write leaves the previous list intact.
func (s *SQLiteStore) SaveTasks(ctx context.Context, tasks []models.Task) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("failed to clear tasks: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tasks (id, position, title, description, recurrence, weekday, active, last_completed_at, next_due_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, task := range tasks {
		var weekday interface{}
		if task.Weekday != nil {
			weekday = int(*task.Weekday)
		}

		_, err := stmt.ExecContext(ctx,
			task.ID,
			i+1,
			task.Title,
			task.Description,
			string(task.Recurrence),
			weekday,
			task.Active,
			formatTimestamp(task.LastCompletedAt),
			formatTimestamp(task.NextDueDate),
			task.CreatedAt.Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("failed to save task %s: %w", task.ID, err)
		}
	}

	return tx.Commit()
}

// LoadPreferences returns the stored view preferences, or the defaults when
// none are stored or the stored value is malformed.
func (s *SQLiteStore) LoadPreferences(ctx context.Context) (models.Preferences, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, preferencesKey).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.DefaultPreferences(), nil
		}
		return models.Preferences{}, fmt.Errorf("failed to get preferences: %w", err)
	}

	return decodePreferences([]byte(raw)), nil
}

// SavePreferences stores the view preferences.
func (s *SQLiteStore) SavePreferences(ctx context.Context, prefs models.Preferences) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, preferencesKey, string(data), time.Now())
	if err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}

func formatTimestamp(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339Nano)
}

// parseTimestamp reads an RFC 3339 timestamp into local time. Unparseable
// values are dropped.
func parseTimestamp(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s.String)
	if err != nil {
		log.Printf("ignoring malformed timestamp %q: %v", s.String, err)
		return nil
	}
	t = t.Local()
	return &t
}

func decodePreferences(data []byte) models.Preferences {
	prefs := models.DefaultPreferences()
	if err := json.Unmarshal(data, &prefs); err != nil {
		log.Printf("ignoring malformed preferences: %v", err)
		return models.DefaultPreferences()
	}
	if err := prefs.Validate(); err != nil {
		log.Printf("ignoring invalid preferences: %v", err)
		return models.DefaultPreferences()
	}
	return prefs
}
