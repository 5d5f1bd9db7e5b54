package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"choretracker/internal/seed"
	"choretracker/internal/store"
)

const (
	DefaultConfigPath = "./data/config.toml"
	DefaultDBPath     = "./data/choretracker.db"
	DefaultPort       = "8080"
	DefaultSummary    = "07:00"
)

type Storage struct {
	Backend string `toml:"backend"`
	Path    string `toml:"path"`
}

type Seed struct {
	Enabled bool         `toml:"enabled"`
	Anchors seed.Anchors `toml:"anchors"`
}

type Summary struct {
	// Time is the local "HH:MM" at which the daily summary runs. Empty
	// disables it.
	Time string `toml:"time"`
}

type Config struct {
	Port    string  `toml:"port"`
	Storage Storage `toml:"storage"`
	Seed    Seed    `toml:"seed"`
	Summary Summary `toml:"summary"`
}

// Path returns the config file location, honouring CHORETRACKER_CONFIG.
func Path() string {
	return getEnv("CHORETRACKER_CONFIG", DefaultConfigPath)
}

// LoadOrCreate reads the TOML file at path, writing one with the defaults
// when it does not exist yet. Environment overrides are applied on top and
// the result is validated.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, fmt.Errorf("failed to write default config: %w", err)
		}
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	cfg.Seed.Anchors = cfg.Seed.Anchors.Clamp()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the values that cannot be repaired silently.
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case store.BackendSQLite, store.BackendJSON:
	default:
		return fmt.Errorf("storage.backend must be %q or %q, got %q", store.BackendSQLite, store.BackendJSON, c.Storage.Backend)
	}
	if c.Storage.Path == "" {
		return errors.New("storage.path is required")
	}
	if c.Summary.Time != "" {
		if _, err := time.Parse("15:04", c.Summary.Time); err != nil {
			return fmt.Errorf("summary.time must be HH:MM, got %q", c.Summary.Time)
		}
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Storage.Path = getEnv("DB_PATH", cfg.Storage.Path)
	cfg.Storage.Backend = strings.ToLower(getEnv("STORAGE_BACKEND", cfg.Storage.Backend))
	if v, ok := os.LookupEnv("SUMMARY_TIME"); ok {
		cfg.Summary.Time = v
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig() Config {
	return Config{
		Port: DefaultPort,
		Storage: Storage{
			Backend: store.BackendSQLite,
			Path:    DefaultDBPath,
		},
		Seed: Seed{
			Enabled: true,
			Anchors: seed.DefaultAnchors(),
		},
		Summary: Summary{Time: DefaultSummary},
	}
}
