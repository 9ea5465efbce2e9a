// Package config handles configuration loading and validation for tend.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hay-kot/criterio"
	"gopkg.in/yaml.v3"

	"github.com/colonyops/tend/internal/core/styles"
	"github.com/colonyops/tend/internal/core/todo"
)

// Backend names the substrate the snapshot is stored in.
type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"
)

// IsValid checks if the backend is supported.
func (b Backend) IsValid() bool {
	return b == BackendSQLite || b == BackendMemory
}

// DefaultMaxBytes is the default substrate quota.
const DefaultMaxBytes = 5 << 20

// Config holds the application configuration.
type Config struct {
	Storage  StorageConfig  `yaml:"storage"`
	Database DatabaseConfig `yaml:"database"`
	Display  DisplayConfig  `yaml:"display"`
	DataDir  string         `yaml:"-"` // set by caller, not from config file
}

// StorageConfig selects and bounds the persistence substrate.
type StorageConfig struct {
	Backend  Backend `yaml:"backend"`
	Profile  string  `yaml:"profile"`   // key namespace, lets several lists share a database
	MaxBytes int64   `yaml:"max_bytes"` // total substrate quota, 0 = unlimited
	Strict   bool    `yaml:"strict"`    // validate every stored element on load
}

// DatabaseConfig tunes the SQLite connection pool.
type DatabaseConfig struct {
	MaxOpenConns int `yaml:"max_open_conns"`
	MaxIdleConns int `yaml:"max_idle_conns"`
	BusyTimeout  int `yaml:"busy_timeout"` // milliseconds
}

// DisplayConfig holds output preferences.
type DisplayConfig struct {
	Sort          todo.SortCriterion `yaml:"sort"`
	Direction     todo.SortDirection `yaml:"direction"`
	MarkdownStyle string             `yaml:"markdown_style"`
	Theme         string             `yaml:"theme"`
}

// MarkdownStyleTheme renders markdown with the active colour theme instead of
// a glamour style.
const MarkdownStyleTheme = "theme"

// SortState returns the configured default sort.
func (d DisplayConfig) SortState() todo.SortState {
	return todo.SortState{Criterion: d.Sort, Direction: d.Direction}
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Backend:  BackendSQLite,
			Profile:  "default",
			MaxBytes: DefaultMaxBytes,
		},
		Database: DatabaseConfig{
			MaxOpenConns: 4,
			MaxIdleConns: 2,
			BusyTimeout:  5000,
		},
		Display: DisplayConfig{
			Sort:          todo.SortNone,
			Direction:     todo.SortAsc,
			MarkdownStyle: MarkdownStyleTheme,
			Theme:         styles.DefaultTheme,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
// MaxBytes and Strict are left alone because their zero values are meaningful.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Storage.Backend == "" {
		c.Storage.Backend = defaults.Storage.Backend
	}
	if c.Storage.Profile == "" {
		c.Storage.Profile = defaults.Storage.Profile
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = defaults.Database.MaxOpenConns
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = defaults.Database.MaxIdleConns
	}
	if c.Database.BusyTimeout == 0 {
		c.Database.BusyTimeout = defaults.Database.BusyTimeout
	}
	if c.Display.Direction == "" {
		c.Display.Direction = defaults.Display.Direction
	}
	if c.Display.Theme == "" {
		c.Display.Theme = defaults.Display.Theme
	}
	if c.Display.MarkdownStyle == "" {
		c.Display.MarkdownStyle = defaults.Display.MarkdownStyle
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("data_dir", c.DataDir, required),
		criterio.Run("storage.backend", string(c.Storage.Backend), validBackend),
		criterio.Run("storage.profile", c.Storage.Profile, required),
		criterio.Run("display.sort", string(c.Display.Sort), validSort),
		criterio.Run("display.direction", string(c.Display.Direction), validDirection),
		criterio.Run("display.theme", c.Display.Theme, validTheme),
		c.validateLimits(),
	)
}

func (c *Config) validateLimits() error {
	var errs criterio.FieldErrorsBuilder

	if c.Storage.MaxBytes < 0 {
		errs = errs.Append("storage.max_bytes", fmt.Errorf("must not be negative, got %d", c.Storage.MaxBytes))
	}

	pool := []struct {
		field string
		n     int
	}{
		{"database.max_open_conns", c.Database.MaxOpenConns},
		{"database.max_idle_conns", c.Database.MaxIdleConns},
		{"database.busy_timeout", c.Database.BusyTimeout},
	}
	for _, p := range pool {
		if p.n < 1 {
			errs = errs.Append(p.field, fmt.Errorf("must be at least 1, got %d", p.n))
		}
	}

	return errs.ToError()
}

// DatabaseFile returns the path to the SQLite database.
func (c *Config) DatabaseFile() string {
	return filepath.Join(c.DataDir, "tend.db")
}

// LogFile returns the default log file path.
func (c *Config) LogFile() string {
	return filepath.Join(c.DataDir, "tend.log")
}

func required(s string) error {
	if s == "" {
		return fmt.Errorf("cannot be empty")
	}
	return nil
}

func validBackend(b string) error {
	if !Backend(b).IsValid() {
		return fmt.Errorf("unknown backend %q (want %s or %s)", b, BackendSQLite, BackendMemory)
	}
	return nil
}

func validSort(c string) error {
	if !todo.SortCriterion(c).IsValid() {
		return fmt.Errorf("unknown sort %q (want priority, scheduledAt or createdAt)", c)
	}
	return nil
}

func validDirection(d string) error {
	if !todo.SortDirection(d).IsValid() {
		return fmt.Errorf("unknown direction %q (want asc or desc)", d)
	}
	return nil
}

func validTheme(name string) error {
	if _, ok := styles.GetPalette(name); !ok {
		return fmt.Errorf("unknown theme %q (want one of %v)", name, styles.ThemeNames())
	}
	return nil
}
