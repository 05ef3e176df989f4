// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the application configuration.
type Config struct {
	School  SchoolConfig  `toml:"school"`
	Exams   ExamsConfig   `toml:"exams"`
	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
}

// SchoolConfig identifies the school whose calendar is edited.
type SchoolConfig struct {
	ID           string   `toml:"id"`            // key of the stored grid
	DefaultClass string   `toml:"default_class"` // used when --class is omitted
	Classes      []string `toml:"classes"`       // e.g., ["10A", "11A", "12B"]
}

// ExamsConfig holds timetable import settings.
type ExamsConfig struct {
	Season string `toml:"season"` // "summer" or "winter"
	Source string `toml:"source"` // recorded with each loaded timetable
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `toml:"level"`  // "debug", "info", "warn", "error"
	Format string `toml:"format"` // "console" or "json"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		School: SchoolConfig{
			ID:           "default",
			DefaultClass: "all",
			Classes:      []string{},
		},
		Exams: ExamsConfig{
			Season: "summer",
			Source: "משרד החינוך - אגף בחינות",
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "luach.db"
	}
	return filepath.Join(home, ".local", "share", "luach", "luach.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "luach", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	// School overrides
	if v := os.Getenv("LUACH_SCHOOL_ID"); v != "" {
		cfg.School.ID = v
	}
	if v := os.Getenv("LUACH_DEFAULT_CLASS"); v != "" {
		cfg.School.DefaultClass = v
	}
	if v := os.Getenv("LUACH_CLASSES"); v != "" {
		cfg.School.Classes = splitList(v)
	}

	if v := os.Getenv("LUACH_EXAM_SEASON"); v != "" {
		cfg.Exams.Season = v
	}

	if v := os.Getenv("LUACH_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}

	// Log overrides
	if v := os.Getenv("LUACH_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LUACH_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.School.ID) == "" {
		return errors.New("school id must be set")
	}

	seen := make(map[string]bool, len(c.School.Classes))
	for _, class := range c.School.Classes {
		if strings.TrimSpace(class) == "" {
			return errors.New("class names cannot be empty")
		}
		if class == "all" {
			return errors.New(`"all" is reserved and cannot be a class name`)
		}
		if seen[class] {
			return fmt.Errorf("duplicate class: %s", class)
		}
		seen[class] = true
	}
	if c.School.DefaultClass != "all" && !c.HasClass(c.School.DefaultClass) {
		return fmt.Errorf("default_class %q is not a configured class", c.School.DefaultClass)
	}

	switch c.Exams.Season {
	case "summer", "winter":
	default:
		return fmt.Errorf("season must be summer or winter, got %q", c.Exams.Season)
	}

	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}

	if !validLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log format must be console or json, got %q", c.Log.Format)
	}
	return nil
}

var validLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// HasClass returns true if class is configured. With no classes configured,
// any class is accepted.
func (c *Config) HasClass(class string) bool {
	if len(c.School.Classes) == 0 {
		return class != ""
	}
	for _, cl := range c.School.Classes {
		if cl == class {
			return true
		}
	}
	return false
}

// Class resolves a --class flag value, falling back to the default class.
func (c *Config) Class(flag string) (string, error) {
	class := strings.TrimSpace(flag)
	if class == "" {
		return c.School.DefaultClass, nil
	}
	if class != "all" && !c.HasClass(class) {
		return "", fmt.Errorf("unknown class %q (configured: %s)", class, strings.Join(c.School.Classes, ", "))
	}
	return class, nil
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
