// Package config handles the configuration directory, config.yaml and data file paths.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"tasklist/internal/logging"
)

const (
	// AppName is the application directory name.
	AppName = "tasklist"

	// ConfigFile is the optional configuration filename inside the config directory.
	ConfigFile = "config.yaml"

	// BackendJSON stores tasks in a pretty-printed JSON file.
	BackendJSON = "json"

	// BackendSQLite stores tasks in a SQLite database.
	BackendSQLite = "sqlite"

	defaultDataFile = "tasks.json"
	defaultLogFile  = "tasklist.log"
)

// DefaultSeedTasks are created when the interactive menu starts on an empty list.
var DefaultSeedTasks = []string{
	"Learn Go",
	"Finish the practical assignment",
	"Learn Git",
}

// FileConfig models config.yaml.
type FileConfig struct {
	Backend   string   `yaml:"backend"`
	DataFile  string   `yaml:"data_file"`
	LogFile   string   `yaml:"log_file"`
	Color     *bool    `yaml:"color"`
	SeedTasks []string `yaml:"seed_tasks"`
}

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Backend selects the persistence backend: "json" or "sqlite".
	// Empty means "json".
	Backend string

	// DataFile is the task file path. Relative paths resolve against Dir.
	DataFile string

	// LogFile is the log file path. Relative paths resolve against Dir.
	LogFile string

	// Color enables styled terminal output.
	Color bool

	// SeedTasks are added by the menu when it starts with no tasks.
	SeedTasks []string

	// Debug sends log lines to stderr instead of the log file.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Log receives diagnostic lines. Nil discards them.
	Log *logging.Logger
}

// New creates a Config with the default or specified config directory and
// applies config.yaml from that directory when present.
// If configDir is empty, uses XDG_CONFIG_HOME/tasklist or $HOME/.config/tasklist.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{
		Dir:       dir,
		Backend:   BackendJSON,
		DataFile:  defaultDataFile,
		LogFile:   defaultLogFile,
		Color:     true,
		SeedTasks: DefaultSeedTasks,
	}
	if err := cfg.loadFile(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

func (c *Config) loadFile() error {
	path := c.ConfigPath()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	if fc.Backend != "" {
		c.Backend = fc.Backend
	}
	if fc.DataFile != "" {
		c.DataFile = fc.DataFile
	}
	if fc.LogFile != "" {
		c.LogFile = fc.LogFile
	}
	if fc.Color != nil {
		c.Color = *fc.Color
	}
	if fc.SeedTasks != nil {
		c.SeedTasks = fc.SeedTasks
	}
	return c.Validate()
}

// Validate checks settings that config.yaml can get wrong.
func (c *Config) Validate() error {
	switch c.Backend {
	case "", BackendJSON, BackendSQLite:
		return nil
	default:
		return fmt.Errorf("unknown backend %q (expected %s or %s)", c.Backend, BackendJSON, BackendSQLite)
	}
}

// ConfigPath returns the path to config.yaml.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// DataPath returns the resolved task file path.
func (c *Config) DataPath() string {
	return c.resolve(c.DataFile, defaultDataFile)
}

// LogPath returns the resolved log file path.
func (c *Config) LogPath() string {
	return c.resolve(c.LogFile, defaultLogFile)
}

func (c *Config) resolve(name, fallback string) string {
	if name == "" {
		name = fallback
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Dir, name)
}
