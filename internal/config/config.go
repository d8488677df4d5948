// Package config handles XDG directories and the optional config.toml file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"taskman/internal/kv"
	"taskman/internal/view"
)

const (
	// AppName is the application directory name.
	AppName = "taskman"

	// ConfigFile is the configuration filename inside the config directory.
	ConfigFile = "config.toml"

	// LogFile is the default log filename inside the config directory.
	LogFile = "taskman.log"

	// DefaultQuotaBytes mirrors the usual browser local storage limit.
	DefaultQuotaBytes = 5 * 1024 * 1024
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string `toml:"-"`

	// Debug enables debug logging.
	Debug bool `toml:"-"`

	// Quiet suppresses informational output.
	Quiet bool `toml:"-"`

	Storage StorageConfig `toml:"storage"`
	List    ListConfig    `toml:"list"`
	Log     LogConfig     `toml:"log"`
}

// StorageConfig selects and locates the key-value backend.
type StorageConfig struct {
	Backend    string `toml:"backend"`
	DataDir    string `toml:"data_dir"`
	Key        string `toml:"key"`
	QuotaBytes int    `toml:"quota_bytes"`
}

// ListConfig holds list display defaults.
type ListConfig struct {
	DefaultFilter string `toml:"default_filter"`
}

// LogConfig controls the log file.
type LogConfig struct {
	Level      string `toml:"level"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
}

// New creates a new Config with defaults and the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/taskman or $HOME/.config/taskman.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir: dir,
		Storage: StorageConfig{
			Backend:    kv.BackendFile,
			Key:        "tasks",
			QuotaBytes: DefaultQuotaBytes,
		},
		List: ListConfig{DefaultFilter: string(view.All)},
		Log: LogConfig{
			Level:      "warn",
			MaxSizeMB:  5,
			MaxBackups: 3,
		},
	}, nil
}

// Load creates a Config like New and overlays config.toml from the directory
// when it exists. A malformed file or an invalid value is an error.
func Load(configDir string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}
	if _, err := toml.DecodeFile(cfg.FilePath(), cfg); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("invalid %s: %w", ConfigFile, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}
	return cfg, nil
}

// Validate checks the values that have a fixed set of choices.
func (c *Config) Validate() error {
	backend := strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	valid := false
	for _, b := range kv.Backends() {
		if backend == b {
			valid = true
		}
	}
	if !valid {
		return fmt.Errorf("storage.backend: unknown backend %q", c.Storage.Backend)
	}
	c.Storage.Backend = backend

	if err := kv.ValidateKey(c.Storage.Key); err != nil {
		return fmt.Errorf("storage.key: %w", err)
	}
	if _, err := view.ParseFilter(c.List.DefaultFilter); err != nil {
		return fmt.Errorf("list.default_filter: %w", err)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
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

// DefaultDataDir returns the default data directory.
// Uses XDG_DATA_HOME if set, otherwise $HOME/.local/share.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".local", "share", AppName)
}

// FilePath returns the path to config.toml.
func (c *Config) FilePath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// DataDir returns the directory holding the task data.
func (c *Config) DataDir() string {
	if c.Storage.DataDir != "" {
		return c.Storage.DataDir
	}
	return DefaultDataDir()
}

// LogPath returns the log file path, or "" when file logging is disabled.
func (c *Config) LogPath() string {
	switch c.Log.File {
	case "-":
		return ""
	case "":
		return filepath.Join(c.Dir, LogFile)
	default:
		return c.Log.File
	}
}

// DefaultFilter returns the configured initial filter, falling back to all.
func (c *Config) DefaultFilter() view.Filter {
	f, err := view.ParseFilter(c.List.DefaultFilter)
	if err != nil {
		return view.All
	}
	return f
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("unknown level %q", s)
	}
	return l, nil
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}
