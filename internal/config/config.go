// Package config provides reading and writing of arcaide configuration.
// Supports both global (~/.arcaide/config.yaml) and local (.arcaide/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to global, use --local for local.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.arcaide/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is directory-specific config in .arcaide/config.yaml
	ScopeLocal
)

// Author represents the author metadata recorded in audit log entries.
type Author struct {
	Name  string `yaml:"name,omitempty"`
	Email string `yaml:"email,omitempty"`
}

// Server holds web server configuration options.
type Server struct {
	Listen *string `yaml:"listen,omitempty"`
}

// Database holds storage configuration options.
type Database struct {
	Path *string `yaml:"path,omitempty"`
}

// Search holds search behaviour configuration options.
type Search struct {
	Fuzzy *bool `yaml:"fuzzy,omitempty"`
	Limit *int  `yaml:"limit,omitempty"`
}

// Limits holds size limit configuration options.
type Limits struct {
	MaxName    *int   `yaml:"max_name,omitempty"`
	MaxContent *int64 `yaml:"max_content,omitempty"`
}

// Defaults applied when not configured.
const (
	DefaultListen      = "127.0.0.1:8787"
	DefaultSearchLimit = 50
	DefaultMaxName     = 256
	DefaultMaxContent  = 10 * 1024 * 1024 // 10 MB serialized document
)

// DefaultDBPath is the campaign database location when not configured.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".arcaide", "campaigns.db")
	}
	return filepath.Join(home, ".arcaide", "campaigns.db")
}

// Validation bounds for configuration values.
const (
	MinMaxName        = 1
	MaxMaxName        = 65536
	MinMaxContent     = 1
	MaxMaxContent     = 1024 * 1024 * 1024 // 1 GB - reasonable upper bound
	MinSearchLimit    = 1
	MaxSearchLimit    = 10000
)

// Config contains configuration for arcaide.
type Config struct {
	Author   Author   `yaml:"author,omitempty"`
	Server   Server   `yaml:"server,omitempty"`
	Database Database `yaml:"database,omitempty"`
	Search   Search   `yaml:"search,omitempty"`
	Limits   Limits   `yaml:"limits,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	if c.Limits.MaxName != nil {
		v := *c.Limits.MaxName
		if v < MinMaxName || v > MaxMaxName {
			return fmt.Errorf("%w: max_name must be between %d and %d, got %d",
				ErrInvalidValue, MinMaxName, MaxMaxName, v)
		}
	}
	if c.Limits.MaxContent != nil {
		v := *c.Limits.MaxContent
		if v < MinMaxContent || v > MaxMaxContent {
			return fmt.Errorf("%w: max_content must be between %d and %d, got %d",
				ErrInvalidValue, MinMaxContent, MaxMaxContent, v)
		}
	}
	if c.Search.Limit != nil {
		v := *c.Search.Limit
		if v < MinSearchLimit || v > MaxSearchLimit {
			return fmt.Errorf("%w: search limit must be between %d and %d, got %d",
				ErrInvalidValue, MinSearchLimit, MaxSearchLimit, v)
		}
	}
	return nil
}

// Listen returns the web server listen address (defaults to 127.0.0.1:8787).
func (c *Config) Listen() string {
	if c.Server.Listen == nil {
		return DefaultListen
	}
	return *c.Server.Listen
}

// DBPath returns the campaign database path.
func (c *Config) DBPath() string {
	if c.Database.Path == nil {
		return DefaultDBPath()
	}
	return *c.Database.Path
}

// FuzzyDefault returns whether search requests default to fuzzy correction
// when the caller does not say (defaults to true).
func (c *Config) FuzzyDefault() bool {
	if c.Search.Fuzzy == nil {
		return true
	}
	return *c.Search.Fuzzy
}

// SearchLimit returns the default result cap for searches (defaults to 50).
func (c *Config) SearchLimit() int {
	if c.Search.Limit == nil {
		return DefaultSearchLimit
	}
	return *c.Search.Limit
}

// MaxName returns the maximum entity name length in bytes (defaults to 256).
func (c *Config) MaxName() int {
	if c.Limits.MaxName == nil {
		return DefaultMaxName
	}
	return *c.Limits.MaxName
}

// MaxContent returns the maximum serialized document size in bytes
// (defaults to 10 MB).
func (c *Config) MaxContent() int64 {
	if c.Limits.MaxContent == nil {
		return DefaultMaxContent
	}
	return *c.Limits.MaxContent
}

// LocalPath returns the path to the local (directory) config file.
func LocalPath() string {
	return filepath.Join(".arcaide", "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.arcaide/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcaide", "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	// Check if local config exists
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	// Fall back to global
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	path := pathForScope(scope)
	if path == "" {
		return &Config{scope: scope}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// SaveScope writes the configuration to the specified scope.
func (c *Config) SaveScope(scope Scope) error {
	path := pathForScope(scope)
	if path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(path)
}

// saveToPath writes configuration to a specific filesystem path.
// Creates parent directories as needed with mode 0755.
func (c *Config) saveToPath(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// pathForScope returns the filesystem path for a given scope.
func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}
