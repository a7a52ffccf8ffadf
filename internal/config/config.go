// Package config provides reading and writing of tree-sitter-grep
// configuration.
// Supports both global (~/.config/tree-sitter-grep/config.yaml) and local
// (.tree-sitter-grep.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: Save writes back to the file the config was loaded from (global
// when there is none); SaveScope writes to an explicitly chosen scope.
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
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.config/tree-sitter-grep/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is project-specific config in .tree-sitter-grep.yaml
	ScopeLocal
)

// Defaults holds CLI flag defaults that a config file can override. Every
// field is a pointer so "not set in this file" is distinguishable from "set
// to the zero value".
type Defaults struct {
	Language      *string `yaml:"language,omitempty"`
	Heading       *bool   `yaml:"heading,omitempty"`
	ColorChoice   *string `yaml:"color,omitempty"` // never|auto|always|ansi
	BeforeContext *int    `yaml:"before_context,omitempty"`
	AfterContext  *int    `yaml:"after_context,omitempty"`
	MaxColumns    *int    `yaml:"max_columns,omitempty"`
}

// Limits holds size/behavior bounds that are rarely changed but still
// user-configurable (mirrors how resource limits are exposed on the
// document-store side of this codebase's ancestry).
type Limits struct {
	HeapLimit *int64 `yaml:"heap_limit,omitempty"`
}

// Default limits applied when not configured.
const (
	DefaultBeforeContext = 0
	DefaultAfterContext  = 0
	DefaultMaxColumns    = 0 // 0 means unlimited
	DefaultHeapLimit     = int64(0)
)

// Validation bounds for configuration values.
const (
	MinContext    = 0
	MaxContext    = 1 << 20
	MinMaxColumns = 0
	MaxMaxColumns = 1 << 24
)

// Config contains configuration for tree-sitter-grep.
type Config struct {
	Defaults Defaults `yaml:"defaults,omitempty"`
	// ColorSpecs holds type:attr:value overrides applied before any
	// --colors flag values, in the same format as the CLI flag.
	ColorSpecs []string `yaml:"color_specs,omitempty"`
	// FileTypes maps a language tag to extra glob patterns merged into the
	// walker's ignore-style type matcher for that language.
	FileTypes map[string][]string `yaml:"file_types,omitempty"`
	Limits    Limits              `yaml:"limits,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	if c.Defaults.BeforeContext != nil {
		if v := *c.Defaults.BeforeContext; v < MinContext || v > MaxContext {
			return fmt.Errorf("%w: before_context must be between %d and %d, got %d", ErrInvalidValue, MinContext, MaxContext, v)
		}
	}
	if c.Defaults.AfterContext != nil {
		if v := *c.Defaults.AfterContext; v < MinContext || v > MaxContext {
			return fmt.Errorf("%w: after_context must be between %d and %d, got %d", ErrInvalidValue, MinContext, MaxContext, v)
		}
	}
	if c.Defaults.MaxColumns != nil {
		if v := *c.Defaults.MaxColumns; v < MinMaxColumns || v > MaxMaxColumns {
			return fmt.Errorf("%w: max_columns must be between %d and %d, got %d", ErrInvalidValue, MinMaxColumns, MaxMaxColumns, v)
		}
	}
	if c.Limits.HeapLimit != nil && *c.Limits.HeapLimit < 0 {
		return fmt.Errorf("%w: heap_limit must be non-negative, got %d", ErrInvalidValue, *c.Limits.HeapLimit)
	}
	return nil
}

// BeforeContext returns the configured default before-context line count.
func (c *Config) BeforeContext() int {
	if c.Defaults.BeforeContext == nil {
		return DefaultBeforeContext
	}
	return *c.Defaults.BeforeContext
}

// AfterContext returns the configured default after-context line count.
func (c *Config) AfterContext() int {
	if c.Defaults.AfterContext == nil {
		return DefaultAfterContext
	}
	return *c.Defaults.AfterContext
}

// MaxColumns returns the configured default max-columns bound (0 = unlimited).
func (c *Config) MaxColumns() int {
	if c.Defaults.MaxColumns == nil {
		return DefaultMaxColumns
	}
	return *c.Defaults.MaxColumns
}

// HeapLimit returns the configured per-file buffer cap in bytes (0 = unlimited).
func (c *Config) HeapLimit() int64 {
	if c.Limits.HeapLimit == nil {
		return DefaultHeapLimit
	}
	return *c.Limits.HeapLimit
}

// Heading returns whether heading mode is the configured default, and
// whether it was configured at all.
func (c *Config) Heading() (value, ok bool) {
	if c.Defaults.Heading == nil {
		return false, false
	}
	return *c.Defaults.Heading, true
}

// Language returns the configured default language tag, if any.
func (c *Config) Language() string {
	if c.Defaults.Language == nil {
		return ""
	}
	return *c.Defaults.Language
}

// ColorChoice returns the configured default color-choice mode, if any.
func (c *Config) ColorChoice() string {
	if c.Defaults.ColorChoice == nil {
		return ""
	}
	return *c.Defaults.ColorChoice
}

// LocalPath returns the path to the local (project) config file.
func LocalPath() string {
	return ".tree-sitter-grep.yaml"
}

// GlobalPath returns the path to the global (user) config file.
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "tree-sitter-grep", "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
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
