package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/harrison/ctxgrep/internal/display"
	"github.com/harrison/ctxgrep/internal/fileutil"
	"github.com/harrison/ctxgrep/internal/logger"
	"github.com/harrison/ctxgrep/internal/models"
	"github.com/harrison/ctxgrep/internal/scanner"
	"gopkg.in/yaml.v3"
)

// Config represents ctxgrep configuration options
type Config struct {
	// ContextBefore is the number of lines printed before each hit
	ContextBefore int `yaml:"context_before" toml:"context_before"`

	// ContextAfter is the number of lines printed after each hit
	ContextAfter int `yaml:"context_after" toml:"context_after"`

	// IgnoreCase makes the whole expression case-insensitive
	IgnoreCase bool `yaml:"ignore_case" toml:"ignore_case"`

	// LineNumbers prefixes results with the hit line number
	LineNumbers bool `yaml:"line_numbers" toml:"line_numbers"`

	// Verbose prints per-file errors to stderr instead of dropping them
	Verbose bool `yaml:"verbose" toml:"verbose"`

	// Literal escapes regex metacharacters in the pattern
	Literal bool `yaml:"literal" toml:"literal"`

	// Mode selects "window" or "line" scanning
	Mode string `yaml:"mode" toml:"mode"`

	// Color is one of auto, always, never
	Color string `yaml:"color" toml:"color"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level" toml:"log_level"`

	// LogFile enables the shared run log when non-empty
	LogFile string `yaml:"log_file" toml:"log_file"`

	// ExcludeDirs are directory names that are never entered
	ExcludeDirs []string `yaml:"exclude_dirs" toml:"exclude_dirs"`

	// SkipHidden skips dot files and dot directories
	SkipHidden bool `yaml:"skip_hidden" toml:"skip_hidden"`

	// MaxDepth limits recursion depth (0 = unlimited)
	MaxDepth int `yaml:"max_depth" toml:"max_depth"`

	// MaxFileSize skips files larger than this many bytes (0 = unlimited)
	MaxFileSize int64 `yaml:"max_file_size" toml:"max_file_size"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		ContextBefore: 0,
		ContextAfter:  0,
		Mode:          models.ModeWindow,
		Color:         display.ColorAuto,
		LogLevel:      "warn",
		ExcludeDirs:   []string{},
	}
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// Files ending in .toml are decoded as TOML, anything else as YAML.
// Keys missing from the file keep their default value; unknown keys are an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("failed to parse config file: unknown key %q", undecoded[0].String())
		}
		return cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// Candidate config files inside a project directory, in lookup order.
var projectConfigFiles = []string{
	filepath.Join(".ctxgrep", "config.yaml"),
	filepath.Join(".ctxgrep", "config.toml"),
	".ctxgrep.yaml",
	".ctxgrep.toml",
}

// LoadConfigFromDir loads the first project config found in dir, falling
// back to the user config in GetHome(). Defaults are returned when none exist.
func LoadConfigFromDir(dir string) (*Config, error) {
	if path := FindConfig(dir); path != "" {
		return LoadConfig(path)
	}
	return DefaultConfig(), nil
}

// FindConfig returns the config file LoadConfigFromDir would read, or "".
func FindConfig(dir string) string {
	for _, name := range projectConfigFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	home, err := GetHome()
	if err != nil {
		return ""
	}
	for _, name := range []string{"config.yaml", "config.toml"} {
		path := filepath.Join(home, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// FlagOverrides holds CLI flag values; nil fields were not set on the command line.
type FlagOverrides struct {
	ContextBefore *int
	ContextAfter  *int
	IgnoreCase    *bool
	LineNumbers   *bool
	Verbose       *bool
	Literal       *bool
	Mode          *string
	Color         *string
	LogLevel      *string
	LogFile       *string
	ExcludeDirs   []string
	SkipHidden    *bool
	MaxDepth      *int
	MaxFileSize   *int64
}

// MergeWithFlags merges CLI flags into the configuration.
// Non-nil flag values override configuration values; exclude dirs are appended.
func (c *Config) MergeWithFlags(f FlagOverrides) {
	if f.ContextBefore != nil {
		c.ContextBefore = *f.ContextBefore
	}
	if f.ContextAfter != nil {
		c.ContextAfter = *f.ContextAfter
	}
	if f.IgnoreCase != nil {
		c.IgnoreCase = *f.IgnoreCase
	}
	if f.LineNumbers != nil {
		c.LineNumbers = *f.LineNumbers
	}
	if f.Verbose != nil {
		c.Verbose = *f.Verbose
	}
	if f.Literal != nil {
		c.Literal = *f.Literal
	}
	if f.Mode != nil {
		c.Mode = *f.Mode
	}
	if f.Color != nil {
		c.Color = *f.Color
	}
	if f.LogLevel != nil {
		c.LogLevel = *f.LogLevel
	}
	if f.LogFile != nil {
		c.LogFile = *f.LogFile
	}
	if len(f.ExcludeDirs) > 0 {
		c.ExcludeDirs = append(c.ExcludeDirs, f.ExcludeDirs...)
	}
	if f.SkipHidden != nil {
		c.SkipHidden = *f.SkipHidden
	}
	if f.MaxDepth != nil {
		c.MaxDepth = *f.MaxDepth
	}
	if f.MaxFileSize != nil {
		c.MaxFileSize = *f.MaxFileSize
	}
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	if c.ContextBefore < 0 {
		return fmt.Errorf("context_before must be >= 0, got %d", c.ContextBefore)
	}
	if c.ContextAfter < 0 {
		return fmt.Errorf("context_after must be >= 0, got %d", c.ContextAfter)
	}

	switch c.Mode {
	case models.ModeWindow, models.ModeLine:
	default:
		return fmt.Errorf("invalid mode %q, must be one of: window, line", c.Mode)
	}

	if !display.ValidColorMode(c.Color) {
		return fmt.Errorf("invalid color %q, must be one of: auto, always, never", c.Color)
	}

	if !logger.ValidLevel(c.LogLevel) {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must be >= 0, got %d", c.MaxDepth)
	}
	if c.MaxFileSize < 0 {
		return fmt.Errorf("max_file_size must be >= 0, got %d", c.MaxFileSize)
	}

	return nil
}

// SearchSpec builds the immutable search description for pattern.
func (c *Config) SearchSpec(pattern string) models.SearchSpec {
	return models.SearchSpec{
		Pattern:         pattern,
		ContextBefore:   c.ContextBefore,
		ContextAfter:    c.ContextAfter,
		CaseInsensitive: c.IgnoreCase,
		Literal:         c.Literal,
	}
}

// WalkOptions returns the traversal settings.
func (c *Config) WalkOptions() fileutil.Options {
	return fileutil.Options{
		ExcludeDirs: c.ExcludeDirs,
		SkipHidden:  c.SkipHidden,
		MaxDepth:    c.MaxDepth,
	}
}

// ScanOptions returns the file scanning settings.
func (c *Config) ScanOptions() scanner.Options {
	return scanner.Options{
		Mode:        c.Mode,
		MaxFileSize: c.MaxFileSize,
	}
}
