// Package config handles configuration loading from TOML files and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
)

// Config is the root configuration structure.
type Config struct {
	Log   LogConfig   `toml:"log"`
	Parse ParseConfig `toml:"parse"`
	Cache CacheConfig `toml:"cache"`
	UI    UIConfig    `toml:"ui"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is a zerolog level name: trace, debug, info, warn, error.
	Level string `toml:"level"`
}

// ParseConfig controls which files the index parses and how.
type ParseConfig struct {
	MaxFileKB int `toml:"max_file_kb"`
	// Workers bounds concurrent parses. 0 means one per CPU.
	Workers int `toml:"workers"`
	// Exclude holds extra gitignore-style patterns applied on top of .gitignore.
	Exclude []string `toml:"exclude"`
}

// WorkersOrDefault returns the configured worker count or GOMAXPROCS.
func (p ParseConfig) WorkersOrDefault() int {
	if p.Workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return p.Workers
}

// MaxFileBytes returns the size limit in bytes, 1MB if unset.
func (p ParseConfig) MaxFileBytes() int64 {
	if p.MaxFileKB <= 0 {
		return 1 << 20
	}
	return int64(p.MaxFileKB) << 10
}

// CacheConfig holds outline cache settings.
type CacheConfig struct {
	Disabled bool   `toml:"disabled"`
	Path     string `toml:"path"`
	TTLHours int    `toml:"ttl_hours"`
}

// CacheTTLOrDefault returns the configured TTL or 24 hours if unset.
func (c CacheConfig) CacheTTLOrDefault() int {
	if c.TTLHours <= 0 {
		return 24
	}
	return c.TTLHours
}

// PathOrDefault returns the configured database path or cache.db under DataDir.
func (c CacheConfig) PathOrDefault() (string, error) {
	if c.Path != "" {
		return c.Path, nil
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "cache.db"), nil
}

// UIConfig holds terminal output settings.
type UIConfig struct {
	// SyntaxTheme is the Chroma theme for source excerpts. Defaults to "vulcan".
	SyntaxTheme string `toml:"syntax_theme"`
	// ExcerptWidth truncates highlighted source lines. Defaults to 100 columns.
	ExcerptWidth int `toml:"excerpt_width"`
}

// SyntaxThemeOrDefault returns the configured syntax theme or "vulcan" if unset.
func (u UIConfig) SyntaxThemeOrDefault() string {
	if u.SyntaxTheme == "" {
		return "vulcan"
	}
	return u.SyntaxTheme
}

// ExcerptWidthOrDefault returns the configured excerpt width or 100.
func (u UIConfig) ExcerptWidthOrDefault() int {
	if u.ExcerptWidth <= 0 {
		return 100
	}
	return u.ExcerptWidth
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{Log: LogConfig{Level: "info"}}
}

// Load reads configuration from a TOML file and applies environment variable
// overrides. An empty path loads the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate returns an error if the configuration is invalid.
func (c *Config) Validate() error {
	var errs []error

	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level=%q is invalid: %v", c.Log.Level, err))
	}
	if c.Parse.MaxFileKB < 0 {
		errs = append(errs, fmt.Errorf("parse.max_file_kb=%d must not be negative", c.Parse.MaxFileKB))
	}
	if c.Parse.Workers < 0 {
		errs = append(errs, fmt.Errorf("parse.workers=%d must not be negative", c.Parse.Workers))
	}
	if c.Cache.TTLHours < 0 {
		errs = append(errs, fmt.Errorf("cache.ttl_hours=%d must not be negative", c.Cache.TTLHours))
	}
	if c.UI.ExcerptWidth != 0 && c.UI.ExcerptWidth < 20 {
		errs = append(errs, fmt.Errorf("ui.excerpt_width=%d must be at least 20", c.UI.ExcerptWidth))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) error {
	var errs []error
	for _, setter := range []struct {
		env   string
		apply func(string)
	}{
		{"CTREE_LOG_LEVEL", func(v string) { cfg.Log.Level = v }},
		{"CTREE_CACHE_PATH", func(v string) { cfg.Cache.Path = v }},
		{"CTREE_THEME", func(v string) { cfg.UI.SyntaxTheme = v }},
		{"CTREE_WORKERS", func(v string) {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("CTREE_WORKERS=%q: %w", v, err))
				return
			}
			cfg.Parse.Workers = n
		}},
	} {
		if v := os.Getenv(setter.env); v != "" {
			setter.apply(v)
		}
	}
	return errors.Join(errs...)
}

// DataDir returns the path to the ctree data directory (~/.config/ctree).
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "ctree"), nil
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", err
	}
	return dir, nil
}
