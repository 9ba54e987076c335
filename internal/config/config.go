// Package config loads cless settings from a TOML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/kk-code-lab/cless/internal/textutil"
)

// EnvPath names the environment variable that overrides the config location.
const EnvPath = "CLESS_CONFIG"

// Config holds the tunable parts of a paging session.
type Config struct {
	MaxWidth    int    `toml:"max_width"`
	Delimiter   string `toml:"delimiter"`
	TabWidth    int    `toml:"tab_width"`
	LineNumbers bool   `toml:"line_numbers"`
}

// Error reports an unreadable or invalid configuration file.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		MaxWidth:    textutil.DefaultMaxWidth,
		Delimiter:   "\n",
		TabWidth:    textutil.DefaultTabWidth,
		LineNumbers: true,
	}
}

// DelimiterByte returns the single byte lines are split on.
func (c Config) DelimiterByte() byte {
	return c.Delimiter[0]
}

// Validate checks that every field holds a usable value.
func (c Config) Validate() error {
	if c.MaxWidth <= 0 {
		return fmt.Errorf("max_width must be greater than zero, got %d", c.MaxWidth)
	}
	if len(c.Delimiter) != 1 {
		return fmt.Errorf("delimiter must be exactly one byte, got %q", c.Delimiter)
	}
	if c.TabWidth < 0 {
		return fmt.Errorf("tab_width must not be negative, got %d", c.TabWidth)
	}
	return nil
}

// DefaultPath returns the config location: $CLESS_CONFIG when set, otherwise
// cless/config.toml under the user config directory.
func DefaultPath() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "cless", "config.toml")
}

// Load reads path on top of the defaults. A missing file (or empty path) is
// not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, &Error{Path: path, Err: err}
	}

	cfg, err = Parse(data)
	if err != nil {
		return cfg, &Error{Path: path, Err: err}
	}
	return cfg, nil
}

// Parse decodes TOML data over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			keys := make([]string, 0, len(strict.Errors))
			for i := range strict.Errors {
				keys = append(keys, strings.Join(strict.Errors[i].Key(), "."))
			}
			return Default(), fmt.Errorf("unknown key %s", strings.Join(keys, ", "))
		}
		return Default(), err
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}
