// Package config provides the configuration for the Helios editing engine.
//
// The configuration is organized into logical sections:
//   - History: undo/redo stack depth
//   - Clipboard: delimiter handling for cut/copy/paste
//   - Logging: structured log output
//
// Example usage:
//
//	cfg := config.New()
//	cfg.History.MaxDepth = 100
//
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config

import (
	"github.com/helios-model/helios/pkg/errors"
)

// Config is the engine configuration a document is created with.
type Config struct {
	// History controls the undo/redo stack.
	History HistoryConfig `yaml:"history" json:"history"`

	// Clipboard controls cut/copy/paste text handling.
	Clipboard ClipboardConfig `yaml:"clipboard" json:"clipboard"`

	// Logging controls structured log output.
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// HistoryConfig contains undo/redo settings.
type HistoryConfig struct {
	// MaxDepth bounds the undo stack; the oldest entry is evicted silently
	// once the bound is exceeded. Non-positive values use the default.
	MaxDepth int `yaml:"max_depth" json:"max_depth"`
}

// ClipboardConfig contains clipboard text settings.
type ClipboardConfig struct {
	// Delimiter separates columns in multi-column clipboard text.
	// One of "tab", "comma", "semicolon", "space".
	Delimiter string `yaml:"delimiter" json:"delimiter"`

	// DetectDelimiter enables delimiter auto-detection on paste.
	DetectDelimiter bool `yaml:"detect_delimiter" json:"detect_delimiter"`
}

// LoggingConfig contains structured logging settings.
type LoggingConfig struct {
	// Level is the minimum level emitted (debug, info, warn, error).
	Level string `yaml:"level" json:"level"`

	// Encoding selects json or console output.
	Encoding string `yaml:"encoding" json:"encoding"`

	// Development enables colorized, stack-traced development output.
	Development bool `yaml:"development" json:"development"`
}

// New returns a configuration with sensible defaults.
func New() *Config {
	return &Config{
		History: HistoryConfig{
			MaxDepth: 50,
		},
		Clipboard: ClipboardConfig{
			Delimiter:       "tab",
			DetectDelimiter: true,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Encoding: "json",
		},
	}
}

// delimiterRunes maps the configured delimiter names to their runes.
var delimiterRunes = map[string]rune{
	"tab":       '\t',
	"comma":     ',',
	"semicolon": ';',
	"space":     ' ',
}

// DelimiterRune returns the configured clipboard delimiter as a rune.
func (c *ClipboardConfig) DelimiterRune() rune {
	if r, ok := delimiterRunes[c.Delimiter]; ok {
		return r
	}
	return '\t'
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.History.MaxDepth < 0 {
		return errors.Newf(errors.ErrorTypeConfig,
			"history.max_depth must not be negative, got %d", c.History.MaxDepth)
	}

	if c.Clipboard.Delimiter != "" {
		if _, ok := delimiterRunes[c.Clipboard.Delimiter]; !ok {
			return errors.Newf(errors.ErrorTypeConfig,
				"clipboard.delimiter %q is not one of tab, comma, semicolon, space",
				c.Clipboard.Delimiter)
		}
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return errors.Newf(errors.ErrorTypeConfig,
			"logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}

	switch c.Logging.Encoding {
	case "", "json", "console":
	default:
		return errors.Newf(errors.ErrorTypeConfig,
			"logging.encoding %q is not one of json, console", c.Logging.Encoding)
	}

	return nil
}
