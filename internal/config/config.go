package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Backend kinds.
const (
	BackendTerminal = "terminal"
	BackendNull     = "null"
	BackendVGA      = "vga"
)

// Config is the complete vgacon configuration.
type Config struct {
	Display   DisplayConfig   `toml:"display"`
	Idle      IdleConfig      `toml:"idle"`
	Indicator IndicatorConfig `toml:"indicator"`
	Logging   LoggingConfig   `toml:"logging"`
	Backend   BackendConfig   `toml:"backend"`
}

// DisplayConfig sizes the screen and picks its colours.
type DisplayConfig struct {
	Width         int `toml:"width"`
	Height        int `toml:"height"`
	TabWidth      int `toml:"tab_width"`
	DefaultAttr   int `toml:"default_attr"`
	HighlightAttr int `toml:"highlight_attr"`
}

// IdleConfig controls the idle clearer.
type IdleConfig struct {
	Enabled  bool     `toml:"enabled"`
	Interval Duration `toml:"interval"`
}

// IndicatorConfig bounds the Caps-Lock light handshake.
type IndicatorConfig struct {
	// MaxPolls caps status and ack polls per byte. Zero waits forever.
	MaxPolls int      `toml:"max_polls"`
	Timeout  Duration `toml:"timeout"`
}

// LoggingConfig selects the log level and destination.
type LoggingConfig struct {
	Level string `toml:"level"`
	// File is the log path. Empty logs to stderr, except for the
	// terminal backend where logging is discarded.
	File string `toml:"file"`
}

// BackendConfig selects the display backend.
type BackendConfig struct {
	Kind string `toml:"kind"`
}

// Duration is a time.Duration written as a Go duration string in TOML.
type Duration time.Duration

// D returns the value as a time.Duration.
func (d Duration) D() time.Duration {
	return time.Duration(d)
}

// String returns the Go duration string.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Default returns the built-in configuration: an 80x25 screen, white on
// black text with light-red highlights, and a 200 second idle clear.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			Width:         80,
			Height:        25,
			TabWidth:      4,
			DefaultAttr:   0x0F,
			HighlightAttr: 0x0C,
		},
		Idle: IdleConfig{
			Enabled:  true,
			Interval: Duration(200 * time.Second),
		},
		Indicator: IndicatorConfig{
			MaxPolls: 100000,
			Timeout:  Duration(500 * time.Millisecond),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Backend: BackendConfig{
			Kind: BackendTerminal,
		},
	}
}

// Clone returns a copy of c.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Validate checks every setting and returns all problems joined.
func (c *Config) Validate() error {
	var errs []error
	add := func(path, msg string, v any, sentinel error) {
		errs = append(errs, &ValidationError{Path: path, Message: msg, Value: v, Err: sentinel})
	}

	if c.Display.Width < 1 {
		add("display.width", "must be positive", c.Display.Width, nil)
	}
	if c.Display.Height < 1 {
		add("display.height", "must be positive", c.Display.Height, nil)
	}
	if c.Display.TabWidth < 1 || (c.Display.Width >= 1 && c.Display.TabWidth > c.Display.Width) {
		add("display.tab_width", "must be between 1 and the display width", c.Display.TabWidth, nil)
	}
	if !validAttr(c.Display.DefaultAttr) {
		add("display.default_attr", "must fit in one byte", c.Display.DefaultAttr, nil)
	}
	if !validAttr(c.Display.HighlightAttr) {
		add("display.highlight_attr", "must fit in one byte", c.Display.HighlightAttr, nil)
	}
	if c.Idle.Enabled && c.Idle.Interval.D() < time.Millisecond {
		add("idle.interval", "must be at least 1ms", c.Idle.Interval, nil)
	}
	if c.Indicator.MaxPolls < 0 {
		add("indicator.max_polls", "must not be negative", c.Indicator.MaxPolls, nil)
	}
	if c.Indicator.Timeout.D() < 0 {
		add("indicator.timeout", "must not be negative", c.Indicator.Timeout, nil)
	}
	if _, err := ParseLevel(c.Logging.Level); err != nil {
		add("logging.level", "must be debug, info, warn or error", c.Logging.Level, ErrUnknownLevel)
	}
	switch c.Backend.Kind {
	case BackendTerminal, BackendNull, BackendVGA:
	default:
		add("backend.kind", "must be terminal, null or vga", c.Backend.Kind, ErrUnknownBackend)
	}

	return errors.Join(errs...)
}

func validAttr(v int) bool {
	return v >= 0 && v <= 0xFF
}

// Level is a log level name normalised to lower case.
type Level string

// Log levels.
const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// ParseLevel parses a level name. "warning" is accepted for warn.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
}

// Reloadable reports whether every difference between c and next can be
// applied to a running console. Size, backend and logging changes need
// a restart.
func (c *Config) Reloadable(next *Config) bool {
	return c.Display.Width == next.Display.Width &&
		c.Display.Height == next.Display.Height &&
		c.Backend == next.Backend &&
		c.Logging == next.Logging
}
