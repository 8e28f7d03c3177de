package app

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		result := tt.level.String()
		if result != tt.expected {
			t.Errorf("LogLevel(%d).String() = '%s', expected '%s'", tt.level, result, tt.expected)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{"info", LogLevelInfo},
		{"warn", LogLevelWarn},
		{"warning", LogLevelWarn},
		{"error", LogLevelError},
		{"unknown", LogLevelInfo}, // Default
		{"", LogLevelInfo},        // Default
	}

	for _, tt := range tests {
		result := ParseLogLevel(tt.input)
		if result != tt.expected {
			t.Errorf("ParseLogLevel('%s') = %d, expected %d", tt.input, result, tt.expected)
		}
	}
}

func TestNewLogger_DefaultOutput(t *testing.T) {
	logger := NewLogger(LoggerConfig{})
	if logger.core.output == nil {
		t.Error("expected default output to be set")
	}
}

func TestLogger_Log(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelDebug, Output: &buf, Prefix: "test"})

	logger.Info("typed %d keys", 3)

	output := buf.String()
	if !strings.Contains(output, "[INFO] test: typed 3 keys") {
		t.Errorf("unexpected log line: %q", output)
	}
	if !strings.HasSuffix(output, "\n") {
		t.Error("log line should end with a newline")
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelWarn, Output: &buf})

	logger.Debug("debug")
	logger.Info("info")
	if buf.Len() != 0 {
		t.Errorf("messages below warn were logged: %q", buf.String())
	}

	logger.Warn("warn")
	logger.Error("error")
	if got := strings.Count(buf.String(), "\n"); got != 2 {
		t.Errorf("logged %d lines, want 2", got)
	}
}

func TestLogger_SetLevelIsShared(t *testing.T) {
	var buf bytes.Buffer
	root := NewLogger(LoggerConfig{Level: LogLevelError, Output: &buf})
	child := root.WithComponent("console")

	root.SetLevel(LogLevelDebug)
	child.Debug("now visible")

	if !strings.Contains(buf.String(), "now visible") {
		t.Error("derived logger should follow the root level")
	}
}

func TestLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf})

	logger.WithField("zeta", 1).WithComponent("backend").Info("hello")

	if !strings.Contains(buf.String(), "hello {component=backend, zeta=1}") {
		t.Errorf("fields not sorted or missing: %q", buf.String())
	}
	if logger.Field("component") != nil {
		t.Error("WithField should not change the parent")
	}
}

func TestNewSessionLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSessionLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf})

	id, ok := logger.Field("session").(string)
	if !ok {
		t.Fatalf("session field = %v", logger.Field("session"))
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("session id %q is not a UUID: %v", id, err)
	}

	other := NewSessionLogger(LoggerConfig{Output: &buf})
	if other.Field("session") == id {
		t.Error("sessions should get distinct ids")
	}
}

func TestNullLogger(t *testing.T) {
	// Must not panic.
	NullLogger.Info("ignored")
	NullLogger.WithComponent("x").Error("ignored")
	NullLogger.SetLevel(LogLevelDebug)
}
