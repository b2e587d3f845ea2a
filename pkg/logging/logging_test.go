package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{LogLevel(999), "UNKNOWN"},
	}

	for _, test := range tests {
		result := test.level.String()
		if result != test.expected {
			t.Errorf("LogLevel(%d).String() = %s, expected %s", test.level, result, test.expected)
		}
	}
}

func TestLogLevel_SlogLevel(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected slog.Level
	}{
		{LevelDebug, slog.LevelDebug},
		{LevelInfo, slog.LevelInfo},
		{LevelWarn, slog.LevelWarn},
		{LevelError, slog.LevelError},
		{LogLevel(999), slog.LevelInfo}, // Default for unknown
	}

	for _, test := range tests {
		result := test.level.SlogLevel()
		if result != test.expected {
			t.Errorf("LogLevel(%d).SlogLevel() = %v, expected %v", test.level, result, test.expected)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
		wantErr  bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"Error", LevelError, false},
		{"loud", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestLogger_WritesSubsystemAndMessage(t *testing.T) {
	var buf bytes.Buffer
	lgr, err := New(Options{Level: LevelInfo, Output: &buf})
	require.NoError(t, err)
	defer lgr.Close()

	lgr.Info("test-subsystem", "test message %d", 42)

	output := buf.String()
	assert.Contains(t, output, "test message 42")
	assert.Contains(t, output, "subsystem=test-subsystem")
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	lgr, err := New(Options{Level: LevelWarn, Output: &buf})
	require.NoError(t, err)

	lgr.Debug("test", "debug message")
	lgr.Info("test", "info message")
	lgr.Warn("test", "warn message")

	output := buf.String()
	assert.NotContains(t, output, "debug message")
	assert.NotContains(t, output, "info message")
	assert.Contains(t, output, "warn message")
}

func TestLogger_ErrorAttribute(t *testing.T) {
	var buf bytes.Buffer
	lgr, err := New(Options{Level: LevelDebug, Output: &buf})
	require.NoError(t, err)

	lgr.Error("HttpClient", errors.New("connection refused"), "request failed")

	assert.Contains(t, buf.String(), "connection refused")
	assert.Contains(t, buf.String(), "level=ERROR")
}

func TestLogger_FileReceivesDebug(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "ucs_cli.log")

	lgr, err := New(Options{Level: LevelError, Output: &buf, FilePath: path})
	require.NoError(t, err)

	lgr.Debug("QueryRunner", "URL for request is %s", "http://localhost:4567/cli/getraswithfilters")
	require.NoError(t, lgr.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "URL for request is")
	assert.Empty(t, buf.String(), "terminal output should stay quiet below error level")
}

func TestDiscard(t *testing.T) {
	lgr := Discard()
	// Must not panic and must not need closing.
	lgr.Info("test", "dropped")
	assert.NoError(t, lgr.Close())
}

func TestNilLoggerIsSafe(t *testing.T) {
	var lgr *Logger
	assert.NotPanics(t, func() {
		lgr.Warn("test", "nothing happens")
	})
}
