package logger

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
)

func captureLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	originalLogger := Logger
	t.Cleanup(func() {
		Logger = originalLogger
		SetLogLevel(INFO)
	})

	var buf bytes.Buffer
	Logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return &buf
}

func TestLogLevelFiltering(t *testing.T) {
	buf := captureLogger(t)

	SetLogLevel(INFO)
	Debug("debug message should be filtered")
	Info("info message should appear")

	output := buf.String()
	if strings.Contains(output, "debug message should be filtered") {
		t.Fatalf("debug message was logged at INFO level:\n%s", output)
	}
	if !strings.Contains(output, "info message should appear") {
		t.Fatalf("info message was not logged:\n%s", output)
	}
}

func TestWarnLevelFiltersInfo(t *testing.T) {
	buf := captureLogger(t)

	SetLogLevel(WARN)
	Info("info should be filtered")
	Warn("warn should appear")
	Error("error should appear")

	output := buf.String()
	if strings.Contains(output, "info should be filtered") {
		t.Fatalf("info message was logged at WARN level:\n%s", output)
	}
	if !strings.Contains(output, "warn should appear") || !strings.Contains(output, "error should appear") {
		t.Fatalf("expected warn and error messages, got:\n%s", output)
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"debug":   DEBUG,
		" INFO ":  INFO,
		"warning": WARN,
		"error":   ERROR,
	}
	for input, want := range cases {
		got, err := ParseLogLevel(input)
		if err != nil {
			t.Fatalf("ParseLogLevel(%q) returned error: %v", input, err)
		}
		if got != want {
			t.Fatalf("ParseLogLevel(%q) = %v, want %v", input, got, want)
		}
	}

	if _, err := ParseLogLevel("loud"); err == nil {
		t.Fatal("expected an error for an unknown level")
	}
}

func TestConfigureWritesToFile(t *testing.T) {
	originalLogger := Logger
	t.Cleanup(func() {
		Logger = originalLogger
		SetLogLevel(INFO)
	})

	path := filepath.Join(t.TempDir(), "logs", "bot.log")
	if err := Configure(Options{Level: "debug", File: path}); err != nil {
		t.Fatalf("Configure returned error: %v", err)
	}
	if !Enabled(DEBUG) {
		t.Fatal("expected debug level to be enabled")
	}
}

func TestConfigureReportsInvalidLevel(t *testing.T) {
	originalLogger := Logger
	t.Cleanup(func() {
		Logger = originalLogger
		SetLogLevel(INFO)
	})

	if err := Configure(Options{Level: "nope"}); err == nil {
		t.Fatal("expected an error for an invalid level")
	}
	if !Enabled(INFO) || Enabled(DEBUG) {
		t.Fatal("expected logger to fall back to INFO")
	}
}
