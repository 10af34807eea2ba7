package common

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/lni/dragonboat/v4/logger"
)

func TestParseLogLevel(t *testing.T) {
	testCases := []struct {
		input    string
		expected logger.LogLevel
	}{
		{"debug", logger.DEBUG},
		{"INFO", logger.INFO},
		{"warn", logger.WARNING},
		{"warning", logger.WARNING},
		{"Error", logger.ERROR},
	}

	for _, tc := range testCases {
		got, err := ParseLogLevel(tc.input)
		if err != nil {
			t.Errorf("%s: unexpected error %v", tc.input, err)
			continue
		}
		if got != tc.expected {
			t.Errorf("%s: expected %d, got %d", tc.input, tc.expected, got)
		}
	}

	if _, err := ParseLogLevel("verbose"); !errors.Is(err, ErrInvalidLogLevel) {
		t.Errorf("Expected ErrInvalidLogLevel, got %v", err)
	}
	if err := InitLoggers("loud"); !errors.Is(err, ErrInvalidLogLevel) {
		t.Errorf("InitLoggers: expected ErrInvalidLogLevel, got %v", err)
	}
}

func TestLoggerFormatAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := &dBinLogger{name: "codec", level: logger.INFO, logger: log.New(&buf, "", 0)}

	l.Debugf("hidden %d", 1)
	l.Infof("shown %d", 2)
	l.Errorf("failed: %s", "x")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("Debug message logged at info level: %q", out)
	}
	if !strings.Contains(out, "INFO  | codec      | shown 2") {
		t.Errorf("Unexpected info line: %q", out)
	}
	if !strings.Contains(out, "ERROR | codec      | failed: x") {
		t.Errorf("Unexpected error line: %q", out)
	}
}

func TestToolConfigString(t *testing.T) {
	c := &ToolConfig{LogLevel: "info", Compression: "zstd", Serializer: "binary"}
	s := c.String()

	for _, want := range []string{"LOGGING", "Log Level", "zstd", "binary", "disabled"} {
		if !strings.Contains(s, want) {
			t.Errorf("Expected %q in:\n%s", want, s)
		}
	}
}
