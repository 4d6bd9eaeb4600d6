package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Level != LevelInfo {
		t.Errorf("Expected default level to be Info, got %s", cfg.Level)
	}

	if cfg.Pretty != false {
		t.Error("Expected default pretty to be false")
	}
}

func TestSetup_WritesAtConfiguredLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup(Config{
		Level:  LevelInfo,
		Pretty: false,
		Output: &buf,
	})

	logger.Info().Msg("visible message")
	logger.Debug().Msg("suppressed message")

	out := buf.String()
	if !strings.Contains(out, "visible message") {
		t.Errorf("Expected info output, got %q", out)
	}
	if strings.Contains(out, "suppressed message") {
		t.Errorf("Debug output should be filtered at info level, got %q", out)
	}
}

func TestSetup_PrettyOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup(Config{
		Level:  LevelInfo,
		Pretty: true,
		Output: &buf,
	})

	logger.Info().Msg("console message")

	if !strings.Contains(buf.String(), "console message") {
		t.Errorf("Expected console output, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    LogLevel
		expected zerolog.Level
	}{
		{LevelDebug, zerolog.DebugLevel},
		{LevelInfo, zerolog.InfoLevel},
		{LevelWarn, zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{LevelError, zerolog.ErrorLevel},
		{"INFO", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(string(tt.input), func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNewLogger_ComponentField(t *testing.T) {
	var buf bytes.Buffer
	Setup(Config{Level: LevelDebug, Output: &buf})

	logger := NewLogger("collector")
	logger.Info().Msg("tagged message")

	out := buf.String()
	if !strings.Contains(out, `"component":"collector"`) {
		t.Errorf("Expected component field, got %q", out)
	}
}
