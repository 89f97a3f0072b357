// pkg/logging/logging_test.go
package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestParseLogLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"":      zerolog.WarnLevel,
		"debug": zerolog.DebugLevel,
		"INFO":  zerolog.InfoLevel,
		"error": zerolog.ErrorLevel,
		"bogus": zerolog.WarnLevel,
	}

	for input, expected := range cases {
		if got := parseLogLevel(input); got != expected {
			t.Errorf("parseLogLevel(%q) = %s, expected %s", input, got, expected)
		}
	}
}

func TestConfigureGlobalLogging_WritesToConfiguredWriter(t *testing.T) {
	var buf bytes.Buffer
	old := getLogWriter()
	defer SetLogWriter(old)

	SetLogWriter(&buf)
	if err := ConfigureGlobalLogging("info", "text"); err != nil {
		t.Fatalf("ConfigureGlobalLogging returned error: %v", err)
	}

	log.Info().Str("component", "test").Msg("hello from test")

	if !strings.Contains(buf.String(), "hello from test") {
		t.Fatalf("expected log output in buffer, got: %q", buf.String())
	}
}

func TestConfigureGlobalLogging_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	old := getLogWriter()
	defer SetLogWriter(old)

	SetLogWriter(&buf)
	if err := ConfigureGlobalLogging("error", "text"); err != nil {
		t.Fatalf("ConfigureGlobalLogging returned error: %v", err)
	}

	log.Info().Msg("should be filtered")

	if buf.Len() != 0 {
		t.Fatalf("expected no output below error level, got: %q", buf.String())
	}
}
