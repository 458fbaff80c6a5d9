package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNew(t *testing.T) {
	log := New(false)
	if log.GetLevel() == zerolog.Disabled {
		t.Error("expected logger to be enabled")
	}
}

func TestNewWithWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter(buf)

	log.Info().Str("file", "statement.csv").Msg("statement ingested")

	out := buf.String()
	if !strings.Contains(out, "statement ingested") {
		t.Errorf("expected message in output, got: %s", out)
	}
	if !strings.Contains(out, `"file":"statement.csv"`) {
		t.Errorf("expected structured field in output, got: %s", out)
	}
}

func TestLevelFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	if got := levelFromEnv(); got != zerolog.DebugLevel {
		t.Errorf("level = %v, want debug", got)
	}
	t.Setenv("LOG_LEVEL", "")
	if got := levelFromEnv(); got != zerolog.InfoLevel {
		t.Errorf("default level = %v, want info", got)
	}
}
