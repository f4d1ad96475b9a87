package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		wantLevel zerolog.Level
	}{
		{"default warn level", 0, zerolog.WarnLevel},
		{"info level", 1, zerolog.InfoLevel},
		{"debug level", 2, zerolog.DebugLevel},
		{"trace level", 3, zerolog.TraceLevel},
		{"high verbosity defaults to trace", 5, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			t.Setenv("XDG_STATE_HOME", tempDir)

			SetupLogger(tt.verbosity)

			if zerolog.GlobalLevel() != tt.wantLevel {
				t.Errorf("SetupLogger(%d) set level to %v, want %v",
					tt.verbosity, zerolog.GlobalLevel(), tt.wantLevel)
			}
		})
	}
}

func TestGetLogger(t *testing.T) {
	var buf bytes.Buffer
	old := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = old }()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	logger := GetLogger("rules.walker")
	logger.Info().Msg("hello")

	out := buf.String()
	if !strings.Contains(out, `"component":"rules.walker"`) {
		t.Errorf("log output missing component field: %s", out)
	}
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	old := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = old }()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	logger := WithFields(map[string]interface{}{"rootCount": 3})
	logger.Info().Msg("hello")

	if !strings.Contains(buf.String(), `"rootCount":3`) {
		t.Errorf("log output missing field: %s", buf.String())
	}
}
