package util

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestInitLogging(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.Disabled)

	tests := []struct {
		level    string
		expected zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		{"verbose", zerolog.Disabled},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			InitLogging(tt.level, &bytes.Buffer{})
			assert.Equal(t, tt.expected, zerolog.GlobalLevel())
		})
	}
}

func TestTolerate(t *testing.T) {
	var out bytes.Buffer
	InitLogging("warn", &out)
	defer zerolog.SetGlobalLevel(zerolog.Disabled)

	errSeccomp := errors.New("seccomp is not supported")

	assert.NoError(t, Tolerate(false, "seccomp", nil))
	assert.NoError(t, Tolerate(true, "seccomp", nil))
	assert.Empty(t, out.String())

	assert.ErrorIs(t, Tolerate(true, "seccomp", errSeccomp), errSeccomp)
	assert.Empty(t, out.String())

	assert.NoError(t, Tolerate(false, "seccomp", errSeccomp))
	assert.Contains(t, out.String(), "sandbox step skipped")
	assert.Contains(t, out.String(), "seccomp is not supported")

	log.Logger = zerolog.Nop()
}
