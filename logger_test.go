package main

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewLogger("warn", &buf)
	require.NoError(t, err)
	assert.Equal(t, zerolog.WarnLevel, log.GetLevel())

	log.Info().Msg("hidden")
	assert.Empty(t, buf.String())

	log.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	_, err := NewLogger("verbose", &bytes.Buffer{})
	assert.Error(t, err)
}
