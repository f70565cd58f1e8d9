package main

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseConfig(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return NewConfig(fs)
}

func TestNewConfig_Defaults(t *testing.T) {
	conf, err := parseConfig(t)
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:1337", conf.Nightscout)
	assert.Equal(t, "", conf.Token)
	assert.Equal(t, "", conf.From)
	assert.Equal(t, "", conf.Count)
	assert.Equal(t, "legacy", conf.MinuteMode)
	assert.False(t, conf.Select)
	assert.Equal(t, time.Duration(0), conf.Timeout)
	assert.Equal(t, "info", conf.LogLevel)
}

func TestNewConfig_Flags(t *testing.T) {
	conf, err := parseConfig(t,
		"--nightscout", "https://ns.example.com",
		"--token", "T",
		"--from", "2023-01-01",
		"--count", "5",
		"--minute-mode", "fixed",
		"--select",
		"--timeout", "30s",
		"--log-level", "debug",
	)
	require.NoError(t, err)

	assert.Equal(t, "https://ns.example.com", conf.Nightscout)
	assert.Equal(t, "T", conf.Token)
	assert.Equal(t, "2023-01-01", conf.From)
	assert.Equal(t, "5", conf.Count)
	assert.Equal(t, "fixed", conf.MinuteMode)
	assert.True(t, conf.Select)
	assert.Equal(t, 30*time.Second, conf.Timeout)
	assert.Equal(t, "debug", conf.LogLevel)
}

func TestNewConfig_CountIsNotValidated(t *testing.T) {
	conf, err := parseConfig(t, "--count", "lots")
	require.NoError(t, err)
	assert.Equal(t, "lots", conf.Count)
}

func TestNewConfig_InvalidMinuteMode(t *testing.T) {
	_, err := parseConfig(t, "--minute-mode", "rounded")
	assert.Error(t, err)
}

func TestNewConfig_InvalidLogLevel(t *testing.T) {
	_, err := parseConfig(t, "--log-level", "verbose")
	assert.Error(t, err)
}

func TestNewConfig_InvalidURL(t *testing.T) {
	_, err := parseConfig(t, "--nightscout", "not a url")
	assert.Error(t, err)
}

func TestNewConfig_EmptyURL(t *testing.T) {
	_, err := parseConfig(t, "--nightscout", "")
	assert.Error(t, err)
}
