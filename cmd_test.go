package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	var query string
	server := httptest.NewServer(http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
		query = req.URL.RawQuery
		res.Write([]byte(`[]`))
	}))
	defer server.Close()

	var out bytes.Buffer
	cmd := SetupCommands()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--nightscout", server.URL, "--token", "T", "--from", "2023-01-01", "--count", "5", "--log-level", "error"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "find[eventType][$eq]=Profile%20Switch&count=5&find[created_at][$gte]=2023-01-01&token=T", query)
	assert.Empty(t, out.String())
}

func TestRootCommand_InvalidConfig(t *testing.T) {
	cmd := SetupCommands()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--minute-mode", "nope"})

	assert.Error(t, cmd.Execute())
}

func TestRootCommand_RejectsArgs(t *testing.T) {
	cmd := SetupCommands()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"extra"})

	assert.Error(t, cmd.Execute())
}
