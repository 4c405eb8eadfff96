package main_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	main "github.com/fwojciec/sitechat/cmd/sitechat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLI_Defaults(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli,
		kong.Writers(&bytes.Buffer{}, &bytes.Buffer{}),
		kong.Exit(func(int) {}),
		kong.Vars{"model": "gemini-2.5-flash", "user_agent": "test-agent"},
	)
	require.NoError(t, err)

	_, err = parser.Parse([]string{"acme.example", "--api-key", "k"})
	require.NoError(t, err)

	assert.Equal(t, "acme.example", cli.URL)
	assert.Equal(t, "k", cli.APIKey)
	assert.InDelta(t, 0.7, cli.Temperature, 0.001)
	assert.Equal(t, int32(500), cli.MaxTokens)
	assert.Equal(t, 10, cli.History)
	assert.Equal(t, 10*time.Second, cli.Timeout)
	assert.Equal(t, 2, cli.Retries)
	assert.Equal(t, "test-agent", cli.UserAgent)
	assert.Empty(t, cli.Transcript)
	assert.False(t, cli.Debug)
}

func TestCLI_Flags(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli,
		kong.Writers(&bytes.Buffer{}, &bytes.Buffer{}),
		kong.Exit(func(int) {}),
		kong.Vars{"model": "gemini-2.5-flash", "user_agent": "test-agent"},
	)
	require.NoError(t, err)

	_, err = parser.Parse([]string{
		"--api-key", "k",
		"--model", "gemini-2.0-flash",
		"--temperature", "0.2",
		"--max-tokens", "200",
		"--history", "4",
		"--timeout", "3s",
		"--retries", "0",
		"--debug",
	})
	require.NoError(t, err)

	assert.Empty(t, cli.URL)
	assert.Equal(t, "gemini-2.0-flash", cli.Model)
	assert.InDelta(t, 0.2, cli.Temperature, 0.001)
	assert.Equal(t, int32(200), cli.MaxTokens)
	assert.Equal(t, 4, cli.History)
	assert.Equal(t, 3*time.Second, cli.Timeout)
	assert.Equal(t, 0, cli.Retries)
	assert.True(t, cli.Debug)
}
