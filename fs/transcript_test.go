package fs_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/sitechat"
	"github.com/fwojciec/sitechat/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var started = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

// frontmatter returns the YAML between the leading "---" fences.
func frontmatter(t *testing.T, content string) fs.TranscriptHeader {
	t.Helper()

	require.True(t, strings.HasPrefix(content, "---\n"))
	front, _, ok := strings.Cut(strings.TrimPrefix(content, "---\n"), "\n---\n")
	require.True(t, ok, "frontmatter should be terminated")

	var h fs.TranscriptHeader
	require.NoError(t, yaml.Unmarshal([]byte(front), &h))
	return h
}

// Story: Transcript Export
// A session can be saved as a markdown file for later reading

func TestTranscriptWriter_WritesHeaderAndExchanges(t *testing.T) {
	t.Parallel()

	// Given a transcript for a session over the Acme page
	path := filepath.Join(t.TempDir(), "sessions", "acme.md")
	header := fs.NewTranscriptHeader("https://acme.example", "Acme", "Title: Acme", started)
	w, err := fs.NewTranscriptWriter(path, header)
	require.NoError(t, err)

	// When two exchanges are written and the transcript is closed
	require.NoError(t, w.WriteExchange("What does Acme sell?", "Anvils."))
	require.NoError(t, w.WriteExchange("Where?", sitechat.FallbackAnswer))
	require.NoError(t, w.Close())

	// Then the file has the frontmatter then both exchanges in order
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	got := frontmatter(t, content)
	assert.Equal(t, header.SessionID, got.SessionID)
	assert.Equal(t, "https://acme.example", got.Source)
	assert.Equal(t, "Acme", got.Title)
	assert.Equal(t, header.ContextHash, got.ContextHash)
	assert.True(t, started.Equal(got.Started))
	assert.Contains(t, content, "# Chat transcript\n")
	first := strings.Index(content, "## Exchange 1\n\n**Question:** What does Acme sell?\n\nAnvils.\n")
	second := strings.Index(content, "## Exchange 2\n\n**Question:** Where?\n\n"+sitechat.FallbackAnswer+"\n")
	assert.Positive(t, first)
	assert.Greater(t, second, first)
}

func TestTranscriptWriter_MovesIntoPlaceOnClose(t *testing.T) {
	t.Parallel()

	// Given an open transcript
	path := filepath.Join(t.TempDir(), "acme.md")
	w, err := fs.NewTranscriptWriter(path, fs.NewTranscriptHeader("https://acme.example", "Acme", "", started))
	require.NoError(t, err)
	require.NoError(t, w.WriteExchange("Q", "A"))

	// Then only the temporary file exists before close
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "final file should not exist until close")
	_, err = os.Stat(path + ".tmp")
	require.NoError(t, err)

	// When it is closed
	require.NoError(t, w.Close())

	// Then the final file exists and the temporary one is gone
	_, err = os.Stat(path)
	require.NoError(t, err)
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
	assert.Equal(t, path, w.Path())
}

func TestTranscriptWriter_CloseTwiceIsNoop(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "acme.md")
	w, err := fs.NewTranscriptWriter(path, fs.NewTranscriptHeader("https://acme.example", "Acme", "", started))
	require.NoError(t, err)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}

func TestTranscriptWriter_WriteAfterCloseFails(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "acme.md")
	w, err := fs.NewTranscriptWriter(path, fs.NewTranscriptHeader("https://acme.example", "Acme", "", started))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	err = w.WriteExchange("Q", "A")

	require.Error(t, err)
	assert.Equal(t, sitechat.EINVALID, sitechat.ErrorCode(err))
}

func TestNewTranscriptWriter_RequiresPath(t *testing.T) {
	t.Parallel()

	_, err := fs.NewTranscriptWriter("", fs.TranscriptHeader{})

	require.Error(t, err)
	assert.Equal(t, sitechat.EINVALID, sitechat.ErrorCode(err))
}

func TestNewTranscriptHeader(t *testing.T) {
	t.Parallel()

	t.Run("fills session id and context hash", func(t *testing.T) {
		t.Parallel()

		h := fs.NewTranscriptHeader("https://acme.example", "Acme", "Title: Acme", started)

		assert.Len(t, h.SessionID, 36)
		assert.Equal(t, "https://acme.example", h.Source)
		assert.Equal(t, "Acme", h.Title)
		assert.Equal(t, fs.ContextHash("Title: Acme"), h.ContextHash)
		assert.Equal(t, started, h.Started)
	})

	t.Run("each session gets its own id", func(t *testing.T) {
		t.Parallel()

		a := fs.NewTranscriptHeader("https://acme.example", "Acme", "", started)
		b := fs.NewTranscriptHeader("https://acme.example", "Acme", "", started)

		assert.NotEqual(t, a.SessionID, b.SessionID)
	})

	t.Run("missing title is omitted from frontmatter", func(t *testing.T) {
		t.Parallel()

		h := fs.NewTranscriptHeader("https://acme.example", sitechat.NotFound, "", started)
		head, err := fs.FormatHeader(h)
		require.NoError(t, err)

		assert.Empty(t, h.Title)
		assert.NotContains(t, head, "title:")
	})
}

func TestContextHash(t *testing.T) {
	t.Parallel()

	assert.Equal(t, fs.ContextHash("Title: Acme"), fs.ContextHash("Title: Acme"))
	assert.NotEqual(t, fs.ContextHash("Title: Acme"), fs.ContextHash("Title: Acme2"))
	assert.Len(t, fs.ContextHash(""), 16)
}
