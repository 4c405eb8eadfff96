// Package fs provides file-based export of chat sessions.
package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/sitechat"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// TranscriptHeader is the YAML frontmatter of a transcript.
type TranscriptHeader struct {
	SessionID   string    `yaml:"session_id"`
	Source      string    `yaml:"source"`
	Title       string    `yaml:"title,omitempty"`
	ContextHash string    `yaml:"context_hash"`
	Started     time.Time `yaml:"started"`
}

// NewTranscriptHeader describes a new session over the page at source.
// A missing title is left out of the frontmatter.
func NewTranscriptHeader(source, title, grounding string, started time.Time) TranscriptHeader {
	if !sitechat.Found(title) {
		title = ""
	}
	return TranscriptHeader{
		SessionID:   uuid.NewString(),
		Source:      source,
		Title:       title,
		ContextHash: ContextHash(grounding),
		Started:     started.UTC(),
	}
}

// ContextHash fingerprints a grounding context so transcripts of the same
// page content can be matched up.
func ContextHash(grounding string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(grounding))
}

// FormatHeader renders the header as a frontmatter block followed by a
// top-level heading.
func FormatHeader(h TranscriptHeader) (string, error) {
	data, err := yaml.Marshal(h)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("---\n")
	b.Write(data)
	b.WriteString("---\n\n")
	b.WriteString("# Chat transcript\n")
	return b.String(), nil
}

// FormatExchange renders one question and its answer.
func FormatExchange(n int, question, answer string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n## Exchange %d\n\n", n)
	fmt.Fprintf(&b, "**Question:** %s\n\n", question)
	b.WriteString(answer)
	b.WriteString("\n")
	return b.String()
}

// Ensure TranscriptWriter implements sitechat.TranscriptWriter at compile time.
var _ sitechat.TranscriptWriter = (*TranscriptWriter)(nil)

// TranscriptWriter writes a session transcript as a markdown file.
// Exchanges go to path.tmp and the file is moved to path on Close.
type TranscriptWriter struct {
	path  string
	file  *os.File
	count int
}

// NewTranscriptWriter creates the transcript file and writes its header.
func NewTranscriptWriter(path string, header TranscriptHeader) (*TranscriptWriter, error) {
	if path == "" {
		return nil, sitechat.Errorf(sitechat.EINVALID, "transcript path required")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	head, err := FormatHeader(header)
	if err != nil {
		return nil, err
	}

	file, err := os.Create(path + ".tmp")
	if err != nil {
		return nil, err
	}
	if _, err := file.WriteString(head); err != nil {
		_ = file.Close()
		_ = os.Remove(file.Name())
		return nil, err
	}

	return &TranscriptWriter{path: path, file: file}, nil
}

// Path returns the final location of the transcript.
func (w *TranscriptWriter) Path() string {
	return w.path
}

// WriteExchange appends one answered question.
func (w *TranscriptWriter) WriteExchange(question, answer string) error {
	if w.file == nil {
		return sitechat.Errorf(sitechat.EINVALID, "transcript closed")
	}
	w.count++
	_, err := w.file.WriteString(FormatExchange(w.count, question, answer))
	return err
}

// Close flushes the transcript and moves it into place. Closing twice is a
// no-op.
func (w *TranscriptWriter) Close() error {
	if w.file == nil {
		return nil
	}
	file := w.file
	w.file = nil

	if err := file.Sync(); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	return os.Rename(file.Name(), w.path)
}
