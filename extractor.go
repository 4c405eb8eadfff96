package sitechat

import (
	"strings"
	"unicode/utf8"
)

// NotFound marks a Record field for which the page had no usable text.
const NotFound = "not found"

// Extraction bounds.
const (
	MaxMainContentLen = 3000 // characters
	MaxFullTextLen    = 5000 // characters
	MaxHeadings       = 20
	MaxLinkCandidates = 15
)

// Record holds the text fields extracted from a single page.
// Every field is either NotFound or non-empty trimmed text.
type Record struct {
	Title       string `json:"title"`
	Description string `json:"description"`

	// MainContent is the visible text of the primary content region.
	MainContent string `json:"mainContent"`

	// Headings holds newline-separated "H<level>: <text>" entries.
	Headings string `json:"headings"`

	// Links holds newline-separated "<anchor text>: <href>" entries.
	Links string `json:"links"`

	// FullText is the visible text of the whole page, one line per block.
	FullText string `json:"fullText"`
}

// NewRecord returns a Record with every field set to NotFound.
func NewRecord() *Record {
	return &Record{
		Title:       NotFound,
		Description: NotFound,
		MainContent: NotFound,
		Headings:    NotFound,
		Links:       NotFound,
		FullText:    NotFound,
	}
}

// Found reports whether a field value carries extracted text.
func Found(value string) bool {
	return value != "" && value != NotFound
}

// OrNotFound returns value trimmed, or NotFound when nothing remains.
func OrNotFound(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return NotFound
	}
	return value
}

// Truncate cuts s to at most n characters.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// Summary describes the size of an extraction for display.
type Summary struct {
	Title          string
	Description    string
	MainContentLen int
	FullTextLen    int
	HeadingCount   int
	LinkCount      int
}

// summaryPreviewLen bounds the title and description previews in a Summary.
const summaryPreviewLen = 60

// Summary returns display counts for the record. Missing fields count as zero.
func (r *Record) Summary() Summary {
	return Summary{
		Title:          preview(r.Title),
		Description:    preview(r.Description),
		MainContentLen: fieldLen(r.MainContent),
		FullTextLen:    fieldLen(r.FullText),
		HeadingCount:   lineCount(r.Headings),
		LinkCount:      lineCount(r.Links),
	}
}

func preview(value string) string {
	if !Found(value) {
		return NotFound
	}
	if utf8.RuneCountInString(value) <= summaryPreviewLen {
		return value
	}
	return Truncate(value, summaryPreviewLen) + "..."
}

func fieldLen(value string) int {
	if !Found(value) {
		return 0
	}
	return utf8.RuneCountInString(value)
}

func lineCount(value string) int {
	if !Found(value) {
		return 0
	}
	return strings.Count(value, "\n") + 1
}

// Extractor turns a raw HTML document into a Record.
type Extractor interface {
	// Extract parses raw HTML and returns the bounded text fields.
	// Returns EEXTRACT if the document is empty or cannot be parsed.
	// Implementations must not retain or modify the parsed tree between calls.
	Extract(html string) (*Record, error)
}
