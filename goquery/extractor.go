// Package goquery implements sitechat.Extractor on top of goquery.
package goquery

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sitechat"
)

// Ensure Extractor implements sitechat.Extractor at compile time.
var _ sitechat.Extractor = (*Extractor)(nil)

// Elements stripped before reading the main content region.
const mainContentStrip = "script, style, nav, footer, header"

// Elements stripped before reading the full page text. Headers are kept.
const fullTextStrip = "script, style, nav, footer"

// Extractor extracts bounded text fields from an HTML page.
// It is safe for concurrent use; each call parses its own tree.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses raw HTML and returns the page's text fields.
// The parsed tree is never modified; destructive steps run on clones.
func (e *Extractor) Extract(rawHTML string) (*sitechat.Record, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, sitechat.Errorf(sitechat.EEXTRACT, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, sitechat.Errorf(sitechat.EEXTRACT, "failed to parse HTML: %v", err)
	}

	return &sitechat.Record{
		Title:       extractTitle(doc),
		Description: extractDescription(doc),
		MainContent: extractMainContent(doc),
		Headings:    extractHeadings(doc),
		Links:       extractLinks(doc),
		FullText:    extractFullText(doc),
	}, nil
}

func extractTitle(doc *goquery.Document) string {
	return sitechat.OrNotFound(inlineText(doc.Find("title").First()))
}

func extractDescription(doc *goquery.Document) string {
	content, _ := doc.Find(`meta[name="description"]`).First().Attr("content")
	return sitechat.OrNotFound(content)
}

// extractMainContent reads the first of main, article, an element with a
// "content" class, or body, after stripping page chrome from a copy.
func extractMainContent(doc *goquery.Document) string {
	work := doc.Clone()
	work.Find(mainContentStrip).Remove()

	region := work.Find("main").First()
	if region.Length() == 0 {
		region = work.Find("article").First()
	}
	if region.Length() == 0 {
		region = work.Find("[class]").FilterFunction(hasContentClass).First()
	}
	if region.Length() == 0 {
		region = work.Find("body").First()
	}
	if region.Length() == 0 {
		return sitechat.NotFound
	}

	text := sitechat.Truncate(blockText(region), sitechat.MaxMainContentLen)
	return sitechat.OrNotFound(text)
}

func hasContentClass(_ int, sel *goquery.Selection) bool {
	class, _ := sel.Attr("class")
	return strings.Contains(strings.ToLower(class), "content")
}

// extractHeadings collects h1 through h6, one level at a time, so lower
// levels fill the cap first. Headings without text still take a slot and
// render as a bare "H<n>:".
func extractHeadings(doc *goquery.Document) string {
	var headings []string
	for level := 1; level <= 6 && len(headings) < sitechat.MaxHeadings; level++ {
		prefix := "H" + strconv.Itoa(level) + ":"
		doc.Find("h" + strconv.Itoa(level)).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			entry := prefix
			if text := inlineText(sel); text != "" {
				entry += " " + text
			}
			headings = append(headings, entry)
			return len(headings) < sitechat.MaxHeadings
		})
	}
	return sitechat.OrNotFound(strings.Join(headings, "\n"))
}

// extractLinks takes the first MaxLinkCandidates anchors, then drops
// fragment-only and textless ones. Dropped anchors are not replaced.
func extractLinks(doc *goquery.Document) string {
	candidates := doc.Find("a[href]")
	if candidates.Length() > sitechat.MaxLinkCandidates {
		candidates = candidates.Slice(0, sitechat.MaxLinkCandidates)
	}

	var links []string
	candidates.Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		text := inlineText(sel)
		if text == "" || strings.HasPrefix(href, "#") {
			return
		}
		links = append(links, text+": "+href)
	})
	return sitechat.OrNotFound(strings.Join(links, "\n"))
}

func extractFullText(doc *goquery.Document) string {
	work := doc.Clone()
	work.Find(fullTextStrip).Remove()

	text := sitechat.Truncate(blockText(work), sitechat.MaxFullTextLen)
	return sitechat.OrNotFound(text)
}
