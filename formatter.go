package sitechat

import "strings"

// FormatContext formats an extraction record as grounding context for an LLM.
// Fields appear in a fixed order (title, description, headings, main content,
// links), each with its label. Fields that were not found are omitted.
// Blocks are separated by blank lines. Returns an empty string when no field
// was found.
func FormatContext(r *Record) string {
	if r == nil {
		return ""
	}

	parts := make([]string, 0, 5)
	if Found(r.Title) {
		parts = append(parts, "Title: "+r.Title)
	}
	if Found(r.Description) {
		parts = append(parts, "Description: "+r.Description)
	}
	if Found(r.Headings) {
		parts = append(parts, "Headings:\n"+r.Headings)
	}
	if Found(r.MainContent) {
		parts = append(parts, "Main Content:\n"+r.MainContent)
	}
	if Found(r.Links) {
		parts = append(parts, "Important Links:\n"+r.Links)
	}

	return strings.Join(parts, "\n\n")
}
