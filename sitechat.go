// Package sitechat provides a CLI chatbot that answers questions about a
// single web page. It fetches the page, extracts a bounded set of text
// fields, and grounds a multi-turn conversation strictly in that content.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, gemini/, http/).
package sitechat
