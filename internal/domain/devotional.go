// Package domain provides domain models used across the application.
package domain

import "strings"

// Devotional represents one extracted Santapan Harian edition.
type Devotional struct {
	// Page title from the document head
	Title string `json:"title"`
	// Book chapter:verse citation for the day's reading (e.g. "Lukas 13:18-21")
	ScriptureReference string `json:"scripture_reference"`
	// Short heading following the scripture reference
	DevotionalTitle string `json:"devotional_title"`
	// Ordered body paragraphs with boilerplate removed; never nil
	DevotionalContent []string `json:"devotional_content"`
	// Cleaned full-page text, newline-joined
	FullText string `json:"full_text"`
	// Whitespace-token count of FullText
	WordCount int `json:"word_count"`
	// Number of entries in DevotionalContent
	ParagraphCount int `json:"paragraph_count"`
}

// Finalize normalizes derived fields so the invariants hold:
// DevotionalContent is never nil, WordCount matches FullText,
// ParagraphCount matches DevotionalContent.
func (d *Devotional) Finalize() {
	if d.DevotionalContent == nil {
		d.DevotionalContent = []string{}
	}
	d.WordCount = len(strings.Fields(d.FullText))
	d.ParagraphCount = len(d.DevotionalContent)
}

// LowQuality reports whether extraction recovered neither a scripture
// reference nor any body paragraphs. Callers surface the degraded result
// rather than failing the request.
func (d *Devotional) LowQuality() bool {
	return d.ScriptureReference == "" && len(d.DevotionalContent) == 0
}
