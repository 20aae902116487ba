package scraper

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/gosabda/internal/domain"
)

// placeholderTitle is used when the page carries no <title> element.
const placeholderTitle = "SABDA Devotional"

const (
	// minParagraphLength is the minimum length of a usable body paragraph.
	minParagraphLength = 50
	// minFallbackLineLength is the minimum length of a body line kept by the
	// text-fallback pass.
	minFallbackLineLength = 15
	// sentenceSegmentThreshold is the text length above which the fallback
	// pass re-segments on sentence boundaries.
	sentenceSegmentThreshold = 300
	// paragraphCloseLength is the running length at which an accumulated
	// paragraph is closed, provided it ends on terminal punctuation.
	paragraphCloseLength = 200
	// paragraphFlushLength is the minimum length for flushing the final
	// partial paragraph.
	paragraphFlushLength = 100
	// wordSplitThreshold is the word count above which the equal-thirds
	// fallback activates.
	wordSplitThreshold = 150
)

// scriptureRefPattern matches a book-chapter:verse citation such as
// "Lukas 13:18-21". The first match in a document is authoritative; later
// matches are cross-references in the body and are ignored.
var scriptureRefPattern = regexp.MustCompile(`\b([A-Za-z]+\s+\d+:\d+(?:-\d+)?)\b`)

// refResiduePattern matches the verse-range residue left at the start of an
// h1 after the scripture reference is removed (e.g. "-21 Ia Mengutus Kamu").
var refResiduePattern = regexp.MustCompile(`^-\d+`)

// bracketTagPattern matches bracketed annotations such as "[KRS]".
var bracketTagPattern = regexp.MustCompile(`\[.*?\]`)

// trailingInitialsPattern matches trailing bracketed author initials.
var trailingInitialsPattern = regexp.MustCompile(`\s*\[[\w\s]+\]\s*$`)

// multiSpacePattern matches runs of whitespace for collapsing.
var multiSpacePattern = regexp.MustCompile(`\s{2,}`)

// connectiveWords lists Indonesian connective words that cannot begin a
// devotional title.
var connectiveWords = map[string]bool{
	"yang":   true,
	"dan":    true,
	"atau":   true,
	"dengan": true,
	"untuk":  true,
	"dari":   true,
	"pada":   true,
	"dalam":  true,
	"ketika": true,
	"karena": true,
}

// donationKeywords marks footer and donation boilerplate. Matched
// case-insensitively as substrings.
var donationKeywords = []string{
	"mari memberkati",
	"pancar pijar alkitab",
	"bca 106.30066.22",
	"yayasan lembaga sabda",
	"webmaster@",
	"ylsa.org",
	"copyright",
	"©",
	"santapan harian",
}

// headerKeywords marks site navigation and header noise. Matched against
// lower-cased lines.
var headerKeywords = []string{
	"sabda.org",
	"publikasi",
	"versi cetak",
	"http://",
	"https://",
	"halaman ini adalah versi",
}

// Extract parses a devotional page and runs the staged extraction
// pipeline over it. Missing fields degrade to empty values and malformed
// markup falls through to weaker strategies instead of failing the call.
func Extract(body []byte) (*domain.Devotional, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return extractContent(doc), nil
}

// extractContent runs the pipeline stages over a parsed document.
func extractContent(doc *goquery.Document) *domain.Devotional {
	content := &domain.Devotional{}

	content.Title = extractTitle(doc)

	main := mainContentSelection(doc)
	cleanText := cleanPageText(main.Text())
	content.FullText = cleanText

	h1Text := strings.TrimSpace(doc.Find("h1").First().Text())
	content.ScriptureReference = extractScriptureRef(h1Text, cleanText)
	content.DevotionalTitle = extractDevotionalTitle(h1Text, cleanText, content.ScriptureReference)

	paragraphs := structuralParagraphs(main)
	if len(paragraphs) <= 1 {
		paragraphs = paragraphsFromText(cleanText, content.ScriptureReference)
	}
	content.DevotionalContent = cleanParagraphs(paragraphs, content.DevotionalTitle)

	content.Finalize()
	return content
}

// extractTitle returns the page title, or a fixed placeholder when absent.
func extractTitle(doc *goquery.Document) string {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		return placeholderTitle
	}
	return title
}

// extractScriptureRef finds the day's citation, preferring the h1 heading
// over the page text. The first match wins either way.
func extractScriptureRef(h1Text, cleanText string) string {
	if match := scriptureRefPattern.FindStringSubmatch(h1Text); len(match) > 1 {
		return match[1]
	}
	if match := scriptureRefPattern.FindStringSubmatch(cleanText); len(match) > 1 {
		return match[1]
	}
	return ""
}

// extractDevotionalTitle recovers the short heading that follows the
// scripture reference. The h1 minus the reference is used when present;
// otherwise the lines right after the reference line are scanned.
func extractDevotionalTitle(h1Text, cleanText, scriptureRef string) string {
	if h1Text != "" && scriptureRef != "" {
		title := strings.ReplaceAll(h1Text, scriptureRef, "")
		title = refResiduePattern.ReplaceAllString(strings.TrimSpace(title), "")
		title = cleanTitle(title)
		if len(title) > 3 {
			return title
		}
	}

	return titleFromLines(cleanText, scriptureRef)
}

// titleFromLines scans up to three lines after the scripture-reference line
// and accepts the first plausible heading.
func titleFromLines(cleanText, scriptureRef string) string {
	if scriptureRef == "" {
		return ""
	}

	lines := strings.Split(cleanText, "\n")
	refLine := -1
	for i, line := range lines {
		if strings.Contains(line, scriptureRef) {
			refLine = i
			break
		}
	}
	if refLine == -1 {
		return ""
	}

	for i := refLine + 1; i < len(lines) && i <= refLine+3; i++ {
		line := cleanTitle(lines[i])
		if len(line) <= 5 {
			continue
		}
		firstWord := strings.ToLower(strings.Fields(line)[0])
		if connectiveWords[firstWord] {
			continue
		}
		return line
	}
	return ""
}

// cleanTitle strips bracketed tags and collapses repeated whitespace.
func cleanTitle(title string) string {
	title = bracketTagPattern.ReplaceAllString(title, "")
	title = multiSpacePattern.ReplaceAllString(title, " ")
	return strings.TrimSpace(title)
}

// mainContentSelection locates the node holding the devotional body. The
// print page wraps it in aside.w, older markup in td.wj or a bare table;
// the whole body is the last resort.
func mainContentSelection(doc *goquery.Document) *goquery.Selection {
	var main *goquery.Selection

	doc.Find("aside.w").EachWithBreak(func(_ int, aside *goquery.Selection) bool {
		if aside.Find("p").Length() > 0 {
			main = aside
			return false
		}
		return true
	})
	if main != nil {
		return main
	}

	if sel := doc.Find("td.wj"); sel.Length() > 0 {
		return sel.First()
	}

	if cells := doc.Find("table td"); cells.Length() > 0 {
		var largest *goquery.Selection
		maxLength := 0
		cells.Each(func(_ int, cell *goquery.Selection) {
			if textLen := len(strings.TrimSpace(cell.Text())); textLen > maxLength {
				maxLength = textLen
				largest = cell
			}
		})
		if largest != nil {
			return largest
		}
	}

	if body := doc.Find("body"); body.Length() > 0 {
		return body.First()
	}
	return doc.Selection
}

// cleanPageText trims lines, drops empty and header/navigation lines and
// rejoins the rest with newlines.
func cleanPageText(text string) string {
	var cleanLines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || isHeaderContent(strings.ToLower(line)) {
			continue
		}
		cleanLines = append(cleanLines, line)
	}
	return strings.Join(cleanLines, "\n")
}

// structuralParagraphs collects paragraph-level markup, discarding empty,
// center-aligned, boilerplate and short entries.
func structuralParagraphs(sel *goquery.Selection) []string {
	var paragraphs []string

	sel.Find("p").Each(func(_ int, p *goquery.Selection) {
		text := strings.TrimSpace(p.Text())

		if text == "" || text == " " {
			return
		}
		// Donation banners are center-aligned in the source markup.
		if align, exists := p.Attr("align"); exists && strings.EqualFold(align, "center") {
			return
		}
		if isDonationContent(text) {
			return
		}
		if len(text) < minParagraphLength {
			return
		}

		paragraphs = append(paragraphs, multiSpacePattern.ReplaceAllString(text, " "))
	})

	return paragraphs
}

// paragraphsFromText reconstructs the body from raw lines when paragraph
// markup is absent or atypical. Lines before the scripture reference are
// navigation, the first donation keyword marks the end of the body.
func paragraphsFromText(cleanText, scriptureRef string) []string {
	var bodyLines []string
	foundStart := false

	for _, line := range strings.Split(cleanText, "\n") {
		line = strings.TrimSpace(line)

		if !foundStart {
			if scriptureRef != "" && strings.Contains(line, scriptureRef) {
				foundStart = true
			} else if scriptureRef == "" && scriptureRefPattern.MatchString(line) {
				foundStart = true
			}
			continue
		}

		if isDonationContent(line) {
			break
		}
		if isHeaderContent(strings.ToLower(line)) {
			continue
		}
		if len(line) > minFallbackLineLength {
			bodyLines = append(bodyLines, line)
		}
	}

	contentText := strings.Join(bodyLines, " ")

	var paragraphs []string
	if len(contentText) > sentenceSegmentThreshold {
		paragraphs = segmentBySentence(contentText)
	}

	if len(paragraphs) <= 1 && contentText != "" {
		words := strings.Fields(contentText)
		if len(words) > wordSplitThreshold {
			paragraphs = splitIntoThirds(words)
		} else {
			paragraphs = []string{strings.TrimSpace(contentText)}
		}
	}

	return paragraphs
}

// segmentBySentence accumulates sentences into paragraphs, closing one
// whenever the running text exceeds the target length and ends on terminal
// punctuation. A final partial paragraph is flushed when long enough.
func segmentBySentence(text string) []string {
	var paragraphs []string
	var current []string

	for _, sentence := range splitSentences(text) {
		current = append(current, sentence)

		joined := strings.Join(current, " ")
		if len(joined) > paragraphCloseLength && endsWithTerminal(joined) {
			paragraphs = append(paragraphs, joined)
			current = nil
		}
	}

	if len(current) > 0 {
		if joined := strings.Join(current, " "); len(joined) > paragraphFlushLength {
			paragraphs = append(paragraphs, joined)
		}
	}

	return paragraphs
}

// splitSentences splits text after terminal punctuation followed by
// whitespace and an upper-case letter. Each sentence keeps its punctuation.
func splitSentences(text string) []string {
	var sentences []string
	start := 0

	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '.' && c != '!' && c != '?' {
			continue
		}
		j := i + 1
		for j < len(text) && (text[j] == ' ' || text[j] == '\t') {
			j++
		}
		if j == i+1 || j >= len(text) || text[j] < 'A' || text[j] > 'Z' {
			continue
		}
		if sentence := strings.TrimSpace(text[start : i+1]); sentence != "" {
			sentences = append(sentences, sentence)
		}
		start = j
		i = j - 1
	}

	if sentence := strings.TrimSpace(text[start:]); sentence != "" {
		sentences = append(sentences, sentence)
	}

	return sentences
}

// endsWithTerminal reports whether text ends with sentence-closing
// punctuation. A question mark keeps the paragraph accumulating.
func endsWithTerminal(text string) bool {
	return strings.HasSuffix(text, ".") || strings.HasSuffix(text, "!")
}

// splitIntoThirds divides the word sequence into three contiguous, roughly
// equal paragraphs. A last resort that ignores sentence boundaries.
func splitIntoThirds(words []string) []string {
	third := len(words) / 3
	return []string{
		strings.TrimSpace(strings.Join(words[:third], " ")),
		strings.TrimSpace(strings.Join(words[third:2*third], " ")),
		strings.TrimSpace(strings.Join(words[2*third:], " ")),
	}
}

// cleanParagraphs post-processes survivors: a leading copy of the
// devotional title and trailing author initials are stripped, and anything
// below the minimum length is dropped.
func cleanParagraphs(paragraphs []string, devotionalTitle string) []string {
	var cleaned []string

	for _, para := range paragraphs {
		if devotionalTitle != "" && strings.HasPrefix(para, devotionalTitle) {
			para = strings.TrimSpace(strings.TrimPrefix(para, devotionalTitle))
		}
		para = trailingInitialsPattern.ReplaceAllString(para, "")
		para = strings.TrimSpace(para)

		if len(para) > minParagraphLength {
			cleaned = append(cleaned, para)
		}
	}

	return cleaned
}

// isDonationContent reports whether text belongs to the footer or donation
// boilerplate.
func isDonationContent(text string) bool {
	textLower := strings.ToLower(text)
	for _, keyword := range donationKeywords {
		if strings.Contains(textLower, keyword) {
			return true
		}
	}
	return false
}

// isHeaderContent reports whether a lower-cased line is site header or
// navigation noise.
func isHeaderContent(textLower string) bool {
	for _, keyword := range headerKeywords {
		if strings.Contains(textLower, keyword) {
			return true
		}
	}
	return false
}
