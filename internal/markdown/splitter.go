// ABOUTME: Header-aware splitter for converted markdown documents
// ABOUTME: Segments at H1-H3 headings, grouping content by level-2 sections
package markdown

import (
	"errors"
	"strings"

	"github.com/tenderlab/sotr/internal/models"
)

// ErrDocumentNotPrepared indicates Split was called before a document was
// converted or loaded. Callers must run conversion first.
var ErrDocumentNotPrepared = errors.New("document not prepared: convert or load a document first")

// headingLevel returns 1-3 for an ATX heading line, 0 otherwise
func headingLevel(line string) int {
	trimmed := strings.TrimLeft(line, " ")
	level := 0
	for level < len(trimmed) && trimmed[level] == '#' {
		level++
	}
	if level == 0 || level > 3 {
		return 0
	}
	if level < len(trimmed) && trimmed[level] != ' ' && trimmed[level] != '\t' {
		return 0
	}
	return level
}

// headingText returns the heading text with its marker stripped
func headingText(line string, level int) string {
	trimmed := strings.TrimLeft(line, " ")
	return strings.TrimSpace(trimmed[level:])
}

// Split partitions a heading-annotated document into sections. The document
// is segmented at every H1/H2/H3 heading, but section identity comes from the
// nearest enclosing level-2 heading: each emitted Section's ID is the first
// whitespace-delimited token of that heading's text. Content that precedes
// any H2, or whose trimmed body is empty, is dropped. Splitting the same
// text twice yields identical results.
func Split(markdownText string) ([]models.Section, error) {
	if strings.TrimSpace(markdownText) == "" {
		return nil, ErrDocumentNotPrepared
	}

	var (
		sections []models.Section
		content  []string
		h2       string // nearest enclosing level-2 heading text
		level    int    // level of the heading that opened the current chunk
		inFence  bool
	)

	flush := func() {
		if h2 == "" {
			content = content[:0]
			return
		}
		body := strings.TrimSpace(strings.Join(content, "\n"))
		content = content[:0]
		if body == "" || firstToken(h2) == "" {
			return
		}
		sections = append(sections, models.Section{
			ID:           firstToken(h2),
			HeadingLevel: level,
			Heading:      h2,
			Content:      body,
		})
	}

	for _, line := range strings.Split(markdownText, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			content = append(content, line)
			continue
		}
		if inFence {
			content = append(content, line)
			continue
		}

		lv := headingLevel(line)
		if lv == 0 {
			content = append(content, line)
			continue
		}

		flush()
		level = lv
		switch lv {
		case 1:
			// a new top-level heading closes the enclosing H2 scope
			h2 = ""
		case 2:
			h2 = headingText(line, lv)
		}
	}
	flush()

	return sections, nil
}

// firstToken returns the first whitespace-delimited token of s
func firstToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
