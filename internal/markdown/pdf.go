// ABOUTME: PDF to heading-annotated markdown conversion
// ABOUTME: Extracts plain text with ledongthuc/pdf and annotates numbered headings
package markdown

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// ErrUnsupportedInput indicates the converter could not classify the binary
// content. This aborts the whole build: no partial document exists.
var ErrUnsupportedInput = errors.New("unsupported input: not a PDF document")

// Converter turns raw file bytes into a heading-annotated text blob
type Converter interface {
	Convert(data []byte) (string, error)
}

// PDFConverter extracts plain text from PDF bytes and annotates detected
// section headings with markdown markers so the splitter can segment it
type PDFConverter struct{}

// NewPDFConverter creates a PDFConverter
func NewPDFConverter() *PDFConverter {
	return &PDFConverter{}
}

// Convert converts PDF bytes into heading-annotated markdown.
// Returns ErrUnsupportedInput when the bytes are not a PDF.
func (c *PDFConverter) Convert(data []byte) (string, error) {
	if len(data) == 0 || !bytes.HasPrefix(data, []byte("%PDF")) {
		return "", ErrUnsupportedInput
	}

	text, err := extractText(data)
	if err != nil {
		return "", fmt.Errorf("extracting PDF text: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: no extractable text", ErrUnsupportedInput)
	}

	return AnnotateHeadings(text), nil
}

func extractText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	reader, err := r.GetPlainText()
	if err != nil {
		// fall back to printable-byte scan for PDFs the reader cannot walk
		return string(printableText(data)), nil
	}
	out, err := io.ReadAll(reader)
	if err != nil || len(out) == 0 {
		return string(printableText(data)), nil
	}
	return string(out), nil
}

// numberedHeading matches lines like "3.2 Technical Requirements"
var numberedHeading = regexp.MustCompile(`^(\d+(?:\.\d+){0,2})\.?\s+(\p{Lu}.*)$`)

// AnnotateHeadings prefixes markdown heading markers onto lines that look
// like numbered section headings. The numeric depth picks the level:
// "1" is H1, "1.1" is H2, "1.1.1" is H3. Lines already carrying a marker
// are left untouched.
func AnnotateHeadings(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			out = append(out, line)
			continue
		}
		if m := numberedHeading.FindStringSubmatch(trimmed); m != nil && looksLikeHeading(trimmed) {
			level := strings.Count(m[1], ".") + 1
			out = append(out, strings.Repeat("#", level)+" "+trimmed)
			continue
		}
		out = append(out, line)
	}

	return strings.Join(out, "\n")
}

// looksLikeHeading filters out ordinary numbered sentences: headings are
// short and do not end in sentence punctuation
func looksLikeHeading(line string) bool {
	if utf8.RuneCountInString(line) > 100 {
		return false
	}
	last, _ := utf8.DecodeLastRuneInString(line)
	return last != '.' && last != ',' && last != ';' && last != ':'
}

// printableText keeps printable runes plus whitespace from raw bytes
func printableText(in []byte) []byte {
	var out bytes.Buffer
	for len(in) > 0 {
		r, size := utf8.DecodeRune(in)
		if r == utf8.RuneError && size == 1 {
			b := in[0]
			if b == '\n' || b == '\r' || b == '\t' || (b >= 32 && b < 127) {
				out.WriteByte(b)
			}
			in = in[1:]
			continue
		}
		in = in[size:]
		if r == '\n' || r == '\r' || r == '\t' || unicode.IsPrint(r) {
			out.WriteRune(r)
		}
	}
	return out.Bytes()
}
