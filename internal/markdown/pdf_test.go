// ABOUTME: Tests for PDF conversion heuristics
// ABOUTME: Covers unsupported-input rejection and heading annotation

package markdown

import (
	"errors"
	"strings"
	"testing"
)

func TestConvert_UnsupportedInput(t *testing.T) {
	c := NewPDFConverter()

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"plain text", []byte("just some text")},
		{"zip magic", []byte("PK\x03\x04rest")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Convert(tt.data)
			if !errors.Is(err, ErrUnsupportedInput) {
				t.Errorf("expected ErrUnsupportedInput, got %v", err)
			}
		})
	}
}

func TestAnnotateHeadings(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"top level", "1 General Conditions", "# 1 General Conditions"},
		{"second level", "3.2 Technical Requirements", "## 3.2 Technical Requirements"},
		{"third level", "3.2.1 Power Supply", "### 3.2.1 Power Supply"},
		{"trailing dot number", "4. Delivery Terms", "# 4. Delivery Terms"},
		{"sentence left alone", "24 hours is the maximum response time.", "24 hours is the maximum response time."},
		{"lowercase left alone", "5 days from receipt", "5 days from receipt"},
		{"existing marker left alone", "## 2.1 Scope", "## 2.1 Scope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnnotateHeadings(tt.line)
			if got != tt.want {
				t.Errorf("AnnotateHeadings(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestAnnotateHeadings_FeedsSplitter(t *testing.T) {
	raw := "1 Introduction\nPreamble.\n1.1 Scope\nSupplier shall respond within 24 hours.\n1.2 Delivery\nGoods delivered within 5 days.\n"

	annotated := AnnotateHeadings(raw)
	sections, err := Split(annotated)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}

	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if sections[0].ID != "1.1" || sections[1].ID != "1.2" {
		t.Errorf("section IDs = %q, %q, want 1.1 and 1.2", sections[0].ID, sections[1].ID)
	}
}

func TestPrintableText(t *testing.T) {
	in := []byte("abc\x00\x01def\nghi\t")
	got := string(printableText(in))
	want := "abcdef\nghi\t"
	if got != want {
		t.Errorf("printableText = %q, want %q", got, want)
	}
}

func TestLooksLikeHeading(t *testing.T) {
	if looksLikeHeading(strings.Repeat("x", 150)) {
		t.Error("long line should not look like a heading")
	}
	if looksLikeHeading("2.1 Supplier obligations are listed below:") {
		t.Error("line ending in colon should not look like a heading")
	}
	if !looksLikeHeading("2.1 Supplier Obligations") {
		t.Error("short titled line should look like a heading")
	}
}
