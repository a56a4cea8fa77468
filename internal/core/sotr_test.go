// ABOUTME: Tests for SOTRBuilder clause-matrix construction
// ABOUTME: Uses a scripted fake completer; verifies serials, skipping, audit lines

package core

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tenderlab/sotr/internal/markdown"
	"github.com/tenderlab/sotr/internal/tabular"
)

// fakeCompleter returns scripted responses in call order. A nil entry
// simulates a failed completion.
type fakeCompleter struct {
	responses []*string
	calls     int
	prompts   []string
}

func (f *fakeCompleter) Complete(_ context.Context, _, userPrompt string, _ int) (string, error) {
	f.prompts = append(f.prompts, userPrompt)
	i := f.calls
	f.calls++
	if i >= len(f.responses) || f.responses[i] == nil {
		return "", errors.New("completion unavailable")
	}
	return *f.responses[i], nil
}

func resp(s string) *string { return &s }

const twoSectionDoc = "## 1.1 Scope\n\nSupplier shall respond within 24 hours.\n\n## 1.2 Delivery\n\nGoods delivered within 5 days.\n"

func TestBuildMatrix_TwoSections(t *testing.T) {
	fake := &fakeCompleter{responses: []*string{
		resp("Sr. No.|Requirement|Source Reference\n0|Supplier shall respond within 24 hours.|1.1"),
		resp("Sr. No.|Requirement|Source Reference\n0|Goods delivered within 5 days.|1.2"),
	}}
	builder := NewSOTRBuilder(fake, 0)

	matrix, rawLines, err := builder.BuildMatrix(context.Background(), twoSectionDoc)
	if err != nil {
		t.Fatalf("BuildMatrix() error = %v", err)
	}

	if fake.calls != 2 {
		t.Errorf("completion calls = %d, want 2", fake.calls)
	}
	if matrix.Len() != 2 {
		t.Fatalf("matrix rows = %d, want 2", matrix.Len())
	}

	if matrix.Rows[0].Serial != 0 || matrix.Rows[1].Serial != 1 {
		t.Errorf("serials = %d, %d, want 0, 1", matrix.Rows[0].Serial, matrix.Rows[1].Serial)
	}
	if matrix.Rows[0].Reference != "1.1" || matrix.Rows[1].Reference != "1.2" {
		t.Errorf("references = %q, %q, want 1.1 and 1.2", matrix.Rows[0].Reference, matrix.Rows[1].Reference)
	}
	if matrix.Rows[0].Clause != "Supplier shall respond within 24 hours." {
		t.Errorf("clause = %q", matrix.Rows[0].Clause)
	}

	if rawLines[0] != MatrixHeader {
		t.Errorf("rawLines[0] = %q, want canonical header", rawLines[0])
	}
	if len(rawLines) != 3 {
		t.Errorf("rawLines count = %d, want 3 (header + 2 data lines)", len(rawLines))
	}
}

// The builder sends each section's id and content as the variable payload
func TestBuildMatrix_SectionPayload(t *testing.T) {
	fake := &fakeCompleter{responses: []*string{
		resp("h|h|h\n0|a|1.1"),
		resp("h|h|h\n0|b|1.2"),
	}}
	builder := NewSOTRBuilder(fake, 0)

	if _, _, err := builder.BuildMatrix(context.Background(), twoSectionDoc); err != nil {
		t.Fatalf("BuildMatrix() error = %v", err)
	}

	if len(fake.prompts) != 2 {
		t.Fatalf("prompts = %d, want 2", len(fake.prompts))
	}
	if !strings.Contains(fake.prompts[0], "1.1") || !strings.Contains(fake.prompts[0], "24 hours") {
		t.Errorf("first prompt missing section id or content: %q", fake.prompts[0])
	}
	if !strings.Contains(fake.prompts[1], "1.2") {
		t.Errorf("second prompt missing section id: %q", fake.prompts[1])
	}
}

// One failed section out of N is skipped; the matrix keeps the others and
// contains nothing attributable to the failed section
func TestBuildMatrix_FailedSectionSkipped(t *testing.T) {
	fake := &fakeCompleter{responses: []*string{
		nil,
		resp("Sr. No.|Requirement|Source Reference\n0|Goods delivered within 5 days.|1.2"),
	}}
	builder := NewSOTRBuilder(fake, 0)

	matrix, _, err := builder.BuildMatrix(context.Background(), twoSectionDoc)
	if err != nil {
		t.Fatalf("BuildMatrix() error = %v", err)
	}

	if fake.calls != 2 {
		t.Errorf("completion calls = %d, want 2 (failure must not abort the build)", fake.calls)
	}
	if matrix.IsEmpty() {
		t.Fatal("matrix should not be empty when one of two sections succeeds")
	}
	for _, row := range matrix.Rows {
		if row.Reference == "1.1" {
			t.Errorf("row attributable to failed section: %+v", row)
		}
	}
}

// Serials are renumbered densely regardless of what the model emitted
func TestBuildMatrix_SerialsRenumbered(t *testing.T) {
	fake := &fakeCompleter{responses: []*string{
		resp("Sr. No.|Requirement|Source Reference\n7|first clause|1.1\n99|second clause|1.1"),
		resp("Sr. No.|Requirement|Source Reference\n3|third clause|1.2"),
	}}
	builder := NewSOTRBuilder(fake, 0)

	matrix, _, err := builder.BuildMatrix(context.Background(), twoSectionDoc)
	if err != nil {
		t.Fatalf("BuildMatrix() error = %v", err)
	}

	if matrix.Len() != 3 {
		t.Fatalf("matrix rows = %d, want 3", matrix.Len())
	}
	for i, row := range matrix.Rows {
		if row.Serial != i {
			t.Errorf("Rows[%d].Serial = %d, want %d", i, row.Serial, i)
		}
	}
}

func TestBuildMatrix_QuotesStrippedFromClause(t *testing.T) {
	fake := &fakeCompleter{responses: []*string{
		resp("Sr. No.|Requirement|Source Reference\n0|\"Supplier shall comply.\"|1.1"),
		resp("Sr. No.|Requirement|Source Reference\n0|plain|1.2"),
	}}
	builder := NewSOTRBuilder(fake, 0)

	matrix, _, err := builder.BuildMatrix(context.Background(), twoSectionDoc)
	if err != nil {
		t.Fatalf("BuildMatrix() error = %v", err)
	}
	if strings.Contains(matrix.Rows[0].Clause, "\"") {
		t.Errorf("clause retains quotes: %q", matrix.Rows[0].Clause)
	}
}

func TestBuildMatrix_NoSectionsYieldsEmptyMatrix(t *testing.T) {
	fake := &fakeCompleter{}
	builder := NewSOTRBuilder(fake, 0)

	matrix, rawLines, err := builder.BuildMatrix(context.Background(), "no headings at all, just text")
	if err != nil {
		t.Fatalf("BuildMatrix() error = %v", err)
	}

	if fake.calls != 0 {
		t.Errorf("completion calls = %d, want 0", fake.calls)
	}
	if !matrix.IsEmpty() {
		t.Errorf("matrix should be empty, got %d rows", matrix.Len())
	}
	if len(rawLines) != 1 || rawLines[0] != MatrixHeader {
		t.Errorf("rawLines = %v, want only the canonical header", rawLines)
	}
}

func TestBuildMatrix_EmptyDocument(t *testing.T) {
	builder := NewSOTRBuilder(&fakeCompleter{}, 0)

	_, _, err := builder.BuildMatrix(context.Background(), "   ")
	if !errors.Is(err, markdown.ErrDocumentNotPrepared) {
		t.Errorf("expected ErrDocumentNotPrepared, got %v", err)
	}
}

func TestBuildMatrix_AllSectionsFail(t *testing.T) {
	fake := &fakeCompleter{responses: []*string{nil, nil}}
	builder := NewSOTRBuilder(fake, 0)

	matrix, _, err := builder.BuildMatrix(context.Background(), twoSectionDoc)
	if err != nil {
		t.Fatalf("BuildMatrix() error = %v", err)
	}
	if !matrix.IsEmpty() {
		t.Errorf("matrix should be empty when every section fails, got %d rows", matrix.Len())
	}
}

func TestMatrixFromRecords(t *testing.T) {
	records := []tabular.Record{
		{"Sr. No.": "0", "Clause": "first", "Clause Reference": "1.1"},
		{"Sr. No.": "1", "Clause": "second", "Clause Reference": "1.2"},
		{"Sr. No.": "junk", "Clause": "third", "Clause Reference": "1.3"},
	}

	matrix := MatrixFromRecords(records)
	if matrix.Len() != 3 {
		t.Fatalf("matrix rows = %d, want 3", matrix.Len())
	}
	if matrix.Rows[1].Clause != "second" || matrix.Rows[1].Reference != "1.2" {
		t.Errorf("Rows[1] = %+v", matrix.Rows[1])
	}
	// unparseable serial falls back to position
	if matrix.Rows[2].Serial != 2 {
		t.Errorf("Rows[2].Serial = %d, want 2", matrix.Rows[2].Serial)
	}
}
