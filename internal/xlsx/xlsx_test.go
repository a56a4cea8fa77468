// ABOUTME: Tests for xlsx interchange round trips
// ABOUTME: Verifies header-name authority and status preservation

package xlsx

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/tenderlab/sotr/internal/models"
)

func TestSaveLoadMatrix_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matrix.xlsx")

	matrix := models.ClauseMatrix{Rows: []models.ClauseRow{
		{Serial: 0, Clause: "Supplier shall respond within 24 hours.", Reference: "1.1"},
		{Serial: 1, Clause: "Goods delivered within 5 days.", Reference: "1.2"},
	}}

	if err := SaveMatrix(path, matrix); err != nil {
		t.Fatalf("SaveMatrix() error = %v", err)
	}

	loaded, err := LoadMatrix(path)
	if err != nil {
		t.Fatalf("LoadMatrix() error = %v", err)
	}

	if loaded.Len() != matrix.Len() {
		t.Fatalf("loaded rows = %d, want %d", loaded.Len(), matrix.Len())
	}
	for i := range matrix.Rows {
		if loaded.Rows[i] != matrix.Rows[i] {
			t.Errorf("Rows[%d] = %+v, want %+v", i, loaded.Rows[i], matrix.Rows[i])
		}
	}
}

// Reviewer-reordered columns still load correctly: names are authoritative
func TestLoadMatrix_ReorderedColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edited.xlsx")

	f := excelize.NewFile()
	_ = f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Clause", "Clause Reference", "Sr. No."})
	_ = f.SetSheetRow("Sheet1", "A2", &[]interface{}{"edited clause", "2.1", 0})
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs() error = %v", err)
	}
	_ = f.Close()

	loaded, err := LoadMatrix(path)
	if err != nil {
		t.Fatalf("LoadMatrix() error = %v", err)
	}

	if loaded.Len() != 1 {
		t.Fatalf("loaded rows = %d, want 1", loaded.Len())
	}
	if loaded.Rows[0].Clause != "edited clause" || loaded.Rows[0].Reference != "2.1" {
		t.Errorf("Rows[0] = %+v", loaded.Rows[0])
	}
}

func TestSaveResults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.xlsx")

	table := models.ComplianceTable{Records: []models.ComplianceRecord{
		{ClauseNumber: "0", ClauseText: "clause a", Summary: "Met.", Status: models.StatusYes, Reference: "quote a"},
		{ClauseNumber: "1", ClauseText: "clause b", Summary: "Not met.", Status: models.StatusNo, Reference: "quote b"},
		{ClauseNumber: "2", ClauseText: "clause c", Summary: "Unclear.", Status: models.Status("Mostly"), Reference: "quote c"},
	}}

	if err := SaveResults(path, table); err != nil {
		t.Fatalf("SaveResults() error = %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}

	if len(rows) != 4 {
		t.Fatalf("rows = %d, want 4 (header + 3 records)", len(rows))
	}
	for i, name := range ResultColumns {
		if rows[0][i] != name {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], name)
		}
	}
	// off-contract status is written verbatim, not coerced
	if rows[3][3] != "Mostly" {
		t.Errorf("status cell = %q, want %q", rows[3][3], "Mostly")
	}
}

func TestLoadMatrix_MissingFile(t *testing.T) {
	if _, err := LoadMatrix(filepath.Join(t.TempDir(), "nope.xlsx")); err == nil {
		t.Error("expected error for missing file")
	}
}
