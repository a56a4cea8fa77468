// ABOUTME: Spreadsheet interchange for clause matrices and compliance results
// ABOUTME: Column names, not positions, are authoritative when reloading
package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/tenderlab/sotr/internal/core"
	"github.com/tenderlab/sotr/internal/models"
	"github.com/tenderlab/sotr/internal/tabular"
)

const sheet = "Sheet1"

// MatrixColumns are the clause-matrix interchange columns, in order
var MatrixColumns = []string{"Sr. No.", "Clause", "Clause Reference"}

// ResultColumns are the compliance-results interchange columns, in order
var ResultColumns = []string{"Clause Number", "Clause Text", "Compliance Summary", "Status", "Reference"}

// statusFills colors the Status cell for at-a-glance review
var statusFills = map[models.Status]string{
	models.StatusYes:     "C6EFCE",
	models.StatusPartial: "FFEB9C",
	models.StatusNo:      "FFC7CE",
	models.StatusUnknown: "D9D9D9",
}

// SaveMatrix writes a clause matrix to an xlsx file with the three
// interchange columns. This is the file a human reviewer edits.
func SaveMatrix(path string, matrix models.ClauseMatrix) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetRow(sheet, "A1", &[]interface{}{MatrixColumns[0], MatrixColumns[1], MatrixColumns[2]}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, row := range matrix.Rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &[]interface{}{row.Serial, row.Clause, row.Reference}); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving matrix: %w", err)
	}
	return nil
}

// LoadMatrix reads a clause matrix back from an xlsx file, locating the
// interchange columns by header name so reviewer edits to column order
// survive a round trip.
func LoadMatrix(path string) (models.ClauseMatrix, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return models.ClauseMatrix{}, fmt.Errorf("opening matrix file: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(f.GetSheetList()[0])
	if err != nil {
		return models.ClauseMatrix{}, fmt.Errorf("reading matrix rows: %w", err)
	}
	if len(rows) == 0 {
		return models.ClauseMatrix{}, nil
	}

	header := rows[0]
	records := make([]tabular.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(tabular.Record, len(header))
		for i, name := range header {
			if i < len(row) {
				rec[name] = row[i]
			}
		}
		records = append(records, rec)
	}

	return core.MatrixFromRecords(records), nil
}

// SaveResults writes a compliance result table to an xlsx file with the five
// interchange columns, coloring each Status cell by its normalized value.
func SaveResults(path string, table models.ComplianceTable) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	header := make([]interface{}, len(ResultColumns))
	for i, name := range ResultColumns {
		header[i] = name
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	styles := make(map[models.Status]int, len(statusFills))
	for status, color := range statusFills {
		id, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		})
		if err != nil {
			return fmt.Errorf("creating style: %w", err)
		}
		styles[status] = id
	}

	for i, rec := range table.Records {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []interface{}{rec.ClauseNumber, rec.ClauseText, rec.Summary, string(rec.Status), rec.Reference}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}

		statusCell, _ := excelize.CoordinatesToCellName(4, i+2)
		if err := f.SetCellStyle(sheet, statusCell, statusCell, styles[models.NormalizeStatus(string(rec.Status))]); err != nil {
			return fmt.Errorf("styling row %d: %w", i, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving results: %w", err)
	}
	return nil
}
