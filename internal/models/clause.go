// ABOUTME: ClauseRow and ClauseMatrix model the SOTR compliance matrix
// ABOUTME: One row per atomic requirement clause extracted from the document
package models

// ClauseRow is one atomic requirement extracted from the SOTR document.
// Serial is assigned densely at parse time; the value the model emitted is
// kept only for relative ordering, never trusted as an identifier.
type ClauseRow struct {
	Serial    int    `json:"serial"`
	Clause    string `json:"clause"`
	Reference string `json:"reference"`
}

// ClauseMatrix is an ordered sequence of clause rows for one document
type ClauseMatrix struct {
	Rows []ClauseRow `json:"rows"`
}

// IsEmpty reports whether the matrix contains no rows. An empty matrix is a
// valid build result (empty or heading-less source document), not an error.
// Callers must check it explicitly before running a compliance check.
func (m ClauseMatrix) IsEmpty() bool {
	return len(m.Rows) == 0
}

// Len returns the number of clause rows
func (m ClauseMatrix) Len() int {
	return len(m.Rows)
}
