// ABOUTME: ComplianceRecord and ComplianceTable model per-clause verdicts
// ABOUTME: Status is a closed enum for display; raw model strings pass through
package models

import "strings"

// Status is a compliance verdict for one clause
type Status string

// Canonical status values. Anything else coming back from the model is kept
// verbatim in the record and normalized to StatusUnknown for display only.
const (
	StatusYes     Status = "Yes"
	StatusPartial Status = "Partial"
	StatusNo      Status = "No"
	StatusUnknown Status = "Unknown"
)

// NormalizeStatus maps a raw status string onto the closed status set.
// Matching is case-insensitive; unrecognized values map to StatusUnknown.
func NormalizeStatus(raw string) Status {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes":
		return StatusYes
	case "partial":
		return StatusPartial
	case "no":
		return StatusNo
	}
	return StatusUnknown
}

// ComplianceRecord is one clause verdict produced by the compliance checker
type ComplianceRecord struct {
	ClauseNumber string `json:"clause_number"`
	ClauseText   string `json:"clause_text"`
	Summary      string `json:"summary"`
	Status       Status `json:"status"`
	Reference    string `json:"reference"`
}

// ComplianceTable is the ordered concatenation of all batch results.
// A failed batch contributes zero rows, so the table may be shorter than the
// input matrix; callers detect gaps by diffing against the matrix serials.
type ComplianceTable struct {
	Records []ComplianceRecord `json:"records"`
}

// Len returns the number of compliance records
func (t ComplianceTable) Len() int {
	return len(t.Records)
}
