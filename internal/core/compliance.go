// ABOUTME: ComplianceChecker batches clause rows against a tender document
// ABOUTME: One completion call per batch, failed batches contribute zero rows
package core

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/tenderlab/sotr/internal/llm"
	"github.com/tenderlab/sotr/internal/models"
	"github.com/tenderlab/sotr/internal/tabular"
)

// DefaultBatchSize is the number of clause rows sent per completion call
const DefaultBatchSize = 10

// Input-not-ready conditions. Both are caller-correctable: supply the
// missing input and call Check again.
var (
	ErrTenderNotLoaded = errors.New("tender document not loaded")
	ErrMatrixNotLoaded = errors.New("SOTR matrix not loaded")
)

// ComplianceChecker cross-checks a clause matrix against a tender document.
// Load the tender and the matrix, then Check; inputs are never mutated, so
// the same matrix can be checked against several tenders.
type ComplianceChecker struct {
	completer llm.Completer
	batchSize int
	maxTokens int

	tenderText string
	matrix     models.ClauseMatrix
	loaded     bool
}

// NewComplianceChecker creates a checker using the given completion service
func NewComplianceChecker(completer llm.Completer, batchSize, maxTokens int) *ComplianceChecker {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if maxTokens <= 0 {
		maxTokens = 4096
	}
	return &ComplianceChecker{completer: completer, batchSize: batchSize, maxTokens: maxTokens}
}

// LoadTender loads the tender document text to check against
func (c *ComplianceChecker) LoadTender(tenderText string) error {
	if strings.TrimSpace(tenderText) == "" {
		return ErrTenderNotLoaded
	}
	c.tenderText = tenderText
	return nil
}

// LoadMatrix loads the clause matrix to verify
func (c *ComplianceChecker) LoadMatrix(matrix models.ClauseMatrix) error {
	if matrix.IsEmpty() {
		return ErrMatrixNotLoaded
	}
	c.matrix = matrix
	c.loaded = true
	return nil
}

// Check runs the compliance verification, one sequential completion call per
// batch of clause rows. The full tender text rides along in every request;
// the model is expected to hold the whole document in context. A failed
// batch is logged and contributes zero rows; the run still completes, and
// callers detect gaps by diffing record counts against the input matrix.
// Both inputs must be loaded first or Check fails before any completion call.
func (c *ComplianceChecker) Check(ctx context.Context) (models.ComplianceTable, error) {
	if c.tenderText == "" {
		return models.ComplianceTable{}, ErrTenderNotLoaded
	}
	if !c.loaded {
		return models.ComplianceTable{}, ErrMatrixNotLoaded
	}

	var table models.ComplianceTable
	batches := (c.matrix.Len() + c.batchSize - 1) / c.batchSize

	for start := 0; start < c.matrix.Len(); start += c.batchSize {
		end := start + c.batchSize
		if end > c.matrix.Len() {
			end = c.matrix.Len()
		}
		batch := c.matrix.Rows[start:end]
		batchNo := start/c.batchSize + 1

		response, err := c.completer.Complete(ctx, complianceSystemPrompt, batchPrompt(c.tenderText, batch), c.maxTokens)
		if err != nil {
			log.Printf("[Compliance] batch %d/%d: completion failed, skipping: %v", batchNo, batches, err)
			continue
		}

		records := tabular.Parse(response, ComplianceColumns)
		for _, rec := range records {
			table.Records = append(table.Records, models.ComplianceRecord{
				ClauseNumber: rec["Clause Number"],
				ClauseText:   rec["Clause Text"],
				Summary:      rec["Compliance Summary"],
				// raw model value passes through; normalize only for display
				Status:    models.Status(rec["Status"]),
				Reference: rec["Reference"],
			})
		}
		log.Printf("[Compliance] completed batch %d/%d (%d rows)", batchNo, batches, len(records))
	}

	return table, nil
}

// batchPrompt embeds the tender text and the batch's numbered clauses
func batchPrompt(tenderText string, batch []models.ClauseRow) string {
	var sb strings.Builder
	sb.WriteString("Tender Document:\n")
	sb.WriteString(tenderText)
	sb.WriteString("\n\nClauses:\n")
	for _, row := range batch {
		sb.WriteString(fmt.Sprintf("%d, %s\n", row.Serial, row.Clause))
	}
	return sb.String()
}
