// ABOUTME: SOTRBuilder turns a converted document into a clause matrix
// ABOUTME: One completion call per level-2 section, best-effort across sections
package core

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/tenderlab/sotr/internal/llm"
	"github.com/tenderlab/sotr/internal/markdown"
	"github.com/tenderlab/sotr/internal/models"
	"github.com/tenderlab/sotr/internal/tabular"
)

// SOTRBuilder drives clause extraction over a sectioned document
type SOTRBuilder struct {
	completer llm.Completer
	maxTokens int
}

// NewSOTRBuilder creates a builder using the given completion service
func NewSOTRBuilder(completer llm.Completer, maxTokens int) *SOTRBuilder {
	if maxTokens <= 0 {
		maxTokens = 8192
	}
	return &SOTRBuilder{completer: completer, maxTokens: maxTokens}
}

// BuildMatrix splits the document into sections, runs one extraction call per
// section sequentially, and parses the accumulated response lines into a
// clause matrix. A section whose call fails is logged and skipped: matrix
// construction is best-effort across sections, not atomic. The returned raw
// lines (canonical header first) are kept for audit by the caller.
//
// An empty matrix is a valid result for a document with no level-2-headed
// content; callers must check ClauseMatrix.IsEmpty before proceeding.
func (b *SOTRBuilder) BuildMatrix(ctx context.Context, markdownText string) (models.ClauseMatrix, []string, error) {
	sections, err := markdown.Split(markdownText)
	if err != nil {
		return models.ClauseMatrix{}, nil, fmt.Errorf("splitting document: %w", err)
	}

	rawLines := []string{MatrixHeader}

	for i, section := range sections {
		userPrompt := fmt.Sprintf("section number:\n%s\nmarkdown text:\n%s", section.ID, section.Content)

		response, err := b.completer.Complete(ctx, matrixSystemPrompt, userPrompt, b.maxTokens)
		if err != nil {
			log.Printf("[SOTR] section %s (%d/%d): completion failed, skipping: %v", section.ID, i+1, len(sections), err)
			continue
		}

		// keep only the data lines; the model repeats the header
		lines := strings.Split(response, "\n")
		if len(lines) > 1 {
			rawLines = append(rawLines, lines[1:]...)
		}
		log.Printf("[SOTR] completed section %s (%d/%d)", section.ID, i+1, len(sections))
	}

	matrix := buildMatrixRows(rawLines)
	return matrix, rawLines, nil
}

// buildMatrixRows parses accumulated response lines into clause rows.
// Serials are renumbered densely from 0; whatever serial the model emitted
// contributes ordering only.
func buildMatrixRows(rawLines []string) models.ClauseMatrix {
	records := tabular.Parse(strings.Join(rawLines, "\n"), MatrixColumns)

	rows := make([]models.ClauseRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, models.ClauseRow{
			Serial:    len(rows),
			Clause:    strings.ReplaceAll(rec[MatrixColumns[1]], `"`, ""),
			Reference: rec[MatrixColumns[2]],
		})
	}

	return models.ClauseMatrix{Rows: rows}
}

// MatrixFromRecords rebuilds a clause matrix from interchange records keyed
// by the spreadsheet column names. Column names, not positions, are
// authoritative when reloading a human-edited matrix.
func MatrixFromRecords(records []tabular.Record) models.ClauseMatrix {
	rows := make([]models.ClauseRow, 0, len(records))
	for _, rec := range records {
		serial := len(rows)
		if n, err := strconv.Atoi(strings.TrimSpace(rec["Sr. No."])); err == nil {
			serial = n
		}
		rows = append(rows, models.ClauseRow{
			Serial:    serial,
			Clause:    rec["Clause"],
			Reference: rec["Clause Reference"],
		})
	}
	return models.ClauseMatrix{Rows: rows}
}
