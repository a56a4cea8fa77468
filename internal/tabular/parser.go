// ABOUTME: Defensive parser for pipe-delimited LLM responses
// ABOUTME: Never errors on malformed rows; degrades to Unknown placeholders
package tabular

import (
	"encoding/csv"
	"strings"
)

// Placeholder fills any field the parser could not recover from a row
const Placeholder = "Unknown"

// Separator is the field separator the LLM wire contract mandates
const Separator = '|'

// Record maps column names to field values. Every record produced by Parse
// has exactly one value per expected column.
type Record map[string]string

// Parse turns pipe-delimited free text into records keyed by expectedColumns.
// The first non-empty line is the header; subsequent non-empty lines are data
// rows. A row whose field count does not match the header becomes a full
// placeholder row. Columns listed in expectedColumns but absent from the
// header are synthesized as Placeholder for every row. Parse never fails:
// the LLM response is untrusted input and one malformed row must not abort
// the batch.
func Parse(rawText string, expectedColumns []string) []Record {
	rows := tokenize(rawText)
	if len(rows) == 0 {
		return nil
	}

	header := rows[0]
	// header column name -> field index
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[cleanField(name)] = i
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(Record, len(expectedColumns))
		if len(row) != len(header) {
			for _, col := range expectedColumns {
				rec[col] = Placeholder
			}
			records = append(records, rec)
			continue
		}
		for _, col := range expectedColumns {
			if i, ok := index[col]; ok {
				rec[col] = cleanField(row[i])
			} else {
				rec[col] = Placeholder
			}
		}
		records = append(records, rec)
	}

	return records
}

// tokenize attempts a quote-aware CSV read first and falls back to raw
// line-by-line splitting when the reader rejects the text
func tokenize(rawText string) [][]string {
	trimmed := strings.TrimSpace(rawText)
	if trimmed == "" {
		return nil
	}

	r := csv.NewReader(strings.NewReader(trimmed))
	r.Comma = Separator
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return splitLines(trimmed)
	}
	return rows
}

// splitLines is the raw fallback: one row per line, fields split on the
// separator with no quote handling
func splitLines(text string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rows = append(rows, strings.Split(line, string(Separator)))
	}
	return rows
}

// cleanField trims whitespace and strips one layer of surrounding quotes
func cleanField(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	return strings.TrimSpace(s)
}
