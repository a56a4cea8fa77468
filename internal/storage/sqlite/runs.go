// ABOUTME: Run archive persistence for SQLite
// ABOUTME: Saves matrix builds, compliance runs, and Q&A history for audit
package sqlite

import (
	"database/sql"
	"strings"
	"time"

	"github.com/tenderlab/sotr/internal/core"
	"github.com/tenderlab/sotr/internal/models"
)

// Run kinds stored in the archive
const (
	RunKindMatrix     = "matrix"
	RunKindCompliance = "compliance"
	RunKindQuery      = "query"
)

// Run summarizes one archived pipeline invocation
type Run struct {
	ID         string
	Kind       string
	SourceFile string
	RowCount   int
	CreatedAt  time.Time
}

// RunStore handles run archive persistence
type RunStore struct {
	db *DB
}

// NewRunStore creates a new RunStore
func NewRunStore(db *DB) *RunStore {
	return &RunStore{db: db}
}

// SaveMatrixRun archives a matrix build along with its raw response lines.
// The raw lines are the audit trail for debugging model output.
func (s *RunStore) SaveMatrixRun(runID, sourceFile string, matrix models.ClauseMatrix, rawLines []string) error {
	_, err := s.db.Exec(`
		INSERT INTO runs (id, kind, source_file, row_count, raw_lines, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, runID, RunKindMatrix, sourceFile, matrix.Len(), strings.Join(rawLines, "\n"), time.Now())
	if err != nil {
		return err
	}

	for _, row := range matrix.Rows {
		if _, err := s.db.Exec(`
			INSERT INTO clause_rows (run_id, serial, clause, reference)
			VALUES (?, ?, ?, ?)
		`, runID, row.Serial, row.Clause, row.Reference); err != nil {
			return err
		}
	}
	return nil
}

// SaveComplianceRun archives a compliance check's result table
func (s *RunStore) SaveComplianceRun(runID, sourceFile string, table models.ComplianceTable) error {
	_, err := s.db.Exec(`
		INSERT INTO runs (id, kind, source_file, row_count, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, runID, RunKindCompliance, sourceFile, table.Len(), time.Now())
	if err != nil {
		return err
	}

	for i, rec := range table.Records {
		if _, err := s.db.Exec(`
			INSERT INTO compliance_rows (run_id, position, clause_number, clause_text, summary, status, reference)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, runID, i, rec.ClauseNumber, rec.ClauseText, rec.Summary, string(rec.Status), rec.Reference); err != nil {
			return err
		}
	}
	return nil
}

// SaveQueryRun archives a document Q&A exchange
func (s *RunStore) SaveQueryRun(runID, sourceFile string, questions []core.Question, answers []core.Answer) error {
	_, err := s.db.Exec(`
		INSERT INTO runs (id, kind, source_file, row_count, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, runID, RunKindQuery, sourceFile, len(answers), time.Now())
	if err != nil {
		return err
	}

	responses := make(map[int]string, len(answers))
	for _, a := range answers {
		responses[a.Number] = a.Response
	}

	for _, q := range questions {
		if _, err := s.db.Exec(`
			INSERT INTO answers (run_id, question_no, question, response)
			VALUES (?, ?, ?, ?)
		`, runID, q.Number, q.Question, responses[q.Number]); err != nil {
			return err
		}
	}
	return nil
}

// ListRuns returns archived runs, newest first
func (s *RunStore) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`
		SELECT id, kind, source_file, row_count, created_at
		FROM runs
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var (
			run    Run
			source sql.NullString
		)
		if err := rows.Scan(&run.ID, &run.Kind, &source, &run.RowCount, &run.CreatedAt); err != nil {
			return nil, err
		}
		if source.Valid {
			run.SourceFile = source.String
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetMatrixRun loads an archived matrix and its raw audit lines
func (s *RunStore) GetMatrixRun(runID string) (models.ClauseMatrix, []string, error) {
	var raw sql.NullString
	err := s.db.QueryRow(`SELECT raw_lines FROM runs WHERE id = ? AND kind = ?`, runID, RunKindMatrix).Scan(&raw)
	if err == sql.ErrNoRows {
		return models.ClauseMatrix{}, nil, nil
	}
	if err != nil {
		return models.ClauseMatrix{}, nil, err
	}

	rows, err := s.db.Query(`
		SELECT serial, clause, reference
		FROM clause_rows
		WHERE run_id = ?
		ORDER BY serial
	`, runID)
	if err != nil {
		return models.ClauseMatrix{}, nil, err
	}
	defer func() { _ = rows.Close() }()

	var matrix models.ClauseMatrix
	for rows.Next() {
		var (
			row models.ClauseRow
			ref sql.NullString
		)
		if err := rows.Scan(&row.Serial, &row.Clause, &ref); err != nil {
			return models.ClauseMatrix{}, nil, err
		}
		if ref.Valid {
			row.Reference = ref.String
		}
		matrix.Rows = append(matrix.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return models.ClauseMatrix{}, nil, err
	}

	var rawLines []string
	if raw.Valid && raw.String != "" {
		rawLines = strings.Split(raw.String, "\n")
	}
	return matrix, rawLines, nil
}
