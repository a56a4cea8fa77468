// ABOUTME: SQLite schema for the run archive
// ABOUTME: Stores matrix builds, compliance runs, and document Q&A history
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
-- One row per pipeline invocation (matrix build, compliance check, or query)
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    kind TEXT NOT NULL,
    source_file TEXT,
    row_count INTEGER DEFAULT 0,
    raw_lines TEXT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Clause rows captured by a matrix build
CREATE TABLE IF NOT EXISTS clause_rows (
    run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    serial INTEGER NOT NULL,
    clause TEXT NOT NULL,
    reference TEXT,
    PRIMARY KEY (run_id, serial)
);

-- Compliance records captured by a check run
CREATE TABLE IF NOT EXISTS compliance_rows (
    run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    clause_number TEXT,
    clause_text TEXT,
    summary TEXT,
    status TEXT,
    reference TEXT,
    PRIMARY KEY (run_id, position)
);

-- Question/answer pairs from document queries
CREATE TABLE IF NOT EXISTS answers (
    run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    question_no INTEGER NOT NULL,
    question TEXT NOT NULL,
    response TEXT,
    PRIMARY KEY (run_id, question_no)
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
CREATE INDEX IF NOT EXISTS idx_runs_kind ON runs(kind);
`
