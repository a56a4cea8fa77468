// ABOUTME: CLI command to build a clause matrix from a SOTR document
// ABOUTME: Extracts clauses per section and writes the reviewable xlsx
package commands

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tenderlab/sotr/internal/core"
	"github.com/tenderlab/sotr/internal/models"
	"github.com/tenderlab/sotr/internal/storage/sqlite"
	"github.com/tenderlab/sotr/internal/xlsx"
)

var (
	matrixOutput    string
	matrixNoArchive bool
)

// NewMatrixCmd creates the matrix command
func NewMatrixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "matrix <pdf|md>",
		Short: "Build a clause matrix from a SOTR document",
		Long: `Build a compliance clause matrix from a SOTR document.

Splits the document at its level-2 headings, extracts atomic requirement
clauses from each section, and writes them to an xlsx file with columns
"Sr. No.", "Clause", and "Clause Reference". Review and edit the file
before running a compliance check.

A section whose extraction call fails is skipped; check the reported
clause count against expectations before relying on the matrix.`,
		Args: cobra.ExactArgs(1),
		RunE: runMatrix,
	}

	cmd.Flags().StringVarP(&matrixOutput, "output", "o", "matrix.xlsx", "Output xlsx path")
	cmd.Flags().BoolVar(&matrixNoArchive, "no-archive", false, "Skip archiving the run")

	return cmd
}

func runMatrix(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	completer, err := newCompleter(cfg)
	if err != nil {
		return err
	}

	text, err := loadDocument(args[0])
	if err != nil {
		return err
	}

	builder := core.NewSOTRBuilder(completer, cfg.MatrixMaxTokens)
	matrix, rawLines, err := builder.BuildMatrix(cmd.Context(), text)
	if err != nil {
		return fmt.Errorf("building matrix: %w", err)
	}

	if matrix.IsEmpty() {
		return fmt.Errorf("no clauses extracted from %s: the document has no level-2-headed sections or every section failed", args[0])
	}

	if err := xlsx.SaveMatrix(matrixOutput, matrix); err != nil {
		return err
	}
	progress("Extracted %d clauses to %s", matrix.Len(), matrixOutput)

	if !matrixNoArchive {
		if err := archiveMatrixRun(args[0], matrix, rawLines); err != nil {
			progress("Warning: archiving run failed: %v", err)
		}
	}

	return nil
}

func archiveMatrixRun(sourceFile string, matrix models.ClauseMatrix, rawLines []string) error {
	db, err := sqlite.Open(sqlite.DefaultDBPath())
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	return sqlite.NewRunStore(db).SaveMatrixRun(uuid.New().String(), sourceFile, matrix, rawLines)
}
