// ABOUTME: CLI command to check a tender document against a clause matrix
// ABOUTME: Batches clauses per completion call and writes verdicts to xlsx
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
	checkMatrixPath string
	checkTenderPath string
	checkOutput     string
	checkBatchSize  int
	checkNoArchive  bool
)

// NewCheckCmd creates the check command
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check a tender against a reviewed clause matrix",
		Long: `Check a tender document against a reviewed clause matrix.

Sends the clause rows in batches, together with the full tender text,
and records a compliance summary, supporting reference, and a
Yes/Partial/No status for each clause. Results go to an xlsx file with
the Status column colored by verdict.

A failed batch contributes no rows; if the output has fewer rows than
the matrix, compare serials to find the gap.`,
		RunE: runCheck,
		Example: `  sotr check --matrix matrix.xlsx --tender tender.pdf
  sotr check --matrix matrix.xlsx --tender tender.md --batch-size 5`,
	}

	cmd.Flags().StringVar(&checkMatrixPath, "matrix", "", "Reviewed clause matrix xlsx (required)")
	cmd.Flags().StringVar(&checkTenderPath, "tender", "", "Tender document, PDF or markdown (required)")
	cmd.Flags().StringVarP(&checkOutput, "output", "o", "results.xlsx", "Output xlsx path")
	cmd.Flags().IntVar(&checkBatchSize, "batch-size", 0, "Clauses per completion call (default from config)")
	cmd.Flags().BoolVar(&checkNoArchive, "no-archive", false, "Skip archiving the run")
	_ = cmd.MarkFlagRequired("matrix")
	_ = cmd.MarkFlagRequired("tender")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	completer, err := newCompleter(cfg)
	if err != nil {
		return err
	}

	matrix, err := xlsx.LoadMatrix(checkMatrixPath)
	if err != nil {
		return err
	}
	tenderText, err := loadDocument(checkTenderPath)
	if err != nil {
		return err
	}

	batchSize := cfg.BatchSize
	if checkBatchSize > 0 {
		batchSize = checkBatchSize
	}

	checker := core.NewComplianceChecker(completer, batchSize, cfg.CheckMaxTokens)
	if err := checker.LoadTender(tenderText); err != nil {
		return err
	}
	if err := checker.LoadMatrix(matrix); err != nil {
		return fmt.Errorf("%w (is %s empty?)", err, checkMatrixPath)
	}

	table, err := checker.Check(cmd.Context())
	if err != nil {
		return fmt.Errorf("checking compliance: %w", err)
	}

	if err := xlsx.SaveResults(checkOutput, table); err != nil {
		return err
	}

	progress("Checked %d clauses, wrote %d verdicts to %s", matrix.Len(), table.Len(), checkOutput)
	if table.Len() < matrix.Len() {
		progress("Warning: %d clauses have no verdict (failed batches)", matrix.Len()-table.Len())
	}

	if !checkNoArchive {
		if err := archiveComplianceRun(checkTenderPath, table); err != nil {
			progress("Warning: archiving run failed: %v", err)
		}
	}

	return nil
}

func archiveComplianceRun(sourceFile string, table models.ComplianceTable) error {
	db, err := sqlite.Open(sqlite.DefaultDBPath())
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	return sqlite.NewRunStore(db).SaveComplianceRun(uuid.New().String(), sourceFile, table)
}
