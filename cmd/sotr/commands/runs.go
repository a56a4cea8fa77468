// ABOUTME: CLI command to list archived matrix, compliance, and query runs
// ABOUTME: Reads the local sqlite archive and prints a summary table
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tenderlab/sotr/internal/storage/sqlite"
)

var runsLimit int

// NewRunsCmd creates the runs command
func NewRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List archived runs",
		Long: `List archived matrix, compliance, and query runs, newest first.

Every matrix build, compliance check, and question exchange is archived
locally unless --no-archive was passed.`,
		RunE: runRuns,
		Example: `  sotr runs
  sotr runs --limit 5`,
	}

	cmd.Flags().IntVar(&runsLimit, "limit", 20, "Maximum number of runs to show")

	return cmd
}

func runRuns(cmd *cobra.Command, args []string) error {
	db, err := sqlite.Open(sqlite.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open run archive: %w", err)
	}
	defer func() { _ = db.Close() }()

	runs, err := sqlite.NewRunStore(db).ListRuns(runsLimit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No archived runs.")
		return nil
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-36s  %-10s  %-5s  %-16s  %s\n", "ID", "KIND", "ROWS", "WHEN", "SOURCE")
	for _, r := range runs {
		fmt.Fprintf(out, "%-36s  %-10s  %-5d  %-16s  %s\n",
			r.ID, r.Kind, r.RowCount, formatTime(r.CreatedAt), truncate(r.SourceFile, 40))
	}

	return nil
}
