// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: Entry point for convert, matrix, check, ask, runs, and mcp
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
)

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sotr",
		Short: "Tender-compliance assistant",
		Long: `sotr, a tender-compliance assistant.

Builds a Statement of Requirements (SOTR) clause matrix from a tender
document, lets a reviewer edit it as a spreadsheet, and cross-checks a
second document against every clause for a Yes/Partial/No verdict.

Typical flow:
  sotr matrix sotr.pdf              extract clauses to matrix.xlsx
  (review and edit matrix.xlsx)
  sotr check --matrix matrix.xlsx --tender tender.pdf`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress progress output")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(NewConvertCmd())
	cmd.AddCommand(NewMatrixCmd())
	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewAskCmd())
	cmd.AddCommand(NewRunsCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
