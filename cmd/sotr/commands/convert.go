// ABOUTME: CLI command to convert a PDF into heading-annotated markdown
// ABOUTME: Writes the converted text next to the source for inspection
package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tenderlab/sotr/internal/markdown"
)

var convertOutput string

// NewConvertCmd creates the convert command
func NewConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <pdf>",
		Short: "Convert a PDF to heading-annotated markdown",
		Long: `Convert a PDF document to heading-annotated markdown.

The output feeds the matrix and check commands; converting once and
reusing the .md file avoids re-extracting the PDF on every run.`,
		Args: cobra.ExactArgs(1),
		RunE: runConvert,
	}

	cmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Output path (default: source name with .md extension)")

	return cmd
}

func runConvert(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	text, err := markdown.NewPDFConverter().Convert(data)
	if err != nil {
		return fmt.Errorf("converting %s: %w", args[0], err)
	}

	output := convertOutput
	if output == "" {
		output = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".md"
	}

	if err := os.WriteFile(output, []byte(text), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}

	progress("Converted %s -> %s (%d bytes)", args[0], output, len(text))
	return nil
}
