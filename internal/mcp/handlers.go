// ABOUTME: MCP tool handler implementations for the SOTR server
// ABOUTME: File loading, pipeline invocation, and run archiving per tool call
package mcp

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/tenderlab/sotr/internal/config"
	"github.com/tenderlab/sotr/internal/core"
	"github.com/tenderlab/sotr/internal/llm"
	"github.com/tenderlab/sotr/internal/markdown"
	"github.com/tenderlab/sotr/internal/storage/sqlite"
	"github.com/tenderlab/sotr/internal/xlsx"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	cfg       *config.Config
	completer llm.Completer
	runs      *sqlite.RunStore
}

// LoadDocument reads a source file and returns heading-annotated markdown.
// PDF bytes go through the converter; anything else is treated as already
// converted markdown text.
func LoadDocument(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	if bytes.HasPrefix(data, []byte("%PDF")) {
		text, err := markdown.NewPDFConverter().Convert(data)
		if err != nil {
			return "", fmt.Errorf("converting %s: %w", path, err)
		}
		return text, nil
	}
	return string(data), nil
}

// requireCompleter reports whether the completion client is available
func (h *Handlers) requireCompleter() *mcp.CallToolResult {
	if h.completer == nil {
		return mcp.NewToolResultError("OPENAI_API_KEY is not set; this tool needs a completion client")
	}
	return nil
}

// BuildMatrix handles the build_matrix tool
func (h *Handlers) BuildMatrix(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireCompleter(); res != nil {
		return res, nil
	}
	sourcePath, err := request.RequireString("source_path")
	if err != nil {
		return mcp.NewToolResultError("source_path argument is required and must be a string"), nil
	}
	outputPath := request.GetString("output_path", filepath.Join(filepath.Dir(sourcePath), "matrix.xlsx"))

	text, err := LoadDocument(sourcePath)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	builder := core.NewSOTRBuilder(h.completer, h.cfg.MatrixMaxTokens)
	matrix, rawLines, err := builder.BuildMatrix(ctx, text)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("building matrix: %v", err)), nil
	}
	if matrix.IsEmpty() {
		return mcp.NewToolResultError("no clauses extracted: the document has no level-2-headed sections or every section failed"), nil
	}

	if err := xlsx.SaveMatrix(outputPath, matrix); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("saving matrix: %v", err)), nil
	}

	if h.runs != nil {
		if err := h.runs.SaveMatrixRun(uuid.New().String(), sourcePath, matrix, rawLines); err != nil {
			log.Printf("[MCP] warning: archiving matrix run failed: %v", err)
		}
	}

	return mcp.NewToolResultText(fmt.Sprintf("Extracted %d clauses to %s. Review and edit the matrix before running check_compliance.", matrix.Len(), outputPath)), nil
}

// CheckCompliance handles the check_compliance tool
func (h *Handlers) CheckCompliance(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireCompleter(); res != nil {
		return res, nil
	}
	matrixPath, err := request.RequireString("matrix_path")
	if err != nil {
		return mcp.NewToolResultError("matrix_path argument is required and must be a string"), nil
	}
	tenderPath, err := request.RequireString("tender_path")
	if err != nil {
		return mcp.NewToolResultError("tender_path argument is required and must be a string"), nil
	}
	outputPath := request.GetString("output_path", filepath.Join(filepath.Dir(tenderPath), "results.xlsx"))

	matrix, err := xlsx.LoadMatrix(matrixPath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading matrix: %v", err)), nil
	}
	tenderText, err := LoadDocument(tenderPath)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	checker := core.NewComplianceChecker(h.completer, h.cfg.BatchSize, h.cfg.CheckMaxTokens)
	if err := checker.LoadTender(tenderText); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := checker.LoadMatrix(matrix); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	table, err := checker.Check(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("checking compliance: %v", err)), nil
	}

	if err := xlsx.SaveResults(outputPath, table); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("saving results: %v", err)), nil
	}

	if h.runs != nil {
		if err := h.runs.SaveComplianceRun(uuid.New().String(), tenderPath, table); err != nil {
			log.Printf("[MCP] warning: archiving compliance run failed: %v", err)
		}
	}

	summary := fmt.Sprintf("Checked %d clauses, wrote %d verdicts to %s.", matrix.Len(), table.Len(), outputPath)
	if table.Len() < matrix.Len() {
		summary += fmt.Sprintf(" %d clauses have no verdict (failed batches); compare serials against the matrix.", matrix.Len()-table.Len())
	}
	return mcp.NewToolResultText(summary), nil
}

// QueryDocument handles the query_document tool
func (h *Handlers) QueryDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireCompleter(); res != nil {
		return res, nil
	}
	sourcePath, err := request.RequireString("source_path")
	if err != nil {
		return mcp.NewToolResultError("source_path argument is required and must be a string"), nil
	}
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("question argument is required and must be a string"), nil
	}

	text, err := LoadDocument(sourcePath)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	doc := core.NewBidDocument(text, h.completer, h.cfg.AnswerMaxTokens)
	answer := doc.Query(ctx, question)

	if h.runs != nil {
		questions := []core.Question{{Number: 1, Question: question}}
		answers := []core.Answer{{Number: 1, Response: answer}}
		if err := h.runs.SaveQueryRun(uuid.New().String(), sourcePath, questions, answers); err != nil {
			log.Printf("[MCP] warning: archiving query run failed: %v", err)
		}
	}

	return mcp.NewToolResultText(answer), nil
}

// ListRuns handles the list_runs tool
func (h *Handlers) ListRuns(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", 20)

	runs, err := h.runs.ListRuns(limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing runs: %v", err)), nil
	}
	if len(runs) == 0 {
		return mcp.NewToolResultText("No archived runs."), nil
	}

	var sb strings.Builder
	for _, run := range runs {
		sb.WriteString(fmt.Sprintf("%s  %-10s  %4d rows  %s  %s\n",
			run.CreatedAt.Format("2006-01-02 15:04"), run.Kind, run.RowCount, run.ID, run.SourceFile))
	}
	return mcp.NewToolResultText(sb.String()), nil
}
