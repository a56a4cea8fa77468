// ABOUTME: MCP tool definitions and registration for the SOTR server
// ABOUTME: Exposes matrix building, compliance checking, and document Q&A
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/tenderlab/sotr/internal/config"
	"github.com/tenderlab/sotr/internal/llm"
	"github.com/tenderlab/sotr/internal/storage/sqlite"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, cfg *config.Config, completer llm.Completer, runs *sqlite.RunStore) *Handlers {
	handlers := &Handlers{
		cfg:       cfg,
		completer: completer,
		runs:      runs,
	}

	// 1. build_matrix - Extract a clause matrix from a SOTR document
	server.AddTool(mcp.Tool{
		Name:        "build_matrix",
		Description: "Extract a compliance clause matrix from a SOTR document (PDF or markdown) and write it to an xlsx file for review.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"source_path": map[string]interface{}{
					"type":        "string",
					"description": "Path to the SOTR document (PDF or markdown)",
				},
				"output_path": map[string]interface{}{
					"type":        "string",
					"description": "Path for the output xlsx matrix (default: matrix.xlsx next to the source)",
				},
			},
			Required: []string{"source_path"},
		},
	}, handlers.BuildMatrix)

	// 2. check_compliance - Verify a tender against a reviewed clause matrix
	server.AddTool(mcp.Tool{
		Name:        "check_compliance",
		Description: "Check a tender document against a reviewed clause matrix and write per-clause verdicts (Yes/Partial/No) to an xlsx file.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"matrix_path": map[string]interface{}{
					"type":        "string",
					"description": "Path to the reviewed clause matrix xlsx",
				},
				"tender_path": map[string]interface{}{
					"type":        "string",
					"description": "Path to the tender document (PDF or markdown)",
				},
				"output_path": map[string]interface{}{
					"type":        "string",
					"description": "Path for the output xlsx results (default: results.xlsx next to the tender)",
				},
			},
			Required: []string{"matrix_path", "tender_path"},
		},
	}, handlers.CheckCompliance)

	// 3. query_document - Long-context Q&A over a document
	server.AddTool(mcp.Tool{
		Name:        "query_document",
		Description: "Answer a question about a document (PDF or markdown) using its full text as context.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"source_path": map[string]interface{}{
					"type":        "string",
					"description": "Path to the document (PDF or markdown)",
				},
				"question": map[string]interface{}{
					"type":        "string",
					"description": "Question to answer from the document",
				},
			},
			Required: []string{"source_path", "question"},
		},
	}, handlers.QueryDocument)

	// 4. list_runs - Inspect the run archive
	server.AddTool(mcp.Tool{
		Name:        "list_runs",
		Description: "List archived matrix builds, compliance checks, and document queries, newest first.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of runs to return (default: 20)",
					"default":     20,
				},
			},
		},
	}, handlers.ListRuns)

	return handlers
}
