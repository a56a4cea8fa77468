// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Exposes matrix, compliance, and query tools to LLM agents over stdio
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/tenderlab/sotr/internal/config"
	"github.com/tenderlab/sotr/internal/llm"
	"github.com/tenderlab/sotr/internal/mcp"
	"github.com/tenderlab/sotr/internal/storage/sqlite"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs sotr as an MCP (Model Context Protocol) server, enabling LLM
agents like Claude to build clause matrices, run compliance checks,
and query documents via stdio.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by an MCP client)
  sotr mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "sotr": {
  #       "command": "sotr",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil && !quiet {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	var completer llm.Completer
	if cfg.OpenAIKey == "" {
		log.Println("Warning: OPENAI_API_KEY not set - matrix, check, and query tools will not work")
	} else {
		client, err := llm.NewClientWithConfig(&llm.ClientConfig{
			APIKey:     cfg.OpenAIKey,
			ChatModel:  cfg.ChatModel,
			Timeout:    cfg.Timeout,
			MaxRetries: cfg.MaxRetries,
			RetryDelay: cfg.RetryDelay,
		})
		if err != nil {
			log.Printf("Warning: Failed to initialize OpenAI client: %v", err)
		} else {
			completer = client
			if verbose {
				log.Printf("OpenAI client initialized (model %s)", cfg.ChatModel)
			}
		}
	}

	// Run archive for past matrices, checks, and query exchanges
	db, err := sqlite.Open(sqlite.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open run archive: %w", err)
	}
	runs := sqlite.NewRunStore(db)

	// Create MCP server
	server := mcpserver.NewMCPServer(
		"SOTR Compliance Assistant",
		versionInfo.Version,
	)

	// Register MCP tools
	mcp.RegisterTools(server, cfg, completer, runs)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Println("SOTR MCP server starting on stdio...")
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	// Wait for shutdown signal or server error
	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, gracefully shutting down...")
		}

		if err := db.Close(); err != nil {
			log.Printf("Warning: Error closing run archive: %v", err)
		}

		if !quiet {
			log.Println("Shutdown complete")
		}

	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
