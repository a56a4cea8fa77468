// ABOUTME: Shared utility functions for CLI commands
// ABOUTME: Document loading, completion client setup, and output helpers
package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/tenderlab/sotr/internal/config"
	"github.com/tenderlab/sotr/internal/llm"
	"github.com/tenderlab/sotr/internal/mcp"
)

// loadConfig loads .env (when present) and the environment configuration
func loadConfig() (*config.Config, error) {
	_ = godotenv.Load()
	return config.Load()
}

// newCompleter builds the completion client from configuration
func newCompleter(cfg *config.Config) (llm.Completer, error) {
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}
	return llm.NewClientWithConfig(&llm.ClientConfig{
		APIKey:     cfg.OpenAIKey,
		ChatModel:  cfg.ChatModel,
		Timeout:    cfg.Timeout,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
	})
}

// loadDocument reads a PDF or markdown file into annotated markdown text
func loadDocument(path string) (string, error) {
	return mcp.LoadDocument(path)
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return string(runes[:maxLen-3]) + "..."
}

// formatTime formats a time for display
func formatTime(t time.Time) string {
	now := time.Now()
	diff := now.Sub(t)

	if diff < time.Minute {
		return "just now"
	} else if diff < time.Hour {
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	} else if diff < 24*time.Hour {
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	} else if diff < 7*24*time.Hour {
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	}
	return t.Format("2006-01-02")
}

// progress writes a progress line unless --quiet is set
func progress(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
