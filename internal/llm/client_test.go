// ABOUTME: Tests for the completion client configuration
// ABOUTME: Verifies defaults, env overrides, and key validation

package llm

import (
	"os"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	os.Unsetenv("SOTR_OPENAI_MODEL")

	cfg := DefaultConfig("key")
	if cfg.ChatModel != DefaultChatModel {
		t.Errorf("ChatModel = %q, want %q", cfg.ChatModel, DefaultChatModel)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.MaxRetries)
	}
	if cfg.RetryDelay != 2*time.Second {
		t.Errorf("RetryDelay = %v, want 2s", cfg.RetryDelay)
	}
}

func TestDefaultConfig_ModelOverride(t *testing.T) {
	os.Setenv("SOTR_OPENAI_MODEL", "gpt-4")
	defer os.Unsetenv("SOTR_OPENAI_MODEL")

	cfg := DefaultConfig("key")
	if cfg.ChatModel != "gpt-4" {
		t.Errorf("ChatModel = %q, want gpt-4", cfg.ChatModel)
	}
}

func TestNewClient_RequiresKey(t *testing.T) {
	if _, err := NewClient(""); err == nil {
		t.Error("expected error for empty API key")
	}

	client, err := NewClient("test-key")
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if client == nil {
		t.Fatal("NewClient() returned nil client")
	}
}
