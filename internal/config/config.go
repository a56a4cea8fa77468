// ABOUTME: Centralized configuration for the SOTR compliance assistant
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the compliance pipeline
type Config struct {
	// OpenAI settings
	OpenAIKey  string
	ChatModel  string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration

	// Pipeline settings
	BatchSize       int // clause rows per compliance-check call
	MatrixMaxTokens int // completion budget per section extraction
	CheckMaxTokens  int // completion budget per compliance batch
	AnswerMaxTokens int // completion budget per document query
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
		ChatModel:       getEnv("SOTR_OPENAI_MODEL", "gpt-4o-mini"),
		Timeout:         getEnvDuration("OPENAI_TIMEOUT", 120*time.Second),
		MaxRetries:      getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:      getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
		BatchSize:       getEnvInt("SOTR_BATCH_SIZE", 10),
		MatrixMaxTokens: getEnvInt("SOTR_MATRIX_MAX_TOKENS", 8192),
		CheckMaxTokens:  getEnvInt("SOTR_CHECK_MAX_TOKENS", 4096),
		AnswerMaxTokens: getEnvInt("SOTR_ANSWER_MAX_TOKENS", 1024),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.BatchSize <= 0 {
		return fmt.Errorf("SOTR_BATCH_SIZE must be positive, got %d", c.BatchSize)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.MatrixMaxTokens <= 0 || c.CheckMaxTokens <= 0 || c.AnswerMaxTokens <= 0 {
		return fmt.Errorf("token budgets must be positive")
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
