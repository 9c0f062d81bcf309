package config

import (
	"os"
	"testing"
)

func TestLoad(t *testing.T) {
	// Clean up environment before tests
	cleanupEnv := func() {
		os.Unsetenv("QUERYGEN_SERVER_PORT")
		os.Unsetenv("QUERYGEN_SERVER_ENVIRONMENT")
		os.Unsetenv("QUERYGEN_OPENAI_API_KEY")
		os.Unsetenv("QUERYGEN_OPENAI_BASE_URL")
		os.Unsetenv("QUERYGEN_OPENAI_MODEL")
		os.Unsetenv("QUERYGEN_OPENAI_TEMPERATURE")
		os.Unsetenv("QUERYGEN_OPENAI_MAX_TOKENS")
		os.Unsetenv("QUERYGEN_GENERATION_PER_BUCKET_LIMIT")
		os.Unsetenv("QUERYGEN_GENERATION_CONCURRENCY")
		os.Unsetenv("QUERYGEN_GENERATION_SELF_CHECK")
	}

	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cleanupEnv()
		// Set required API key
		os.Setenv("QUERYGEN_OPENAI_API_KEY", "test-key")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		// Check defaults
		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.OpenAI.Model != "gpt-4o-mini" {
			t.Errorf("OpenAI.Model = %s, want gpt-4o-mini", cfg.OpenAI.Model)
		}
		if cfg.OpenAI.Temperature != 0.7 {
			t.Errorf("OpenAI.Temperature = %v, want 0.7", cfg.OpenAI.Temperature)
		}
		if cfg.OpenAI.MaxTokens != 400 {
			t.Errorf("OpenAI.MaxTokens = %d, want 400", cfg.OpenAI.MaxTokens)
		}
		if cfg.Generation.PerBucketLimit != 2 {
			t.Errorf("Generation.PerBucketLimit = %d, want 2", cfg.Generation.PerBucketLimit)
		}
		if cfg.Generation.Concurrency != 4 {
			t.Errorf("Generation.Concurrency = %d, want 4", cfg.Generation.Concurrency)
		}
		if cfg.Generation.SelfCheck {
			t.Error("Generation.SelfCheck should default to false")
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("QUERYGEN_SERVER_PORT", "9090")
		os.Setenv("QUERYGEN_SERVER_ENVIRONMENT", "production")
		os.Setenv("QUERYGEN_OPENAI_API_KEY", "custom-api-key")
		os.Setenv("QUERYGEN_OPENAI_BASE_URL", "http://localhost:8081/v1")
		os.Setenv("QUERYGEN_OPENAI_MODEL", "gpt-4o")
		os.Setenv("QUERYGEN_OPENAI_MAX_TOKENS", "800")
		os.Setenv("QUERYGEN_GENERATION_PER_BUCKET_LIMIT", "3")
		os.Setenv("QUERYGEN_GENERATION_CONCURRENCY", "8")
		os.Setenv("QUERYGEN_GENERATION_SELF_CHECK", "true")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.OpenAI.APIKey != "custom-api-key" {
			t.Errorf("OpenAI.APIKey = %s, want custom-api-key", cfg.OpenAI.APIKey)
		}
		if cfg.OpenAI.BaseURL != "http://localhost:8081/v1" {
			t.Errorf("OpenAI.BaseURL = %s, want http://localhost:8081/v1", cfg.OpenAI.BaseURL)
		}
		if cfg.OpenAI.Model != "gpt-4o" {
			t.Errorf("OpenAI.Model = %s, want gpt-4o", cfg.OpenAI.Model)
		}
		if cfg.OpenAI.MaxTokens != 800 {
			t.Errorf("OpenAI.MaxTokens = %d, want 800", cfg.OpenAI.MaxTokens)
		}
		if cfg.Generation.PerBucketLimit != 3 {
			t.Errorf("Generation.PerBucketLimit = %d, want 3", cfg.Generation.PerBucketLimit)
		}
		if cfg.Generation.Concurrency != 8 {
			t.Errorf("Generation.Concurrency = %d, want 8", cfg.Generation.Concurrency)
		}
		if !cfg.Generation.SelfCheck {
			t.Error("Generation.SelfCheck = false, want true")
		}
	})

	t.Run("fails without API key", func(t *testing.T) {
		cleanupEnv()
		defer cleanupEnv()

		if _, err := Load(); err == nil {
			t.Error("Load() should fail when the OpenAI API key is missing")
		}
	})

	t.Run("fails for concurrency below one", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("QUERYGEN_OPENAI_API_KEY", "test-key")
		os.Setenv("QUERYGEN_GENERATION_CONCURRENCY", "0")
		defer cleanupEnv()

		if _, err := Load(); err == nil {
			t.Error("Load() should fail for concurrency < 1")
		}
	})

	t.Run("fails for per-bucket limit below one", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("QUERYGEN_OPENAI_API_KEY", "test-key")
		os.Setenv("QUERYGEN_GENERATION_PER_BUCKET_LIMIT", "0")
		defer cleanupEnv()

		if _, err := Load(); err == nil {
			t.Error("Load() should fail for per-bucket limit < 1")
		}
	})
}
