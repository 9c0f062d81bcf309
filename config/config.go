package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	OpenAI     OpenAIConfig
	Generation GenerationConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// OpenAIConfig holds the chat completion API configuration
type OpenAIConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	BaseURL     string  `mapstructure:"base_url"` // empty means the SDK default
	Model       string  `mapstructure:"model"`
	Temperature float32 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
}

// GenerationConfig holds query-generation pipeline configuration
type GenerationConfig struct {
	PerBucketLimit int  `mapstructure:"per_bucket_limit"`
	Concurrency    int  `mapstructure:"concurrency"`
	SelfCheck      bool `mapstructure:"self_check"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/querygen/")

	// Environment variable settings
	v.SetEnvPrefix("QUERYGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// OpenAI defaults. The empty api_key default keeps the key visible to
	// AutomaticEnv so QUERYGEN_OPENAI_API_KEY is picked up.
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.base_url", "")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.temperature", 0.7)
	v.SetDefault("openai.max_tokens", 400)

	// Generation defaults
	v.SetDefault("generation.per_bucket_limit", 2)
	v.SetDefault("generation.concurrency", 4)
	v.SetDefault("generation.self_check", false)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.OpenAI.APIKey == "" {
		return fmt.Errorf("OpenAI API key is required (set QUERYGEN_OPENAI_API_KEY)")
	}

	if config.OpenAI.Model == "" {
		return fmt.Errorf("OpenAI model must not be empty")
	}

	if config.Generation.PerBucketLimit < 1 {
		return fmt.Errorf("generation per-bucket limit must be >= 1, got: %d", config.Generation.PerBucketLimit)
	}

	if config.Generation.Concurrency < 1 {
		return fmt.Errorf("generation concurrency must be >= 1, got: %d", config.Generation.Concurrency)
	}

	return nil
}
