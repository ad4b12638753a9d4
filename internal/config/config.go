package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	LLM      LLMConfig      `mapstructure:"llm" validate:"required"`
	Task     TaskConfig     `mapstructure:"task"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
// An empty URL disables the persistence gateway; the engine then runs on
// in-memory state only.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// LLMConfig contains all LLM integration related settings. An empty
// API key disables the generator; replies then fall back to the fixed
// apology text.
type LLMConfig struct {
	GeminiAPIKey   string        `mapstructure:"gemini_api_key"`
	ModelName      string        `mapstructure:"model_name"       validate:"required"`
	MaxRetries     int           `mapstructure:"max_retries"      validate:"gte=0,lte=10"`
	RetryBaseDelay time.Duration `mapstructure:"retry_base_delay"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// TaskConfig controls the background persistence workers.
type TaskConfig struct {
	WorkerCount int `mapstructure:"worker_count" validate:"gte=1,lte=32"`
	QueueSize   int `mapstructure:"queue_size"   validate:"gte=1"`
}
