package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	Worker   WorkerConfig   `mapstructure:"worker" validate:"required"`
	Planner  PlannerConfig  `mapstructure:"planner" validate:"required"`
	Bias     BiasConfig     `mapstructure:"bias" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
// URL is optional: with no URL configured the service runs on the in-memory
// task store.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// WorkerConfig tunes the background task runner.
type WorkerConfig struct {
	WorkersPerType int           `mapstructure:"workers_per_type" validate:"required,gt=0"`
	QueueSize      int           `mapstructure:"queue_size" validate:"required,gt=0"`
	HandlerTimeout time.Duration `mapstructure:"handler_timeout" validate:"required,gt=0"`
}

// PlannerConfig tunes the schedule optimizer's fallback heuristic.
type PlannerConfig struct {
	BaselineCost        float64 `mapstructure:"baseline_cost" validate:"required,gt=0"`
	WeatherRiskInterval int     `mapstructure:"weather_risk_interval" validate:"required,gt=0"`
}

// BiasConfig tunes the casting bias audit. Thresholds are fractions of the
// already-ranked candidate set above which a demographic dimension is
// flagged; penalties are subtracted from the diversity score per flag.
type BiasConfig struct {
	GenderThreshold          float64 `mapstructure:"gender_threshold" validate:"gte=0,lte=1"`
	AgeThreshold             float64 `mapstructure:"age_threshold" validate:"gte=0,lte=1"`
	LocationThreshold        float64 `mapstructure:"location_threshold" validate:"gte=0,lte=1"`
	ExperienceLevelThreshold float64 `mapstructure:"experience_level_threshold" validate:"gte=0,lte=1"`
	NewcomerThreshold        float64 `mapstructure:"newcomer_threshold" validate:"gte=0,lte=1"`
	GenderPenalty            float64 `mapstructure:"gender_penalty" validate:"gte=0,lte=1"`
	AgePenalty               float64 `mapstructure:"age_penalty" validate:"gte=0,lte=1"`
	LocationPenalty          float64 `mapstructure:"location_penalty" validate:"gte=0,lte=1"`
	ExperienceLevelPenalty   float64 `mapstructure:"experience_level_penalty" validate:"gte=0,lte=1"`
	NewcomerPenalty          float64 `mapstructure:"newcomer_penalty" validate:"gte=0,lte=1"`
	AgeBandYears             int     `mapstructure:"age_band_years" validate:"required,gt=0"`
}

// LLMConfig contains the generative backend settings. An empty API key
// disables the generative path entirely; every handler then runs its
// deterministic fallback.
type LLMConfig struct {
	GeminiAPIKey      string        `mapstructure:"gemini_api_key"`
	ModelName         string        `mapstructure:"model_name"`
	EmbeddingModel    string        `mapstructure:"embedding_model"`
	MaxRetries        int           `mapstructure:"max_retries" validate:"gte=0"`
	RetryDelaySeconds int           `mapstructure:"retry_delay_seconds" validate:"gte=0"`
	RequestTimeout    time.Duration `mapstructure:"request_timeout"`
}
