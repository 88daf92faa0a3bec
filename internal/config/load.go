package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and an optional
// config.yaml. Environment variables use the STAGEHAND_ prefix with
// underscores for nesting (STAGEHAND_SERVER_PORT) and take precedence over
// file values. Returns a populated Config or an error if loading or
// validation fails.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("STAGEHAND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; environment variables alone are enough.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("database.url", "")

	v.SetDefault("worker.workers_per_type", 2)
	v.SetDefault("worker.queue_size", 100)
	v.SetDefault("worker.handler_timeout", 5*time.Minute)

	v.SetDefault("planner.baseline_cost", 500000)
	v.SetDefault("planner.weather_risk_interval", 3)

	v.SetDefault("bias.gender_threshold", 0.7)
	v.SetDefault("bias.age_threshold", 0.6)
	v.SetDefault("bias.location_threshold", 0.8)
	v.SetDefault("bias.experience_level_threshold", 0.8)
	v.SetDefault("bias.newcomer_threshold", 0.9)
	v.SetDefault("bias.gender_penalty", 0.2)
	v.SetDefault("bias.age_penalty", 0.1)
	v.SetDefault("bias.location_penalty", 0.1)
	v.SetDefault("bias.experience_level_penalty", 0.1)
	v.SetDefault("bias.newcomer_penalty", 0.15)
	v.SetDefault("bias.age_band_years", 5)

	v.SetDefault("llm.gemini_api_key", "")
	v.SetDefault("llm.model_name", "gemini-2.0-flash")
	v.SetDefault("llm.embedding_model", "text-embedding-004")
	v.SetDefault("llm.max_retries", 3)
	v.SetDefault("llm.retry_delay_seconds", 2)
	v.SetDefault("llm.request_timeout", 30*time.Second)
}
