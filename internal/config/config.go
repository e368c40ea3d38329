// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// Store backend names accepted by STORE_BACKEND.
const (
	StoreBackendFile   = "file"
	StoreBackendRedis  = "redis"
	StoreBackendMemory = "memory"
)

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	Port                  string  `mapstructure:"PORT"`
	StoreBackend          string  `mapstructure:"STORE_BACKEND"`
	DataDir               string  `mapstructure:"DATA_DIR"`
	RedisURL              string  `mapstructure:"REDIS_URL"`
	ResumeUploadDir       string  `mapstructure:"RESUME_UPLOAD_DIR"`
	ResumeMaxUploadSizeMB int     `mapstructure:"RESUME_MAX_UPLOAD_SIZE_MB"`
	ResumeUploadDelayMS   int     `mapstructure:"RESUME_UPLOAD_DELAY_MS"`
	AllowedOrigins        string  `mapstructure:"ALLOWED_ORIGINS"`
	Env                   string  `mapstructure:"APP_ENV"`
	TracingEnabled        bool    `mapstructure:"TRACING_ENABLED"`
	TracingExporter       string  `mapstructure:"TRACING_EXPORTER"`
	OTLPEndpoint          string  `mapstructure:"OTLP_ENDPOINT"`
	TracingSamplerRatio   float64 `mapstructure:"TRACING_SAMPLER_RATIO"`
}

// LoadConfig loads application configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	// Initial read to get APP_ENV if set in base config
	// We intentionally ignore this error as the config file may not exist yet
	_ = viper.ReadInConfig()

	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	if env != "development" && env != "" {
		viper.SetConfigName("config." + env)
		if err := viper.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("required profile-specific config 'config.%s.yml' not found: %w", env, err)
		}
		log.Printf("Loaded profile-specific configuration: config.%s.yml", env)
	}

	// Set default values for development
	viper.SetDefault("PORT", "8460")
	viper.SetDefault("STORE_BACKEND", StoreBackendFile)
	viper.SetDefault("DATA_DIR", "./data")
	viper.SetDefault("REDIS_URL", "localhost:6379")
	viper.SetDefault("RESUME_UPLOAD_DIR", "/tmp/placement/uploads/resumes")
	viper.SetDefault("RESUME_MAX_UPLOAD_SIZE_MB", 5)
	viper.SetDefault("RESUME_UPLOAD_DELAY_MS", 1000)
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("TRACING_ENABLED", false)
	viper.SetDefault("TRACING_EXPORTER", "stdout")
	viper.SetDefault("OTLP_ENDPOINT", "localhost:4318")
	viper.SetDefault("TRACING_SAMPLER_RATIO", 1.0)

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate ensures that required configuration values are present.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}

	switch c.StoreBackend {
	case StoreBackendFile:
		if c.DataDir == "" {
			return errors.New("DATA_DIR is required for the file store backend")
		}
	case StoreBackendRedis:
		if c.RedisURL == "" {
			return errors.New("REDIS_URL is required for the redis store backend")
		}
	case StoreBackendMemory:
		// Volatile; fine for tests and demos.
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q (want file, redis, or memory)", c.StoreBackend)
	}

	if c.ResumeMaxUploadSizeMB <= 0 {
		return errors.New("RESUME_MAX_UPLOAD_SIZE_MB must be positive")
	}
	if c.ResumeUploadDelayMS < 0 {
		return errors.New("RESUME_UPLOAD_DELAY_MS must not be negative")
	}

	isProduction := c.Env == "production" || c.Env == "prod"
	if isProduction && c.StoreBackend == StoreBackendMemory {
		log.Println("WARNING: STORE_BACKEND is 'memory' in production. All data is lost on restart.")
	}
	if isProduction && c.AllowedOrigins == "*" {
		log.Println("WARNING: ALLOWED_ORIGINS is set to '*' in production. This is insecure.")
	}

	return nil
}
