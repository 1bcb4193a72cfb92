package config

import (
	"fmt"
	"time"

	"github.com/Nascom/sulu/internal/logger"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config represents the application configuration structure
type Config struct {
	Environment     string        `default:"dev" validate:"oneof=dev staging prod"`
	ListenAddress   string        `split_words:"true" default:":8080"`
	Storage         string        `default:"postgres" validate:"oneof=postgres memory"`
	DatabaseURL     string        `split_words:"true" validate:"required_if=Storage postgres"`
	BaseURL         string        `split_words:"true" validate:"omitempty,url"`
	AbsoluteLinks   bool          `split_words:"true"`
	DefaultWebspace string        `split_words:"true" default:"sulu_io"`
	DefaultLocale   string        `split_words:"true" default:"en"`
	RequestTimeout  time.Duration `split_words:"true" default:"15s"`
	Logger          logger.Config
}

func (cfg *Config) IsEnvProduction() bool {
	return cfg.Environment == "prod"
}

// Load reads the configuration from SULU_* environment variables
func Load() (*Config, error) {
	config := new(Config)
	if err := envconfig.Process("sulu", config); err != nil {
		return nil, err
	}
	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// LoadFromEnv loads a new configuration structure using environment variables and an optional .env file
func LoadFromEnv() (*Config, error) {
	// Load a .env file if it exists
	_ = godotenv.Overload()
	return Load()
}
