package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every configuration environment variable,
// e.g. MJOLNIR_SERVER_PORT.
const EnvPrefix = "MJOLNIR"

// DefaultEnvFile is read, when present, before environment variables are
// consulted. Variables already set in the process environment win.
const DefaultEnvFile = ".env"

var defaults = map[string]any{
	"server.port":                     8080,
	"server.log_level":                "info",
	"server.read_timeout_seconds":     10,
	"server.write_timeout_seconds":    15,
	"server.shutdown_timeout_seconds": 10,

	"partner.base_url":           "https://api.deezer.com",
	"partner.timeout_seconds":    10,
	"partner.max_retries":        2,
	"partner.retry_delay_millis": 200,
	"partner.catalog_limit":      50,

	"cache.driver":      "memory",
	"cache.dsn":         "",
	"cache.ttl_seconds": 3600,

	"task.queue_size":            100,
	"task.worker_count":          2,
	"task.write_timeout_seconds": 5,
}

// LoadOptions controls where Load looks for configuration.
type LoadOptions struct {
	// ConfigFile is an explicit config file path. When empty, config.yaml
	// in the working directory is used if it exists.
	ConfigFile string
	// EnvFile is a dotenv file to load. When empty, DefaultEnvFile is tried.
	EnvFile string
}

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadWithOptions(LoadOptions{})
}

// LoadWithOptions is Load with explicit file locations.
func LoadWithOptions(opts LoadOptions) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", opts.ConfigFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every field against its validate tag.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
