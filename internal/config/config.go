package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" validate:"required"`
	Partner PartnerConfig `mapstructure:"partner" validate:"required"`
	Cache   CacheConfig   `mapstructure:"cache" validate:"required"`
	Task    TaskConfig    `mapstructure:"task" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ReadTimeoutSeconds     int    `mapstructure:"read_timeout_seconds" validate:"gt=0"`
	WriteTimeoutSeconds    int    `mapstructure:"write_timeout_seconds" validate:"gt=0"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// PartnerConfig configures the Deezer client.
type PartnerConfig struct {
	BaseURL          string `mapstructure:"base_url" validate:"required,url"`
	TimeoutSeconds   int    `mapstructure:"timeout_seconds" validate:"gt=0"`
	MaxRetries       int    `mapstructure:"max_retries" validate:"gte=0,lte=10"`
	RetryDelayMillis int    `mapstructure:"retry_delay_millis" validate:"gt=0"`
	CatalogLimit     int    `mapstructure:"catalog_limit" validate:"gte=10,lte=100"`
}

// CacheConfig selects and configures the song cache backend.
type CacheConfig struct {
	Driver     string `mapstructure:"driver" validate:"required,oneof=memory sqlite postgres none"`
	DSN        string `mapstructure:"dsn" validate:"required_if=Driver sqlite,required_if=Driver postgres"`
	TTLSeconds int    `mapstructure:"ttl_seconds" validate:"gte=0"`
}

// TaskConfig sizes the background task runner.
type TaskConfig struct {
	QueueSize           int `mapstructure:"queue_size" validate:"gt=0"`
	WorkerCount         int `mapstructure:"worker_count" validate:"gt=0"`
	WriteTimeoutSeconds int `mapstructure:"write_timeout_seconds" validate:"gt=0"`
}

// ReadTimeout returns the server read timeout.
func (c ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutSeconds) * time.Second
}

// WriteTimeout returns the server write timeout.
func (c ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutSeconds) * time.Second
}

// ShutdownTimeout returns how long graceful shutdown may take.
func (c ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// Timeout returns the per-request partner timeout.
func (c PartnerConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// RetryDelay returns the base retry backoff.
func (c PartnerConfig) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelayMillis) * time.Millisecond
}

// TTL returns how long cached entries live; zero means no expiry.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// WriteTimeout bounds a single background cache write.
func (c TaskConfig) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutSeconds) * time.Second
}
