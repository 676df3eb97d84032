// Package config handles configuration loading, parsing, and validation
// from environment variables (MJOLNIR_ prefix), an optional config.yaml and
// an optional .env file. It provides type-safe access to settings needed by
// the server, the partner client, the cache and the task runner.
package config
