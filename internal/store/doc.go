// Package store defines the cache abstraction the lookup service depends on.
// Implementations live under internal/platform and keep the service
// independent of the backing technology (process memory, SQLite, PostgreSQL).
package store
