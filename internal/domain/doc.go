// Package domain contains the core business entities, value objects, and
// error taxonomy of the top-songs API. It represents the heart of the system,
// independent of the HTTP layer, the music partner and the cache backend.
package domain
