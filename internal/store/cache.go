package store

import (
	"context"
	"fmt"
	"time"

	"github.com/phrazzld/mjolnir/internal/domain"
)

// SongCache stores ranked song results keyed by an opaque string.
// Implementations must be safe for concurrent use. All operations are
// best-effort from the caller's point of view: a failing cache must never
// fail a request.
type SongCache interface {
	// Get returns the cached songs for key. The boolean is false on a miss,
	// including when the entry has expired.
	Get(ctx context.Context, key string) ([]domain.Song, bool, error)

	// Set stores songs under key. A ttl <= 0 means the entry does not expire.
	Set(ctx context.Context, key string, songs []domain.Song, ttl time.Duration) error

	// Close releases any resources held by the cache.
	Close() error
}

// TopSongsKey returns the cache key for an artist's top songs.
func TopSongsKey(artistID int64) string {
	return fmt.Sprintf("top-songs:%d", artistID)
}

// NopSongCache never stores anything; every Get is a miss.
type NopSongCache struct{}

var _ SongCache = NopSongCache{}

// Get implements SongCache.
func (NopSongCache) Get(context.Context, string) ([]domain.Song, bool, error) {
	return nil, false, nil
}

// Set implements SongCache.
func (NopSongCache) Set(context.Context, string, []domain.Song, time.Duration) error {
	return nil
}

// Close implements SongCache.
func (NopSongCache) Close() error { return nil }
