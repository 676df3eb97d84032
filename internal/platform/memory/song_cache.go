// Package memory provides an in-process implementation of store.SongCache.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/phrazzld/mjolnir/internal/domain"
	"github.com/phrazzld/mjolnir/internal/store"
)

type entry struct {
	songs     []domain.Song
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// SongCache is a TTL map guarded by a RWMutex. Expired entries are removed
// lazily on read.
type SongCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	closed  bool
	now     func() time.Time
}

var _ store.SongCache = (*SongCache)(nil)

// NewSongCache creates an empty in-memory cache.
func NewSongCache() *SongCache {
	return &SongCache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get implements store.SongCache.
func (c *SongCache) Get(ctx context.Context, key string) ([]domain.Song, bool, error) {
	if key == "" {
		return nil, false, store.ErrInvalidKey
	}

	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return nil, false, store.ErrClosed
	}
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}

	if e.expired(c.now()) {
		c.mu.Lock()
		// the entry may have been replaced while unlocked
		if current, still := c.entries[key]; still && current.expired(c.now()) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false, nil
	}

	return cloneSongs(e.songs), true, nil
}

// Set implements store.SongCache.
func (c *SongCache) Set(ctx context.Context, key string, songs []domain.Song, ttl time.Duration) error {
	if key == "" {
		return store.ErrInvalidKey
	}

	e := entry{songs: cloneSongs(songs)}
	if ttl > 0 {
		e.expiresAt = c.now().Add(ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return store.ErrClosed
	}
	c.entries[key] = e
	return nil
}

// Len returns the number of stored entries, expired or not.
func (c *SongCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close drops all entries. Further operations return store.ErrClosed.
func (c *SongCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.entries = nil
	return nil
}

func cloneSongs(songs []domain.Song) []domain.Song {
	out := make([]domain.Song, len(songs))
	copy(out, songs)
	return out
}
