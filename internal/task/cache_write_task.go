package task

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/mjolnir/internal/domain"
	"github.com/phrazzld/mjolnir/internal/store"
)

// CacheWriteTask writes a song list to a SongCache.
type CacheWriteTask struct {
	id      uuid.UUID
	cache   store.SongCache
	key     string
	songs   []domain.Song
	ttl     time.Duration
	timeout time.Duration
}

var _ Task = (*CacheWriteTask)(nil)

// NewCacheWriteTask creates a task that stores songs under key. The write
// is bounded by timeout when it is positive.
func NewCacheWriteTask(cache store.SongCache, key string, songs []domain.Song, ttl, timeout time.Duration) (*CacheWriteTask, error) {
	if cache == nil {
		return nil, errors.New("cache cannot be nil")
	}
	if key == "" {
		return nil, store.ErrInvalidKey
	}

	owned := make([]domain.Song, len(songs))
	copy(owned, songs)

	return &CacheWriteTask{
		id:      uuid.New(),
		cache:   cache,
		key:     key,
		songs:   owned,
		ttl:     ttl,
		timeout: timeout,
	}, nil
}

// ID implements Task.
func (t *CacheWriteTask) ID() uuid.UUID { return t.id }

// Type implements Task.
func (t *CacheWriteTask) Type() string { return TaskTypeCacheWrite }

// Key returns the cache key the task writes.
func (t *CacheWriteTask) Key() string { return t.key }

// Execute implements Task.
func (t *CacheWriteTask) Execute(ctx context.Context) error {
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	if err := t.cache.Set(ctx, t.key, t.songs, t.ttl); err != nil {
		return fmt.Errorf("cache write for %q failed: %w", t.key, err)
	}
	return nil
}
