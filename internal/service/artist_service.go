package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/mjolnir/internal/domain"
	"github.com/phrazzld/mjolnir/internal/platform/logger"
	"github.com/phrazzld/mjolnir/internal/redact"
	"github.com/phrazzld/mjolnir/internal/store"
	"github.com/phrazzld/mjolnir/internal/task"
)

const opGetTopSongs = "get_top_songs"

// PartnerClient fetches an artist's catalogue from the music partner.
// Implementations return an error matching domain.ErrArtistNotFound for an
// unknown artist and a *domain.PartnerError for any other partner failure.
type PartnerClient interface {
	FetchArtistTopTracks(ctx context.Context, artistID int64) ([]domain.Song, error)
}

// ArtistService provides artist lookups.
type ArtistService interface {
	// GetTopSongs returns at most domain.TopSongsLimit songs for the artist,
	// ordered by rank descending.
	GetTopSongs(ctx context.Context, req domain.ArtistRequest) ([]domain.Song, error)
}

// ArtistServiceConfig tunes caching behaviour.
type ArtistServiceConfig struct {
	// CacheTTL is how long partner results stay cached; <= 0 means forever.
	CacheTTL time.Duration
	// WriteTimeout bounds each background cache write.
	WriteTimeout time.Duration
}

type artistServiceImpl struct {
	partner PartnerClient
	cache   store.SongCache
	tasks   task.Submitter
	config  ArtistServiceConfig
	logger  *slog.Logger
}

// NewArtistService creates an ArtistService. A nil cache disables caching.
func NewArtistService(
	partner PartnerClient,
	cache store.SongCache,
	tasks task.Submitter,
	config ArtistServiceConfig,
	logger *slog.Logger,
) (ArtistService, error) {
	if partner == nil {
		return nil, fmt.Errorf("%w: partner client", ErrNilDependency)
	}
	if tasks == nil {
		return nil, fmt.Errorf("%w: task submitter", ErrNilDependency)
	}
	if cache == nil {
		cache = store.NopSongCache{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &artistServiceImpl{
		partner: partner,
		cache:   cache,
		tasks:   tasks,
		config:  config,
		logger:  logger.With("component", "artist_service"),
	}, nil
}

// GetTopSongs implements ArtistService.
func (s *artistServiceImpl) GetTopSongs(ctx context.Context, req domain.ArtistRequest) ([]domain.Song, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		"artist_id", req.ArtistID,
		"use_cache", req.UseCache,
	)

	if req.ArtistID <= 0 {
		return nil, NewArtistServiceError(opGetTopSongs, req.ArtistID,
			domain.NewValidationError("artist_id", "must be a positive integer"))
	}

	key := store.TopSongsKey(req.ArtistID)

	if req.UseCache {
		cached, ok, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			log.WarnContext(ctx, "song cache read failed, treating as miss",
				"cache_key", key,
				"error", redact.Error(err))
		case ok:
			log.DebugContext(ctx, "song cache hit", "cache_key", key)
			return domain.TopSongs(cached, domain.TopSongsLimit), nil
		default:
			log.DebugContext(ctx, "song cache miss", "cache_key", key)
		}
	}

	songs, err := s.partner.FetchArtistTopTracks(ctx, req.ArtistID)
	if err != nil {
		return nil, NewArtistServiceError(opGetTopSongs, req.ArtistID, err)
	}

	top := domain.TopSongs(songs, domain.TopSongsLimit)
	log.DebugContext(ctx, "fetched songs from partner",
		"partner_count", len(songs),
		"returned_count", len(top))

	if req.UseCache {
		s.scheduleCacheWrite(ctx, log, key, top)
	}
	return top, nil
}

// scheduleCacheWrite hands the write to the task runner. Failures to
// enqueue are logged and otherwise ignored.
func (s *artistServiceImpl) scheduleCacheWrite(ctx context.Context, log *slog.Logger, key string, songs []domain.Song) {
	t, err := task.NewCacheWriteTask(s.cache, key, songs, s.config.CacheTTL, s.config.WriteTimeout)
	if err != nil {
		log.WarnContext(ctx, "failed to create cache write task", "cache_key", key, "error", err)
		return
	}

	if err := s.tasks.Submit(t); err != nil {
		level := slog.LevelWarn
		if errors.Is(err, task.ErrQueueClosed) {
			level = slog.LevelInfo
		}
		log.Log(ctx, level, "cache write not scheduled",
			"cache_key", key,
			"task_id", t.ID(),
			"error", err)
		return
	}
	log.DebugContext(ctx, "cache write scheduled", "cache_key", key, "task_id", t.ID())
}
