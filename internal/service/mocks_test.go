package service

import (
	"context"
	"sync"
	"time"

	"github.com/phrazzld/mjolnir/internal/domain"
	"github.com/phrazzld/mjolnir/internal/task"
	"github.com/stretchr/testify/mock"
)

// MockPartnerClient is a testify mock of PartnerClient.
type MockPartnerClient struct {
	mock.Mock
}

func (m *MockPartnerClient) FetchArtistTopTracks(ctx context.Context, artistID int64) ([]domain.Song, error) {
	args := m.Called(ctx, artistID)
	songs, _ := args.Get(0).([]domain.Song)
	return songs, args.Error(1)
}

// MockSongCache is a testify mock of store.SongCache.
type MockSongCache struct {
	mock.Mock
}

func (m *MockSongCache) Get(ctx context.Context, key string) ([]domain.Song, bool, error) {
	args := m.Called(ctx, key)
	songs, _ := args.Get(0).([]domain.Song)
	return songs, args.Bool(1), args.Error(2)
}

func (m *MockSongCache) Set(ctx context.Context, key string, songs []domain.Song, ttl time.Duration) error {
	return m.Called(ctx, key, songs, ttl).Error(0)
}

func (m *MockSongCache) Close() error {
	return m.Called().Error(0)
}

// inlineSubmitter runs submitted tasks synchronously so tests observe their
// effects without a worker pool.
type inlineSubmitter struct {
	mu        sync.Mutex
	submitted []task.Task
	err       error
}

func (s *inlineSubmitter) Submit(t task.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.submitted = append(s.submitted, t)
	return t.Execute(context.Background())
}

func (s *inlineSubmitter) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.submitted)
}
