package deezer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/phrazzld/mjolnir/internal/domain"
)

// DefaultBaseURL is the public Deezer API endpoint.
const DefaultBaseURL = "https://api.deezer.com"

const opFetchTopTracks = "fetch top tracks"

// maxBodyBytes bounds how much of a partner response is read.
const maxBodyBytes = 4 << 20

// Config holds the client settings.
type Config struct {
	BaseURL      string
	Timeout      time.Duration
	MaxRetries   int
	RetryDelay   time.Duration
	CatalogLimit int
}

// Client fetches artist data from Deezer.
type Client struct {
	config     Config
	httpClient *http.Client
	logger     *slog.Logger

	rngMu sync.Mutex
	rng   *rand.Rand

	// sleep waits for d or until ctx is done; replaced in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewClient creates a Client. A nil httpClient gets a client with
// config.Timeout; a nil logger uses slog.Default.
func NewClient(config Config, httpClient *http.Client, logger *slog.Logger) (*Client, error) {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if !strings.HasPrefix(config.BaseURL, "http://") && !strings.HasPrefix(config.BaseURL, "https://") {
		return nil, fmt.Errorf("deezer base url must be http or https: %q", config.BaseURL)
	}
	if config.MaxRetries < 0 {
		return nil, fmt.Errorf("deezer max retries cannot be negative: %d", config.MaxRetries)
	}
	if config.CatalogLimit <= 0 {
		config.CatalogLimit = 50
	}
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = 200 * time.Millisecond
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		config:     config,
		httpClient: httpClient,
		logger:     logger.With("component", "deezer_client"),
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		sleep:      sleepContext,
	}, nil
}

type trackResponse struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Rank     int    `json:"rank"`
	Duration int    `json:"duration"`
	Preview  string `json:"preview"`
	Link     string `json:"link"`
	Album    struct {
		Title string `json:"title"`
	} `json:"album"`
}

type topTracksResponse struct {
	Data  *[]trackResponse `json:"data"`
	Total int              `json:"total"`
	Error *apiError        `json:"error,omitempty"`
}

// FetchArtistTopTracks returns the artist's top tracks as reported by
// Deezer, in partner order. Unknown artists yield ErrArtistNotFound; all
// other failures are *domain.PartnerError.
func (c *Client) FetchArtistTopTracks(ctx context.Context, artistID int64) ([]domain.Song, error) {
	if artistID <= 0 {
		return nil, domain.NewValidationError("artist_id", "must be a positive integer")
	}

	endpoint := c.config.BaseURL + "/artist/" + strconv.FormatInt(artistID, 10) +
		"/top?limit=" + strconv.Itoa(c.config.CatalogLimit)
	log := c.logger.With("artist_id", artistID)

	maxRetries := c.config.MaxRetries
	for attempt := 0; ; attempt++ {
		songs, retry, err := c.fetchOnce(ctx, endpoint)
		if err == nil {
			log.DebugContext(ctx, "fetched top tracks",
				"attempt", attempt+1,
				"count", len(songs))
			return songs, nil
		}
		if !retry {
			return nil, err
		}
		if attempt >= maxRetries {
			log.WarnContext(ctx, "maximum retry attempts reached",
				"max_retries", maxRetries,
				"error", err)
			return nil, err
		}

		delay := c.backoff(attempt)
		log.InfoContext(ctx, "retrying partner call after delay",
			"attempt", attempt+1,
			"delay_ms", delay.Milliseconds(),
			"error", err)

		if sleepErr := c.sleep(ctx, delay); sleepErr != nil {
			return nil, &domain.PartnerError{Op: opFetchTopTracks, Err: sleepErr}
		}
	}
}

// fetchOnce performs a single request. retry reports whether the failure
// is transient.
func (c *Client) fetchOnce(ctx context.Context, endpoint string) (songs []domain.Song, retry bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, &domain.PartnerError{Op: opFetchTopTracks, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// a cancelled caller is not worth retrying
		return nil, ctx.Err() == nil, &domain.PartnerError{Op: opFetchTopTracks, Err: err}
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, false, ErrArtistNotFound
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return nil, true, &domain.PartnerError{
			Op:         opFetchTopTracks,
			StatusCode: resp.StatusCode,
			Err:        errors.New(http.StatusText(resp.StatusCode)),
		}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, false, &domain.PartnerError{
			Op:         opFetchTopTracks,
			StatusCode: resp.StatusCode,
			Err:        errors.New(http.StatusText(resp.StatusCode)),
		}
	}

	var payload topTracksResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&payload); err != nil {
		return nil, false, &domain.PartnerError{
			Op:         opFetchTopTracks,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("failed to decode response: %w", err),
		}
	}

	if payload.Error != nil {
		if payload.Error.notFound() {
			return nil, false, ErrArtistNotFound
		}
		return nil, payload.Error.transient(), &domain.PartnerError{
			Op:         opFetchTopTracks,
			StatusCode: resp.StatusCode,
			Err:        payload.Error,
		}
	}

	// only an explicit "data" array is a catalogue, possibly empty
	if payload.Data == nil {
		return nil, false, &domain.PartnerError{
			Op:         opFetchTopTracks,
			StatusCode: resp.StatusCode,
			Err:        errors.New("response has no data field"),
		}
	}

	songs = make([]domain.Song, 0, len(*payload.Data))
	for _, t := range *payload.Data {
		songs = append(songs, domain.Song{
			ID:       t.ID,
			Title:    t.Title,
			Rank:     t.Rank,
			Duration: t.Duration,
			Album:    t.Album.Title,
			Link:     t.Link,
			Preview:  t.Preview,
		})
	}
	return songs, false, nil
}

// backoff returns RetryDelay * 2^attempt scaled by a jitter in [0.5, 1.0).
func (c *Client) backoff(attempt int) time.Duration {
	c.rngMu.Lock()
	jitter := 0.5 + c.rng.Float64()*0.5
	c.rngMu.Unlock()

	delay := float64(c.config.RetryDelay) * math.Pow(2, float64(attempt)) * jitter
	return time.Duration(delay)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
