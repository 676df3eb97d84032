package sqlcache

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/mjolnir/internal/domain"
	"github.com/phrazzld/mjolnir/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleSongs = []domain.Song{
	{ID: 3135556, Title: "Harder, Better, Faster, Stronger", Rank: 912345, Duration: 224, Album: "Discovery"},
	{ID: 3135553, Title: "One More Time", Rank: 887654, Duration: 320, Album: "Discovery"},
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openSQLite(t *testing.T) *SongCache {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "cache.db")
	c, err := Open(context.Background(), DialectSQLite, dsn, discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestOpen_SQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := openSQLite(t)

	_, ok, err := c.Get(ctx, store.TopSongsKey(27))
	require.NoError(t, err)
	assert.False(t, ok, "fresh cache should miss")

	require.NoError(t, c.Set(ctx, store.TopSongsKey(27), sampleSongs, time.Hour))

	got, ok, err := c.Get(ctx, store.TopSongsKey(27))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sampleSongs, got)
}

func TestOpen_MigrationsAreIdempotent(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "cache.db")

	first, err := Open(ctx, DialectSQLite, dsn, discardLogger())
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "k", sampleSongs, 0))
	require.NoError(t, first.Close())

	second, err := Open(ctx, DialectSQLite, dsn, discardLogger())
	require.NoError(t, err)
	defer second.Close()

	got, ok, err := second.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok, "data should survive reopening")
	assert.Equal(t, sampleSongs, got)
}

func TestSongCache_Upsert(t *testing.T) {
	ctx := context.Background()
	c := openSQLite(t)

	require.NoError(t, c.Set(ctx, "k", sampleSongs, time.Hour))
	require.NoError(t, c.Set(ctx, "k", sampleSongs[:1], time.Hour))

	got, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sampleSongs[:1], got)
}

func TestSongCache_EmptyResult(t *testing.T) {
	ctx := context.Background()
	c := openSQLite(t)

	require.NoError(t, c.Set(ctx, "k", nil, time.Hour))

	got, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSongCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c := openSQLite(t)
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", sampleSongs, time.Minute))

	now = now.Add(30 * time.Second)
	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	now = now.Add(time.Minute)
	_, ok, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok, "expired entry should miss")

	var count int
	require.NoError(t, c.owned.QueryRowContext(ctx, "SELECT COUNT(*) FROM song_cache").Scan(&count))
	assert.Equal(t, 0, count, "expired row should be deleted on read")
}

func TestSongCache_CorruptEntry(t *testing.T) {
	ctx := context.Background()
	c := openSQLite(t)

	_, err := c.owned.ExecContext(ctx,
		"INSERT INTO song_cache (cache_key, value_json, expires_at, created_at) VALUES (?, ?, 0, 0)",
		"k", "{not json")
	require.NoError(t, err)

	_, ok, err := c.Get(ctx, "k")
	assert.False(t, ok)
	assert.ErrorIs(t, err, store.ErrCorruptEntry)
}

func TestSongCache_InvalidKey(t *testing.T) {
	ctx := context.Background()
	c := openSQLite(t)

	_, _, err := c.Get(ctx, "")
	assert.ErrorIs(t, err, store.ErrInvalidKey)
	assert.ErrorIs(t, c.Set(ctx, "", sampleSongs, 0), store.ErrInvalidKey)
}

func TestNewAndOpen_RejectUnknownDialect(t *testing.T) {
	t.Parallel()

	_, err := New(nil, Dialect("mysql"))
	assert.ErrorIs(t, err, ErrUnsupportedDialect)

	_, err = Open(context.Background(), Dialect("mysql"), "dsn", discardLogger())
	assert.ErrorIs(t, err, ErrUnsupportedDialect)

	_, err = Open(context.Background(), DialectSQLite, "", discardLogger())
	assert.Error(t, err)
}

func TestSongCache_PostgresQueries(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	c, err := New(db, DialectPostgres)
	require.NoError(t, err)
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO song_cache (cache_key, value_json, expires_at, created_at)\nVALUES ($1, $2, $3, $4)")).
		WithArgs("k", sqlmock.AnyArg(), now.Add(time.Hour).UnixMilli(), now.UnixMilli()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, c.Set(ctx, "k", sampleSongs, time.Hour))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value_json, expires_at FROM song_cache WHERE cache_key = $1")).
		WithArgs("k").
		WillReturnRows(sqlmock.NewRows([]string{"value_json", "expires_at"}).
			AddRow(`[{"id":1,"title":"Around the World","rank":700000}]`, now.Add(time.Hour).UnixMilli()))
	got, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []domain.Song{{ID: 1, Title: "Around the World", Rank: 700000}}, got)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSongCache_DatabaseErrors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	c, err := New(db, DialectPostgres)
	require.NoError(t, err)

	dbErr := errors.New("connection reset by peer")

	mock.ExpectQuery("SELECT value_json").WillReturnError(dbErr)
	_, ok, err := c.Get(ctx, "k")
	assert.False(t, ok)
	assert.ErrorIs(t, err, dbErr)
	assert.Contains(t, err.Error(), "song cache lookup failed")

	mock.ExpectExec("INSERT INTO song_cache").WillReturnError(dbErr)
	err = c.Set(ctx, "k", sampleSongs, time.Minute)
	assert.ErrorIs(t, err, dbErr)
	assert.Contains(t, err.Error(), "failed to set song cache")

	assert.NoError(t, mock.ExpectationsWereMet())
	assert.NoError(t, c.Close(), "borrowed connections are not closed")
}
