package sqlcache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	// database/sql drivers
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/phrazzld/mjolnir/internal/domain"
	"github.com/phrazzld/mjolnir/internal/store"
)

// Dialect selects the SQL flavour and database/sql driver.
type Dialect string

// Supported dialects.
const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// ErrUnsupportedDialect is returned for a dialect other than sqlite or postgres.
var ErrUnsupportedDialect = errors.New("unsupported cache dialect")

func (d Dialect) driverName() (string, error) {
	switch d {
	case DialectSQLite:
		return "sqlite", nil
	case DialectPostgres:
		return "pgx", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedDialect, string(d))
	}
}

func (d Dialect) gooseDialect() (string, error) {
	switch d {
	case DialectSQLite:
		return "sqlite3", nil
	case DialectPostgres:
		return "postgres", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedDialect, string(d))
	}
}

// bind returns the positional placeholder for argument n (1-based).
func (d Dialect) bind(n int) string {
	if d == DialectPostgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// SongCache is a store.SongCache backed by the song_cache table. Values are
// stored as JSON; expires_at holds unix milliseconds, 0 meaning no expiry.
type SongCache struct {
	db      store.DBTX
	owned   *sql.DB
	dialect Dialect
	now     func() time.Time

	getQuery    string
	deleteQuery string
	setQuery    string
}

var _ store.SongCache = (*SongCache)(nil)

// New creates a SongCache over an existing connection. The caller keeps
// ownership of db; Close is a no-op.
func New(db store.DBTX, dialect Dialect) (*SongCache, error) {
	if _, err := dialect.driverName(); err != nil {
		return nil, err
	}

	return &SongCache{
		db:      db,
		dialect: dialect,
		now:     time.Now,
		getQuery: fmt.Sprintf(
			"SELECT value_json, expires_at FROM song_cache WHERE cache_key = %s",
			dialect.bind(1)),
		deleteQuery: fmt.Sprintf(
			"DELETE FROM song_cache WHERE cache_key = %s AND expires_at = %s",
			dialect.bind(1), dialect.bind(2)),
		setQuery: fmt.Sprintf(`INSERT INTO song_cache (cache_key, value_json, expires_at, created_at)
VALUES (%s, %s, %s, %s)
ON CONFLICT (cache_key) DO UPDATE SET
    value_json = excluded.value_json,
    expires_at = excluded.expires_at,
    created_at = excluded.created_at`,
			dialect.bind(1), dialect.bind(2), dialect.bind(3), dialect.bind(4)),
	}, nil
}

// Open connects to the database identified by dsn, applies migrations and
// returns a SongCache that owns the connection.
func Open(ctx context.Context, dialect Dialect, dsn string, logger *slog.Logger) (*SongCache, error) {
	driver, err := dialect.driverName()
	if err != nil {
		return nil, err
	}
	if dsn == "" {
		return nil, errors.New("cache dsn cannot be empty")
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	if dialect == DialectSQLite {
		// a single connection keeps ":memory:" databases shared and avoids
		// SQLITE_BUSY on concurrent writers
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping cache database: %w", err)
	}

	if err := Migrate(ctx, db, dialect, logger); err != nil {
		_ = db.Close()
		return nil, err
	}

	c, err := New(db, dialect)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	c.owned = db
	return c, nil
}

// Get implements store.SongCache. Expired rows are deleted on read.
func (c *SongCache) Get(ctx context.Context, key string) ([]domain.Song, bool, error) {
	if key == "" {
		return nil, false, store.ErrInvalidKey
	}

	var valueJSON string
	var expiresAt int64
	err := c.db.QueryRowContext(ctx, c.getQuery, key).Scan(&valueJSON, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("song cache lookup failed: %w", err)
	}

	if expiresAt != 0 && c.now().UnixMilli() >= expiresAt {
		// conditional on expires_at so a concurrent refresh is not removed
		_, _ = c.db.ExecContext(ctx, c.deleteQuery, key, expiresAt)
		return nil, false, nil
	}

	var songs []domain.Song
	if err := json.Unmarshal([]byte(valueJSON), &songs); err != nil {
		return nil, false, fmt.Errorf("%w: %v", store.ErrCorruptEntry, err)
	}
	if songs == nil {
		songs = []domain.Song{}
	}
	return songs, true, nil
}

// Set implements store.SongCache.
func (c *SongCache) Set(ctx context.Context, key string, songs []domain.Song, ttl time.Duration) error {
	if key == "" {
		return store.ErrInvalidKey
	}
	if songs == nil {
		songs = []domain.Song{}
	}

	valueJSON, err := json.Marshal(songs)
	if err != nil {
		return fmt.Errorf("failed to encode songs: %w", err)
	}

	now := c.now()
	var expiresAt int64
	if ttl > 0 {
		expiresAt = now.Add(ttl).UnixMilli()
	}

	if _, err := c.db.ExecContext(ctx, c.setQuery, key, string(valueJSON), expiresAt, now.UnixMilli()); err != nil {
		return fmt.Errorf("failed to set song cache: %w", err)
	}
	return nil
}

// Close closes the underlying connection when the cache owns it.
func (c *SongCache) Close() error {
	if c.owned == nil {
		return nil
	}
	return c.owned.Close()
}
