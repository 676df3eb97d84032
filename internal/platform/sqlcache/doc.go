// Package sqlcache implements store.SongCache on top of database/sql.
//
// Two drivers are supported: "sqlite" (modernc.org/sqlite, pure Go) and
// "postgres" (jackc/pgx through its database/sql adapter). The schema is
// managed with embedded goose migrations applied by Migrate.
package sqlcache
