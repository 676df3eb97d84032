// Package task runs short background jobs, such as writing fetched songs to
// the cache, off the request path. Tasks are submitted to a bounded queue and
// executed by a fixed pool of workers; a full queue rejects new work rather
// than blocking the caller.
package task
