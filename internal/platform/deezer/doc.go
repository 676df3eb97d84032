// Package deezer implements the music partner client used to look up an
// artist's most popular tracks on the Deezer public API.
//
// The client:
//   - Requires no credentials
//   - Retries transient failures (transport errors, 5xx, "service busy"
//     payloads) with exponential backoff and jitter
//   - Reports unknown artists with ErrArtistNotFound and every other failure
//     as a *domain.PartnerError
package deezer
