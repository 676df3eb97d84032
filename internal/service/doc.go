// Package service contains the artist lookup use case. It orchestrates the
// music partner client, the song cache (defined in internal/store) and the
// background task runner to answer "top songs for artist N" requests.
//
// The service depends on interfaces only; concrete partner and cache
// implementations are injected by cmd/server.
//
// Error handling:
//   - Partner "no such artist" surfaces as domain.ErrArtistNotFound
//   - Partner transport or payload failures surface as *domain.PartnerError
//   - Cache failures are logged and never fail a request
//
// Every error leaving the service is wrapped in *ArtistServiceError, which
// unwraps to the underlying domain error so callers classify with errors.Is
// or domain.KindOf.
package service
