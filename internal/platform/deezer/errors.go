package deezer

import (
	"fmt"

	"github.com/phrazzld/mjolnir/internal/domain"
)

// ErrArtistNotFound is returned when Deezer has no artist with the given id,
// either as an HTTP 404 or as a "no data" error payload. It matches
// domain.ErrArtistNotFound.
var ErrArtistNotFound = fmt.Errorf("deezer: %w", domain.ErrArtistNotFound)

// Deezer error payload codes.
// See https://developers.deezer.com/api/errors
const (
	errCodeQuota         = 4
	errCodeItemsLimit    = 100
	errCodeServiceBusy   = 700
	errCodeDataNotFound  = 800
	errTypeDataException = "DataException"
)

// apiError is the "error" object Deezer returns with HTTP 200.
type apiError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func (e *apiError) Error() string {
	return "deezer " + e.Type + ": " + e.Message
}

func (e *apiError) notFound() bool {
	return e.Code == errCodeDataNotFound || (e.Type == errTypeDataException && e.Code == 0)
}

func (e *apiError) transient() bool {
	return e.Code == errCodeQuota || e.Code == errCodeServiceBusy
}
