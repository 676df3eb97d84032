package domain

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// DefaultUseCache is applied when the request carries no cache parameter.
const DefaultUseCache = true

// ArtistRequest is a validated request for an artist's top songs. It is only
// built through NewArtistRequest and is never mutated afterwards.
type ArtistRequest struct {
	ArtistID int64 `validate:"gt=0"`
	UseCache bool
}

// NewArtistRequest parses raw request parameters into an ArtistRequest.
//
// rawArtistID must be a base-10 positive integer without sign. rawCache is
// only consulted when cachePresent is true; it accepts "true"/"1" and
// "false"/"0" case-insensitively. Any other input yields a *ValidationError.
func NewArtistRequest(rawArtistID, rawCache string, cachePresent bool) (ArtistRequest, error) {
	artistID, err := parseArtistID(rawArtistID)
	if err != nil {
		return ArtistRequest{}, err
	}

	useCache := DefaultUseCache
	if cachePresent {
		useCache, err = ParseCacheFlag(rawCache)
		if err != nil {
			return ArtistRequest{}, err
		}
	}

	req := ArtistRequest{ArtistID: artistID, UseCache: useCache}
	if err := validate.Struct(req); err != nil {
		return ArtistRequest{}, NewValidationError("artist_id", "must be a positive integer")
	}
	return req, nil
}

// ParseCacheFlag interprets a boolean-like query value.
func ParseCacheFlag(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	default:
		return false, NewValidationError("cache", "must be one of true, false, 1, 0")
	}
}

func parseArtistID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, NewValidationError("artist_id", "is required")
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0, NewValidationError("artist_id", "must be a positive integer")
		}
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, NewValidationError("artist_id", "is out of range")
	}
	return id, nil
}
