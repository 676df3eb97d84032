package service

import (
	"errors"
	"fmt"
)

// ErrNilDependency is returned by constructors when a required collaborator
// is missing.
var ErrNilDependency = errors.New("required dependency is nil")

// ArtistServiceError wraps errors from the artist service with context.
type ArtistServiceError struct {
	// Operation is the operation that failed (e.g. "get_top_songs")
	Operation string
	// ArtistID is the artist the request was about
	ArtistID int64
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ArtistServiceError.
func (e *ArtistServiceError) Error() string {
	return fmt.Sprintf("artist service %s failed for artist %d: %v", e.Operation, e.ArtistID, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ArtistServiceError) Unwrap() error {
	return e.Err
}

// NewArtistServiceError creates a new ArtistServiceError, or nil when err is nil.
func NewArtistServiceError(operation string, artistID int64, err error) error {
	if err == nil {
		return nil
	}
	return &ArtistServiceError{
		Operation: operation,
		ArtistID:  artistID,
		Err:       err,
	}
}
