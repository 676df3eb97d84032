package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the outcomes the route layer reports to clients.
// Callers classify errors with errors.Is / errors.As or with KindOf.
var (
	// ErrInvalidParams is returned when raw request parameters cannot be
	// turned into a valid ArtistRequest.
	ErrInvalidParams = errors.New("invalid params")

	// ErrArtistNotFound is returned when the partner reports no such artist.
	ErrArtistNotFound = errors.New("artist not found")

	// ErrPartner is matched by every *PartnerError.
	ErrPartner = errors.New("partner error")
)

// ValidationError describes a single request parameter that failed validation.
// It always unwraps to ErrInvalidParams.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidParams, e.Field, e.Message)
}

// Unwrap allows errors.Is(err, ErrInvalidParams).
func (e *ValidationError) Unwrap() error {
	return ErrInvalidParams
}

// PartnerError reports a failed call to the upstream music partner: a
// transport failure, a timeout, an unexpected status or a malformed payload.
type PartnerError struct {
	// Op names the partner operation, e.g. "fetch top tracks".
	Op string
	// StatusCode is the HTTP status returned by the partner, 0 when no
	// response was received.
	StatusCode int
	Err        error
}

func (e *PartnerError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("partner %s failed with status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("partner %s failed: %v", e.Op, e.Err)
}

func (e *PartnerError) Unwrap() error {
	return e.Err
}

// Is reports ErrPartner as a match so callers need not use errors.As.
func (e *PartnerError) Is(target error) bool {
	return target == ErrPartner
}

// ErrorKind is the closed set of failure categories a request can end in.
type ErrorKind int

// Failure categories. KindNone is reserved for a nil error.
const (
	KindNone ErrorKind = iota
	KindInvalidParams
	KindArtistNotFound
	KindPartnerError
	KindUnclassified
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindInvalidParams:
		return "invalid_params"
	case KindArtistNotFound:
		return "artist_not_found"
	case KindPartnerError:
		return "partner_error"
	default:
		return "unclassified"
	}
}

// KindOf classifies err into exactly one ErrorKind. Invalid params take
// precedence over not-found, which takes precedence over partner failures.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrInvalidParams):
		return KindInvalidParams
	case errors.Is(err, ErrArtistNotFound):
		return KindArtistNotFound
	case errors.Is(err, ErrPartner):
		return KindPartnerError
	default:
		return KindUnclassified
	}
}
