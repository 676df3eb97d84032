package shared

import (
	"net/http"

	"github.com/phrazzld/mjolnir/internal/domain"
)

// User-facing envelope messages.
const (
	MessageHello           = "Mjolnir API is now working!"
	MessageArtistNotFound  = "No artist was found with this id"
	MessageUnexpectedError = "An unexpected error has occurred"
	MessageInvalidParams   = "Invalid params"
	MessageSuccess         = ""
)

// Envelope is the JSON body of every API response. All four fields are
// always serialized.
type Envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Result  any                 `json:"result"`
	Code    domain.InternalCode `json:"code"`
}

// NewEnvelope builds an Envelope. A nil result becomes an empty JSON object.
// Codes are passed through unchanged.
func NewEnvelope(success bool, code domain.InternalCode, message string, result any) Envelope {
	if result == nil {
		result = map[string]any{}
	}
	return Envelope{
		Success: success,
		Message: message,
		Result:  result,
		Code:    code,
	}
}

// unexpectedEnvelope is written when an envelope cannot be encoded.
func unexpectedEnvelope() Envelope {
	return NewEnvelope(false, domain.CodeInternalServerError, MessageUnexpectedError, nil)
}

// RespondWithEnvelope writes env as JSON with the given status. A status
// outside 100-599 is replaced with 500.
func RespondWithEnvelope(w http.ResponseWriter, r *http.Request, status int, env Envelope) {
	if status < 100 || status > 599 {
		status = http.StatusInternalServerError
	}
	if env.Result == nil {
		env.Result = map[string]any{}
	}
	RespondWithJSON(w, r, status, env)
}
