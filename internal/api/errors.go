package api

import (
	"net/http"

	"github.com/phrazzld/mjolnir/internal/api/shared"
	"github.com/phrazzld/mjolnir/internal/domain"
)

// Outcome is everything the client sees for one error category.
type Outcome struct {
	Success bool
	Code    domain.InternalCode
	Status  int
	Message string
}

// ClassifyError maps err onto exactly one error category. A nil error is
// domain.KindNone.
func ClassifyError(err error) domain.ErrorKind {
	return domain.KindOf(err)
}

// OutcomeFor returns the client-facing outcome for kind. Unknown kinds are
// treated as unclassified.
func OutcomeFor(kind domain.ErrorKind) Outcome {
	switch kind {
	case domain.KindNone:
		return Outcome{Success: true, Code: domain.CodeSuccess, Status: http.StatusOK, Message: shared.MessageSuccess}
	case domain.KindArtistNotFound:
		return Outcome{Success: true, Code: domain.CodeDataNotFound, Status: http.StatusOK, Message: shared.MessageArtistNotFound}
	case domain.KindPartnerError:
		return Outcome{Success: true, Code: domain.CodePartnersError, Status: http.StatusInternalServerError, Message: shared.MessageUnexpectedError}
	case domain.KindInvalidParams:
		return Outcome{Success: false, Code: domain.CodeInvalidParams, Status: http.StatusBadRequest, Message: shared.MessageInvalidParams}
	default:
		return Outcome{Success: false, Code: domain.CodeInternalServerError, Status: http.StatusInternalServerError, Message: shared.MessageUnexpectedError}
	}
}

// Envelope builds the response envelope for this outcome.
func (o Outcome) Envelope(result any) shared.Envelope {
	return shared.NewEnvelope(o.Success, o.Code, o.Message, result)
}

// respondWithError logs err and writes the envelope for its category.
func respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	outcome := OutcomeFor(ClassifyError(err))
	shared.RespondWithErrorAndLog(w, r, outcome.Status, outcome.Envelope(nil), err)
}
