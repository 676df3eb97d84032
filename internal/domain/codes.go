package domain

import "strconv"

// InternalCode categorizes the outcome of a request independently of the HTTP
// status code. The integer values are part of the public response contract
// and must never be renumbered.
type InternalCode int

// Internal codes carried in every response envelope.
const (
	CodeSuccess             InternalCode = 0
	CodeInvalidParams       InternalCode = 10
	CodePartnersError       InternalCode = 21
	CodeDataNotFound        InternalCode = 99
	CodeInternalServerError InternalCode = 100
)

// String returns the enum name of the code, used in logs.
func (c InternalCode) String() string {
	switch c {
	case CodeSuccess:
		return "SUCCESS"
	case CodeInvalidParams:
		return "INVALID_PARAMS"
	case CodePartnersError:
		return "PARTNERS_ERROR"
	case CodeDataNotFound:
		return "DATA_NOT_FOUND"
	case CodeInternalServerError:
		return "INTERNAL_SERVER_ERROR"
	default:
		return "InternalCode(" + strconv.Itoa(int(c)) + ")"
	}
}
