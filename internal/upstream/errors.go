package upstream

import (
	"encoding/json"
	"net/http"

	"github.com/perpuskita/library-portal/internal/core/domain"
)

// Error is a non-2xx response from the library backend. Message and Errors
// carry the backend's own envelope fields verbatim; PaymentDetails is set
// only for 402 responses, where the backend asks the user to pay a fee
// (membership or commitment fee) before the operation can proceed.
type Error struct {
	Status         int
	Message        string
	Errors         json.RawMessage
	PaymentDetails *domain.PaymentDetails
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(e.Status)
}

// Is maps backend status codes onto the portal's sentinel errors so callers
// can branch with errors.Is without inspecting status codes directly.
func (e *Error) Is(target error) bool {
	switch target {
	case domain.ErrNotFound:
		return e.Status == http.StatusNotFound
	case domain.ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case domain.ErrForbidden:
		return e.Status == http.StatusForbidden
	case domain.ErrPaymentRequired:
		return e.Status == http.StatusPaymentRequired
	case domain.ErrConflict:
		return e.Status == http.StatusConflict
	case domain.ErrBadRequest:
		return e.Status == http.StatusBadRequest || e.Status == http.StatusUnprocessableEntity
	}
	return false
}
