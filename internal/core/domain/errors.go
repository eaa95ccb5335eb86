package domain

import "errors"

// Sentinel errors shared across the portal. Handlers and the central error
// handler map these to HTTP status codes; the upstream client wraps backend
// failures into them so callers can branch with errors.Is.
var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("authentication required")
	ErrForbidden           = errors.New("access forbidden")
	ErrBadRequest          = errors.New("invalid request")
	ErrConflict            = errors.New("resource conflict")
	ErrPaymentRequired     = errors.New("payment required")
	ErrUpstreamUnavailable = errors.New("library service unavailable")
)
