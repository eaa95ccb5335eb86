package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/perpuskita/library-portal/internal/api/metrics"
	"github.com/perpuskita/library-portal/internal/core/domain"
	"github.com/perpuskita/library-portal/internal/upstream"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// paymentRequiredResponse is the 402 envelope. The client opens the Snap
// widget from the attached details instead of showing an error toast.
type paymentRequiredResponse struct {
	Error           string                 `json:"error"`
	PaymentRequired bool                   `json:"payment_required"`
	PaymentDetails  *domain.PaymentDetails `json:"payment_details,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Relays backend errors with the backend's own status and message.
//   - Renders 402 responses with the payment details attached.
//   - Maps domain errors to deterministic HTTP codes.
//   - Logs unexpected errors internally without leaking details.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if errors.Is(err, domain.ErrPaymentRequired) {
			metrics.PaymentRequiredTotal.WithLabelValues(c.Path()).Inc()
			var apiErr *upstream.Error
			resp := paymentRequiredResponse{Error: err.Error(), PaymentRequired: true}
			if errors.As(err, &apiErr) {
				resp.Error = apiErr.Message
				resp.PaymentDetails = apiErr.PaymentDetails
			}
			_ = c.JSON(http.StatusPaymentRequired, resp)
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Validation rule failures carry their own message.
	var ruleErr *domain.BookingRuleError
	if errors.As(err, &ruleErr) {
		return http.StatusBadRequest, ruleErr.Message
	}

	// Backend errors keep the backend's status and message.
	var apiErr *upstream.Error
	if errors.As(err, &apiErr) {
		return apiErr.Status, apiErr.Error()
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrBadRequest):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "authentication required"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		log.Error().Err(err).Str("path", c.Path()).Msg("backend unreachable")
		return http.StatusBadGateway, "library service is unavailable"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
