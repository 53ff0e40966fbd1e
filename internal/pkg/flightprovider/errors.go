package flightprovider

import (
	"net/http"

	"github.com/pedrosgmagalhaes/FlightTicker/internal/pkg/exception"
)

var ErrProviderInternalError = exception.ApplicationError{
	StatusCode: http.StatusInternalServerError,
	Message:    "provider internal error or temporarily unavailable",
}

var ErrProviderRateLimitExceeded = exception.ApplicationError{
	StatusCode: http.StatusTooManyRequests,
	Message:    "provider rate limit exceeded",
}

var ErrProviderNotConfigured = exception.ApplicationError{
	StatusCode: http.StatusServiceUnavailable,
	Message:    "provider credentials not configured",
}
