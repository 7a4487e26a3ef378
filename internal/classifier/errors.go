package classifier

import (
	"errors"
	"net/http"
)

// Sentinel errors for classification operations.
var (
	// ErrEmptyInput indicates submission text was empty or whitespace.
	ErrEmptyInput = errors.New("raw text is empty")
	// ErrUnavailable indicates the API could not be reached after all retry
	// attempts and no cached response was available.
	ErrUnavailable = errors.New("classification service unavailable")
	// ErrRateLimited indicates the API rejected a request with a rate-limit
	// response. Surfaced only if the retry budget is exhausted.
	ErrRateLimited = errors.New("classification service rate limited")
	// ErrMalformedResponse indicates the API returned a payload that could
	// not be parsed against the expected schema. Not retried.
	ErrMalformedResponse = errors.New("malformed classification response")
	// ErrUnknownCategory indicates the API returned a label outside the
	// catalog. Callers recover by substituting the default category.
	ErrUnknownCategory = errors.New("category not in catalog")
)

// MapHTTPStatus maps classifier errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrEmptyInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnavailable), errors.Is(err, ErrRateLimited):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrMalformedResponse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
