package exports

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidFormat indicates an unrecognized export format.
	ErrInvalidFormat = errors.New("invalid export format")
	// ErrNoNotes indicates there were no approved notes matching the export filters.
	ErrNoNotes = errors.New("no approved notes to export")
)

// MapHTTPStatus translates export errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidFormat):
		return http.StatusBadRequest
	case errors.Is(err, ErrNoNotes):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
