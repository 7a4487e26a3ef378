package notes

import (
	"errors"
	"net/http"

	"github.com/majikthise911/aes-note-taking-app/internal/classifier"
)

// Domain errors for note operations.
var (
	ErrNotFound          = errors.New("note not found")
	ErrDuplicate         = errors.New("note already exists")
	ErrInvalidTransition = errors.New("transition not permitted from current status")
	ErrInvalidCategory   = errors.New("category not in catalog")
	ErrNotClassified     = errors.New("note has no category assigned")
)

// MapHTTPStatus maps note domain errors to appropriate HTTP status codes.
// Classifier errors surfaced through Submit and Reclassify are delegated
// to the classifier mapping.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidCategory), errors.Is(err, ErrNotClassified):
		return http.StatusBadRequest
	case errors.Is(err, classifier.ErrEmptyInput),
		errors.Is(err, classifier.ErrUnavailable),
		errors.Is(err, classifier.ErrRateLimited),
		errors.Is(err, classifier.ErrMalformedResponse):
		return classifier.MapHTTPStatus(err)
	default:
		return http.StatusInternalServerError
	}
}
