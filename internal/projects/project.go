// Package projects implements the project domain. Every note belongs to
// exactly one project; projects scope the read views and bulk operations.
package projects

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/majikthise911/aes-note-taking-app/pkg/pagination"
)

// Project represents an owning project for notes.
type Project struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateCommand carries the data needed to register a new project.
type CreateCommand struct {
	Name string `json:"name"`
}

// Domain errors for project operations.
var (
	ErrNotFound  = errors.New("project not found")
	ErrDuplicate = errors.New("project already exists")
	ErrNameEmpty = errors.New("project name is empty")
)

// MapHTTPStatus maps project domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrNameEmpty):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// System defines the public contract for project domain operations.
type System interface {
	Handler() *Handler

	List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[Project], error)
	Find(ctx context.Context, id uuid.UUID) (*Project, error)
	Create(ctx context.Context, cmd CreateCommand) (*Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
