package actionitems

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/majikthise911/aes-note-taking-app/internal/categories"
	"github.com/majikthise911/aes-note-taking-app/internal/notes"
	"github.com/majikthise911/aes-note-taking-app/pkg/handlers"
	"github.com/majikthise911/aes-note-taking-app/pkg/pagination"
	"github.com/majikthise911/aes-note-taking-app/pkg/routes"
)

// Handler provides the grouped action-items read endpoint.
type Handler struct {
	notes      notes.System
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHandler creates a Handler backed by the note system.
func NewHandler(sys notes.System, logger *slog.Logger, pg pagination.Config) *Handler {
	return &Handler{
		notes:      sys,
		logger:     logger.With("handler", "actionitems"),
		pagination: pg,
	}
}

// Routes returns the route group definition for action-item endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/action-items",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/grouped", Handler: h.Grouped},
		},
	}
}

// Grouped returns approved action-item notes partitioned into technical
// buckets for the requested project.
func (h *Handler) Grouped(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(r.URL.Query().Get("project_id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	status := notes.StatusApproved
	category := categories.ActionItems
	filters := notes.Filters{
		ProjectID: &projectID,
		Status:    &status,
		Category:  &category,
	}

	page := pagination.PageRequest{Page: 1, PageSize: h.pagination.MaxPageSize}
	result, err := h.notes.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, notes.MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, GroupNotes(result.Data))
}
