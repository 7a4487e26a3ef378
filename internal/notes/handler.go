package notes

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/majikthise911/aes-note-taking-app/internal/categories"
	"github.com/majikthise911/aes-note-taking-app/internal/classifier"
	"github.com/majikthise911/aes-note-taking-app/pkg/handlers"
	"github.com/majikthise911/aes-note-taking-app/pkg/pagination"
	"github.com/majikthise911/aes-note-taking-app/pkg/routes"
)

// Handler provides HTTP endpoints for note operations.
type Handler struct {
	sys        System
	catalog    categories.Catalog
	logger     *slog.Logger
	pagination pagination.Config
}

// SearchRequest combines pagination and filter criteria for the search endpoint.
type SearchRequest struct {
	pagination.PageRequest
	Filters
}

// BulkCommand identifies the project a bulk operation applies to.
type BulkCommand struct {
	ProjectID uuid.UUID `json:"project_id"`
}

// NewHandler creates a Handler with the given system, catalog, logger, and
// pagination config.
func NewHandler(
	sys System,
	catalog categories.Catalog,
	logger *slog.Logger,
	pagination pagination.Config,
) *Handler {
	return &Handler{
		sys:        sys,
		catalog:    catalog,
		logger:     logger.With("handler", "notes"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for note endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/notes",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/categories", Handler: h.Categories},
			{Method: "GET", Pattern: "/statistics", Handler: h.Statistics},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "POST", Pattern: "", Handler: h.Submit},
			{Method: "POST", Pattern: "/search", Handler: h.Search},
			{Method: "POST", Pattern: "/restore-all", Handler: h.RestoreAll},
			{Method: "POST", Pattern: "/delete-all", Handler: h.DeleteAll},
			{Method: "POST", Pattern: "/{id}/reclassify", Handler: h.Reclassify},
			{Method: "POST", Pattern: "/{id}/approve", Handler: h.Approve},
			{Method: "POST", Pattern: "/{id}/reject", Handler: h.Reject},
			{Method: "POST", Pattern: "/{id}/restore", Handler: h.Restore},
			{Method: "PUT", Pattern: "/{id}", Handler: h.Edit},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete},
		},
	}
}

// List returns a paginated list of notes with optional query parameter filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Categories returns the catalog of valid classification labels.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.catalog.Labels())
}

// Statistics returns note counts by status, category, and day for a project.
func (h *Handler) Statistics(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(r.URL.Query().Get("project_id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	stats, err := h.sys.Statistics(r.Context(), projectID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, stats)
}

// Find returns a single note by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	n, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, n)
}

// Submit accepts raw note text, runs the classification pipeline, and stores
// the resulting notes in pending status. Returns 201 with the stored notes.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var cmd SubmitCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if strings.TrimSpace(cmd.RawText) == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, classifier.ErrEmptyInput)
		return
	}

	result, err := h.sys.Submit(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Search accepts a JSON body with pagination and filter criteria and returns matching notes.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	req.PageRequest.Normalize(h.pagination)

	result, err := h.sys.List(r.Context(), req.PageRequest, req.Filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Reclassify re-runs the classification pipeline for a pending note.
func (h *Handler) Reclassify(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.sys.Reclassify)
}

// Approve transitions a pending note to approved, applying any reviewer
// edits from the optional JSON body.
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	var cmd ApproveCommand
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
			return
		}
	}

	n, err := h.sys.Approve(r.Context(), id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, n)
}

// Reject transitions a pending note to rejected, excluding it from read views.
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.sys.Reject)
}

// Restore returns a rejected note to the approval queue unchanged.
func (h *Handler) Restore(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.sys.Restore)
}

// Edit overwrites a note's cleaned text and category without changing its status.
func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	var cmd EditCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	n, err := h.sys.Edit(r.Context(), id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, n)
}

// Delete permanently removes a rejected note.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	if err := h.sys.Delete(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RestoreAll returns every rejected note of a project to the approval queue.
func (h *Handler) RestoreAll(w http.ResponseWriter, r *http.Request) {
	h.bulk(w, r, h.sys.RestoreAll)
}

// DeleteAll permanently removes every rejected note of a project.
func (h *Handler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	h.bulk(w, r, h.sys.DeleteAll)
}

// mutate runs a body-less single-note transition identified by the id path
// parameter and writes the updated note.
func (h *Handler) mutate(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, id uuid.UUID) (*Note, error),
) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	n, err := op(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, n)
}

// bulk decodes a BulkCommand body, applies the operation, and reports
// per-record outcomes.
func (h *Handler) bulk(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, projectID uuid.UUID) ([]BatchResult, error),
) {
	var cmd BulkCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	results, err := op(r.Context(), cmd.ProjectID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, results)
}
