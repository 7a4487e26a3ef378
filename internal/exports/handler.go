package exports

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/majikthise911/aes-note-taking-app/pkg/handlers"
	"github.com/majikthise911/aes-note-taking-app/pkg/routes"
)

// Handler provides HTTP endpoints for export operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// Routes returns the route group definition for export endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/exports",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{format}", Handler: h.Generate},
			{Method: "POST", Pattern: "/archive", Handler: h.Archive},
		},
	}
}

// Generate renders an export document and serves it directly.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	req, err := h.request(r, r.PathValue("format"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	doc, err := h.sys.Generate(r.Context(), req)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+doc.Filename)
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write([]byte(doc.Content)); err != nil {
		h.logger.Error("write export response", "error", err)
	}
}

// Archive generates an export and uploads it to blob storage.
func (h *Handler) Archive(w http.ResponseWriter, r *http.Request) {
	var body Request
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	format, err := ParseFormat(string(body.Format))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	body.Format = format

	result, err := h.sys.Archive(r.Context(), body)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, result)
}

func (h *Handler) request(r *http.Request, format string) (Request, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return Request{}, err
	}

	req := Request{
		Format:   f,
		Category: r.URL.Query().Get("category"),
	}

	if raw := r.URL.Query().Get("project_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return Request{}, err
		}
		req.ProjectID = id
	}

	return req, nil
}
