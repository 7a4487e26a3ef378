package exports

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/majikthise911/aes-note-taking-app/internal/notes"
	"github.com/majikthise911/aes-note-taking-app/pkg/pagination"
	"github.com/majikthise911/aes-note-taking-app/pkg/storage"
)

// Document is a rendered export ready to serve or archive.
type Document struct {
	Content     string `json:"content"`
	ContentType string `json:"content_type"`
	Filename    string `json:"filename"`
	NoteCount   int    `json:"note_count"`
}

// ArchiveResult describes an export persisted to blob storage.
type ArchiveResult struct {
	Key       string    `json:"key"`
	NoteCount int       `json:"note_count"`
	CreatedAt time.Time `json:"created_at"`
}

// Request selects the notes to export.
type Request struct {
	ProjectID uuid.UUID `json:"project_id"`
	Category  string    `json:"category,omitempty"`
	Format    Format    `json:"format"`
}

// System generates and archives note exports.
type System interface {
	Handler() *Handler

	// Generate renders the approved notes matching the request as a document.
	Generate(ctx context.Context, req Request) (*Document, error)

	// Archive generates a document and uploads it to blob storage.
	Archive(ctx context.Context, req Request) (*ArchiveResult, error)
}

type system struct {
	notes      notes.System
	store      storage.System
	pagination pagination.Config
	logger     *slog.Logger
	now        func() time.Time
}

// New creates an export system backed by the note system and blob storage.
func New(n notes.System, store storage.System, p pagination.Config, logger *slog.Logger) System {
	return &system{
		notes:      n,
		store:      store,
		pagination: p,
		logger:     logger.With("system", "exports"),
		now:        time.Now,
	}
}

func (s *system) Handler() *Handler {
	return &Handler{
		sys:    s,
		logger: s.logger.With("handler", "exports"),
	}
}

func (s *system) Generate(ctx context.Context, req Request) (*Document, error) {
	items, err := s.collect(ctx, req)
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return nil, ErrNoNotes
	}

	now := s.now()
	doc := &Document{
		ContentType: req.Format.ContentType(),
		Filename:    filename(req, now),
		NoteCount:   len(items),
	}

	switch req.Format {
	case FormatCSV:
		content, err := GenerateCSV(items)
		if err != nil {
			return nil, err
		}
		doc.Content = content
	default:
		doc.Content = GenerateMarkdown(items, req.Category, now)
	}

	return doc, nil
}

func (s *system) Archive(ctx context.Context, req Request) (*ArchiveResult, error) {
	doc, err := s.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("exports/%s/%s", req.ProjectID, doc.Filename)
	if err := s.store.Upload(ctx, key, strings.NewReader(doc.Content), doc.ContentType); err != nil {
		return nil, fmt.Errorf("archive export: %w", err)
	}

	s.logger.Info("export archived",
		"key", key,
		"format", req.Format,
		"notes", doc.NoteCount)

	return &ArchiveResult{
		Key:       key,
		NoteCount: doc.NoteCount,
		CreatedAt: s.now(),
	}, nil
}

// collect pages through all approved notes matching the request filters.
func (s *system) collect(ctx context.Context, req Request) ([]notes.Note, error) {
	status := notes.StatusApproved
	filters := notes.Filters{Status: &status}
	if req.ProjectID != uuid.Nil {
		filters.ProjectID = &req.ProjectID
	}
	if req.Category != "" {
		filters.Category = &req.Category
	}

	var items []notes.Note
	page := pagination.PageRequest{Page: 1, PageSize: s.pagination.MaxPageSize}

	for {
		result, err := s.notes.List(ctx, page, filters)
		if err != nil {
			return nil, fmt.Errorf("collect notes for export: %w", err)
		}

		items = append(items, result.Data...)
		if page.Page >= result.TotalPages {
			break
		}
		page.Page++
	}

	return items, nil
}

func filename(req Request, now time.Time) string {
	name := "notes"
	if req.Category != "" {
		name = strings.ToLower(strings.ReplaceAll(req.Category, " ", "-"))
	}
	return fmt.Sprintf("%s-%s.%s", name, now.Format("20060102-150405"), req.Format.Extension())
}
