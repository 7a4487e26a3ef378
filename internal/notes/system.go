package notes

import (
	"context"

	"github.com/google/uuid"

	"github.com/majikthise911/aes-note-taking-app/pkg/pagination"
)

// System defines the public contract for note domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Note], error)

	Find(ctx context.Context, id uuid.UUID) (*Note, error)

	// Submit runs the classification pipeline on raw text and stores the
	// resulting notes with pending status. A pipeline failure after retries
	// and cache fallback stores the raw text unclassified rather than
	// discarding it.
	Submit(ctx context.Context, cmd SubmitCommand) (*SubmitResult, error)

	// Reclassify re-runs the pipeline for a stored note, replacing its
	// model-produced fields. Permitted only while the note is pending.
	Reclassify(ctx context.Context, id uuid.UUID) (*Note, error)

	Approve(ctx context.Context, id uuid.UUID, cmd ApproveCommand) (*Note, error)
	Reject(ctx context.Context, id uuid.UUID) (*Note, error)
	Restore(ctx context.Context, id uuid.UUID) (*Note, error)
	Edit(ctx context.Context, id uuid.UUID, cmd EditCommand) (*Note, error)
	Delete(ctx context.Context, id uuid.UUID) error

	RestoreAll(ctx context.Context, projectID uuid.UUID) ([]BatchResult, error)
	DeleteAll(ctx context.Context, projectID uuid.UUID) ([]BatchResult, error)

	Statistics(ctx context.Context, projectID uuid.UUID) (*Statistics, error)
}
