package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/majikthise911/aes-note-taking-app/internal/classifier"
	"github.com/majikthise911/aes-note-taking-app/pkg/pagination"
	"github.com/majikthise911/aes-note-taking-app/pkg/query"
	"github.com/majikthise911/aes-note-taking-app/pkg/repository"
)

const noteColumns = `id, project_id, raw_text, cleaned_text, category,
	confidence_score, clarifying_question, approval_status, date, timestamp, created_at`

type repo struct {
	db         *sql.DB
	client     *classifier.Client
	logger     *slog.Logger
	pagination pagination.Config
	now        func() time.Time
}

// New creates a note repository implementing the System interface.
func New(
	db *sql.DB,
	client *classifier.Client,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		client:     client,
		logger:     logger.With("system", "notes"),
		pagination: pagination,
		now:        time.Now,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.client.Catalog(), r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Note], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort...).
		WhereSearch(page.Search, "RawText", "CleanedText")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count notes: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanNote)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Note, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	n, err := repository.QueryOne(ctx, r.db, q, args, scanNote)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &n, nil
}

func (r *repo) Submit(ctx context.Context, cmd SubmitCommand) (*SubmitResult, error) {
	resp, err := r.client.Classify(ctx, cmd.RawText)

	switch {
	case err == nil:
		return r.storeClassified(ctx, cmd, resp)
	case errors.Is(err, classifier.ErrUnavailable),
		errors.Is(err, classifier.ErrRateLimited):
		// The raw note is retained for later reclassification; it must not
		// be lost because the API was unreachable.
		return r.storeUnclassified(ctx, cmd, err)
	default:
		return nil, err
	}
}

func (r *repo) storeClassified(
	ctx context.Context,
	cmd SubmitCommand,
	resp *classifier.Response,
) (*SubmitResult, error) {
	date, timestamp := r.provenance()

	insertQ := fmt.Sprintf(`
		INSERT INTO notes(
			project_id, raw_text, cleaned_text, category,
			confidence_score, clarifying_question, approval_status, date, timestamp
		)
		VALUES ($1, $2, $3, $4, $5, $6, 'pending', $7, $8)
		RETURNING %s`, noteColumns)

	stored, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) ([]Note, error) {
		result := make([]Note, 0, len(resp.Notes))
		for _, cn := range resp.Notes {
			args := []any{
				cmd.ProjectID, cmd.RawText, cn.CleanedText, cn.Category,
				cn.ConfidenceScore, cn.ClarifyingQuestion, date, timestamp,
			}
			n, err := repository.QueryOne(ctx, tx, insertQ, args, scanNote)
			if err != nil {
				return nil, fmt.Errorf("insert note: %w", err)
			}
			result = append(result, n)
		}
		return result, nil
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("submission classified",
		"project_id", cmd.ProjectID,
		"notes", len(stored),
		"from_cache", resp.FromCache,
	)

	return &SubmitResult{Notes: stored, FromCache: resp.FromCache}, nil
}

func (r *repo) storeUnclassified(
	ctx context.Context,
	cmd SubmitCommand,
	cause error,
) (*SubmitResult, error) {
	date, timestamp := r.provenance()

	insertQ := fmt.Sprintf(`
		INSERT INTO notes(project_id, raw_text, approval_status, date, timestamp)
		VALUES ($1, $2, 'pending', $3, $4)
		RETURNING %s`, noteColumns)

	n, err := repository.QueryOne(
		ctx, r.db, insertQ,
		[]any{cmd.ProjectID, cmd.RawText, date, timestamp},
		scanNote,
	)
	if err != nil {
		return nil, fmt.Errorf("insert unclassified note: %w", err)
	}

	r.logger.Warn("submission stored unclassified",
		"id", n.ID,
		"project_id", cmd.ProjectID,
		"cause", cause,
	)

	return &SubmitResult{Notes: []Note{n}, Unclassified: true}, nil
}

func (r *repo) Reclassify(ctx context.Context, id uuid.UUID) (*Note, error) {
	existing, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if existing.ApprovalStatus != StatusPending {
		return nil, fmt.Errorf("%w: reclassify requires pending status", ErrInvalidTransition)
	}

	resp, err := r.client.Classify(ctx, existing.RawText)
	if err != nil {
		return nil, err
	}

	// A reclassified submission maps onto the existing record; extra notes
	// from a split are not created here.
	cn := resp.Notes[0]

	updateQ := fmt.Sprintf(`
		UPDATE notes
		SET cleaned_text = $1, category = $2, confidence_score = $3, clarifying_question = $4
		WHERE id = $5 AND approval_status = 'pending'
		RETURNING %s`, noteColumns)

	n, err := repository.QueryOne(
		ctx, r.db, updateQ,
		[]any{cn.CleanedText, cn.Category, cn.ConfidenceScore, cn.ClarifyingQuestion, id},
		scanNote,
	)
	if err != nil {
		return nil, repository.MapError(err, ErrInvalidTransition, ErrDuplicate)
	}

	r.logger.Info("note reclassified",
		"id", n.ID,
		"category", cn.Category,
		"confidence", cn.ConfidenceScore,
		"from_cache", resp.FromCache,
	)
	return &n, nil
}

func (r *repo) Approve(ctx context.Context, id uuid.UUID, cmd ApproveCommand) (*Note, error) {
	if cmd.Category != nil && !r.client.Catalog().Contains(*cmd.Category) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, *cmd.Category)
	}

	approveQ := fmt.Sprintf(`
		UPDATE notes
		SET approval_status = 'approved',
			cleaned_text = COALESCE($1, cleaned_text),
			category = COALESCE($2, category)
		WHERE id = $3 AND approval_status = 'pending'
		RETURNING %s`, noteColumns)

	n, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Note, error) {
		existing, err := repository.QueryOne(
			ctx, tx,
			fmt.Sprintf("SELECT %s FROM notes WHERE id = $1 FOR UPDATE", noteColumns),
			[]any{id}, scanNote,
		)
		if err != nil {
			return Note{}, repository.MapError(err, ErrNotFound, ErrDuplicate)
		}

		if existing.ApprovalStatus != StatusPending {
			return Note{}, fmt.Errorf(
				"%w: approve from %s", ErrInvalidTransition, existing.ApprovalStatus,
			)
		}

		// Classification must have completed (or the reviewer must supply a
		// category) before a note becomes visible in read views.
		if cmd.Category == nil && existing.Category == nil {
			return Note{}, ErrNotClassified
		}

		updated, err := repository.QueryOne(
			ctx, tx, approveQ,
			[]any{cmd.CleanedText, cmd.Category, id},
			scanNote,
		)
		if err != nil {
			return Note{}, repository.MapError(err, ErrInvalidTransition, ErrDuplicate)
		}
		return updated, nil
	})

	if err != nil {
		return nil, err
	}

	r.logger.Info("note approved", "id", n.ID)
	return &n, nil
}

func (r *repo) Reject(ctx context.Context, id uuid.UUID) (*Note, error) {
	rejectQ := fmt.Sprintf(`
		UPDATE notes
		SET approval_status = 'rejected'
		WHERE id = $1 AND approval_status = 'pending'
		RETURNING %s`, noteColumns)

	n, err := r.transition(ctx, id, rejectQ, id)
	if err != nil {
		return nil, err
	}

	r.logger.Info("note rejected", "id", n.ID)
	return n, nil
}

func (r *repo) Restore(ctx context.Context, id uuid.UUID) (*Note, error) {
	restoreQ := fmt.Sprintf(`
		UPDATE notes
		SET approval_status = 'pending'
		WHERE id = $1 AND approval_status = 'rejected'
		RETURNING %s`, noteColumns)

	n, err := r.transition(ctx, id, restoreQ, id)
	if err != nil {
		return nil, err
	}

	r.logger.Info("note restored", "id", n.ID)
	return n, nil
}

func (r *repo) Edit(ctx context.Context, id uuid.UUID, cmd EditCommand) (*Note, error) {
	if !r.client.Catalog().Contains(cmd.Category) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, cmd.Category)
	}

	editQ := fmt.Sprintf(`
		UPDATE notes
		SET cleaned_text = $1, category = $2
		WHERE id = $3
		RETURNING %s`, noteColumns)

	n, err := repository.QueryOne(
		ctx, r.db, editQ,
		[]any{cmd.CleanedText, cmd.Category, id},
		scanNote,
	)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("note edited", "id", n.ID, "category", cmd.Category)
	return &n, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		existing, err := repository.QueryOne(
			ctx, tx,
			fmt.Sprintf("SELECT %s FROM notes WHERE id = $1", noteColumns),
			[]any{id}, scanNote,
		)
		if err != nil {
			return struct{}{}, repository.MapError(err, ErrNotFound, ErrDuplicate)
		}

		if !CanDelete(existing.ApprovalStatus) {
			return struct{}{}, fmt.Errorf(
				"%w: delete from %s", ErrInvalidTransition, existing.ApprovalStatus,
			)
		}

		if err := repository.ExecExpectOne(
			ctx, tx, "DELETE FROM notes WHERE id = $1", id,
		); err != nil {
			return struct{}{}, repository.MapError(err, ErrNotFound, ErrDuplicate)
		}
		return struct{}{}, nil
	})

	if err != nil {
		return err
	}

	r.logger.Info("note permanently deleted", "id", id)
	return nil
}

func (r *repo) RestoreAll(ctx context.Context, projectID uuid.UUID) ([]BatchResult, error) {
	return r.bulk(ctx, projectID, func(ctx context.Context, id uuid.UUID) error {
		_, err := r.Restore(ctx, id)
		return err
	})
}

func (r *repo) DeleteAll(ctx context.Context, projectID uuid.UUID) ([]BatchResult, error) {
	return r.bulk(ctx, projectID, r.Delete)
}

// bulk applies op to every rejected note of a project. Each record is
// handled independently; failures are reported per record rather than
// aborting the batch.
func (r *repo) bulk(
	ctx context.Context,
	projectID uuid.UUID,
	op func(context.Context, uuid.UUID) error,
) ([]BatchResult, error) {
	ids, err := repository.QueryMany(
		ctx, r.db,
		"SELECT id FROM notes WHERE project_id = $1 AND approval_status = 'rejected'",
		[]any{projectID},
		func(s repository.Scanner) (uuid.UUID, error) {
			var id uuid.UUID
			err := s.Scan(&id)
			return id, err
		},
	)
	if err != nil {
		return nil, fmt.Errorf("query rejected notes: %w", err)
	}

	results := make([]BatchResult, 0, len(ids))
	for _, id := range ids {
		result := BatchResult{ID: id}
		if err := op(ctx, id); err != nil {
			result.Error = err.Error()
		}
		results = append(results, result)
	}

	return results, nil
}

func (r *repo) Statistics(ctx context.Context, projectID uuid.UUID) (*Statistics, error) {
	stats := &Statistics{
		ByStatus:   make(map[string]int),
		ByCategory: make(map[string]int),
		PerDay:     make(map[string]int),
	}

	type bucket struct {
		key   string
		count int
	}

	scanBucket := func(s repository.Scanner) (bucket, error) {
		var b bucket
		err := s.Scan(&b.key, &b.count)
		return b, err
	}

	statusRows, err := repository.QueryMany(
		ctx, r.db,
		"SELECT approval_status, COUNT(*) FROM notes WHERE project_id = $1 GROUP BY approval_status",
		[]any{projectID}, scanBucket,
	)
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}
	for _, b := range statusRows {
		stats.ByStatus[b.key] = b.count
	}

	categoryRows, err := repository.QueryMany(
		ctx, r.db,
		`SELECT category, COUNT(*) FROM notes
		 WHERE project_id = $1 AND approval_status = 'approved' AND category IS NOT NULL
		 GROUP BY category`,
		[]any{projectID}, scanBucket,
	)
	if err != nil {
		return nil, fmt.Errorf("count by category: %w", err)
	}
	for _, b := range categoryRows {
		stats.ByCategory[b.key] = b.count
	}

	dayRows, err := repository.QueryMany(
		ctx, r.db,
		`SELECT date, COUNT(*) FROM notes
		 WHERE project_id = $1 AND approval_status = 'approved'
		   AND date >= to_char(NOW() - INTERVAL '30 days', 'YYYY-MM-DD')
		 GROUP BY date ORDER BY date DESC`,
		[]any{projectID}, scanBucket,
	)
	if err != nil {
		return nil, fmt.Errorf("count per day: %w", err)
	}
	for _, b := range dayRows {
		stats.PerDay[b.key] = b.count
	}

	return stats, nil
}

// transition executes a conditional status update. Zero rows affected means
// the note either does not exist or is not in a state that permits the
// operation; the two cases are distinguished so illegal transitions surface
// as ErrInvalidTransition without mutating the record.
func (r *repo) transition(
	ctx context.Context,
	id uuid.UUID,
	updateQ string,
	args ...any,
) (*Note, error) {
	n, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Note, error) {
		updated, err := repository.QueryOne(ctx, tx, updateQ, args, scanNote)
		if err == nil {
			return updated, nil
		}

		if !errors.Is(err, sql.ErrNoRows) {
			return Note{}, err
		}

		if _, findErr := repository.QueryOne(
			ctx, tx,
			fmt.Sprintf("SELECT %s FROM notes WHERE id = $1", noteColumns),
			[]any{id}, scanNote,
		); findErr != nil {
			return Note{}, repository.MapError(findErr, ErrNotFound, ErrDuplicate)
		}

		return Note{}, ErrInvalidTransition
	})

	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *repo) provenance() (date, timestamp string) {
	now := r.now()
	return now.Format("2006-01-02"), now.Format("15:04:05")
}
