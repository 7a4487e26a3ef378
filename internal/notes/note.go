// Package notes implements the note domain: the record entity produced by
// the classification pipeline, the approval workflow that governs its
// visibility, and data access for read views.
package notes

import (
	"time"

	"github.com/google/uuid"
)

// Note represents a stored project note. RawText is the immutable original
// input; CleanedText and Category are model-produced and nil until
// classification succeeds. ConfidenceScore is always within [0,1].
type Note struct {
	ID                 uuid.UUID `json:"id"`
	ProjectID          uuid.UUID `json:"project_id"`
	RawText            string    `json:"raw_text"`
	CleanedText        *string   `json:"cleaned_text"`
	Category           *string   `json:"category"`
	ConfidenceScore    float64   `json:"confidence_score"`
	ClarifyingQuestion *string   `json:"clarifying_question"`
	ApprovalStatus     Status    `json:"approval_status"`
	Date               string    `json:"date"`
	Timestamp          string    `json:"timestamp"`
	CreatedAt          time.Time `json:"created_at"`
}

// Classified reports whether the note carries a model-assigned category.
// Unclassified notes are retained after pipeline failures and flagged for
// reclassification.
func (n *Note) Classified() bool {
	return n.Category != nil
}

// ConfidenceBand returns the display band for the note's confidence score.
func (n *Note) ConfidenceBand() string {
	switch {
	case n.ConfidenceScore >= 0.8:
		return "high"
	case n.ConfidenceScore >= 0.6:
		return "medium"
	default:
		return "low"
	}
}

// SubmitCommand carries the data needed to submit raw text for
// classification.
type SubmitCommand struct {
	ProjectID uuid.UUID `json:"project_id"`
	RawText   string    `json:"raw_text"`
}

// SubmitResult reports the outcome of a submission. Unclassified is true
// when the classification pipeline failed and the raw text was stored
// without model output for later reclassification. FromCache marks results
// served from the classifier's fallback cache.
type SubmitResult struct {
	Notes        []Note `json:"notes"`
	FromCache    bool   `json:"from_cache"`
	Unclassified bool   `json:"unclassified"`
}

// ApproveCommand carries optional reviewer edits applied during approval.
// Nil fields leave the stored values untouched.
type ApproveCommand struct {
	CleanedText *string `json:"cleaned_text,omitempty"`
	Category    *string `json:"category,omitempty"`
}

// EditCommand carries reviewer edits to a note's text and category.
// The approval status is unchanged by an edit.
type EditCommand struct {
	CleanedText string `json:"cleaned_text"`
	Category    string `json:"category"`
}

// BatchResult reports the outcome of a single note within a bulk operation.
// Bulk operations apply per record; partial completion is reported, not
// hidden.
type BatchResult struct {
	ID    uuid.UUID `json:"id"`
	Error string    `json:"error,omitempty"`
}

// Statistics summarizes stored notes for a project.
type Statistics struct {
	ByStatus   map[string]int `json:"by_status"`
	ByCategory map[string]int `json:"by_category"`
	PerDay     map[string]int `json:"per_day"`
}
