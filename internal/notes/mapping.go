package notes

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/majikthise911/aes-note-taking-app/pkg/query"
	"github.com/majikthise911/aes-note-taking-app/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "notes", "n").
	Project("id", "ID").
	Project("project_id", "ProjectID").
	Project("raw_text", "RawText").
	Project("cleaned_text", "CleanedText").
	Project("category", "Category").
	Project("confidence_score", "ConfidenceScore").
	Project("clarifying_question", "ClarifyingQuestion").
	Project("approval_status", "ApprovalStatus").
	Project("date", "Date").
	Project("timestamp", "Timestamp").
	Project("created_at", "CreatedAt")

var defaultSort = []query.SortField{
	{Field: "Date", Descending: true},
	{Field: "Timestamp", Descending: true},
}

// Filters contains optional filtering criteria for note queries.
// Nil fields are ignored. Unclassified selects notes without a category
// (retained after pipeline failures) when true.
type Filters struct {
	ProjectID    *uuid.UUID `json:"project_id,omitempty"`
	Status       *Status    `json:"status,omitempty"`
	Category     *string    `json:"category,omitempty"`
	DateFrom     *string    `json:"date_from,omitempty"`
	DateTo       *string    `json:"date_to,omitempty"`
	Unclassified bool       `json:"unclassified,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	b.
		WhereEquals("ProjectID", f.ProjectID).
		WhereEquals("Category", f.Category).
		WhereGte("Date", f.DateFrom).
		WhereLte("Date", f.DateTo)

	if f.Status != nil {
		b.WhereEquals("ApprovalStatus", string(*f.Status))
	}
	if f.Unclassified {
		b.WhereNullable("Category", nil)
	}

	return b
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if p := values.Get("project_id"); p != "" {
		if id, err := uuid.Parse(p); err == nil {
			f.ProjectID = &id
		}
	}

	if s := values.Get("status"); s != "" {
		if status, err := ParseStatus(s); err == nil {
			f.Status = &status
		}
	}

	if c := values.Get("category"); c != "" {
		f.Category = &c
	}

	if d := values.Get("date_from"); d != "" {
		f.DateFrom = &d
	}

	if d := values.Get("date_to"); d != "" {
		f.DateTo = &d
	}

	f.Unclassified = values.Get("unclassified") == "true"

	return f
}

func scanNote(s repository.Scanner) (Note, error) {
	var n Note
	var status string

	err := s.Scan(
		&n.ID,
		&n.ProjectID,
		&n.RawText,
		&n.CleanedText,
		&n.Category,
		&n.ConfidenceScore,
		&n.ClarifyingQuestion,
		&status,
		&n.Date,
		&n.Timestamp,
		&n.CreatedAt,
	)

	if err != nil {
		return n, err
	}

	n.ApprovalStatus = Status(status)
	return n, nil
}
