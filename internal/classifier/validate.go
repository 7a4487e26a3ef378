package classifier

import (
	"fmt"
	"strings"

	"github.com/majikthise911/aes-note-taking-app/internal/categories"
	"github.com/majikthise911/aes-note-taking-app/pkg/formatting"
)

// Confidence assigned when the model omits the score or returns something
// that cannot be interpreted as a number.
const defaultConfidence = 0.75

// Note is a single validated classification result.
type Note struct {
	CleanedText        string  `json:"cleaned_text"`
	Category           string  `json:"category"`
	ConfidenceScore    float64 `json:"confidence_score"`
	ClarifyingQuestion *string `json:"clarifying_question"`
}

type rawNote struct {
	CleanedText        *string  `json:"cleaned_text"`
	Category           *string  `json:"category"`
	ConfidenceScore    *float64 `json:"confidence_score"`
	ClarifyingQuestion *string  `json:"clarifying_question"`
}

// ValidateContent parses model output content against the expected schema and
// normalizes each note: confidence clamped into [0,1] (defaulted when
// absent), empty clarifying questions normalized to nil, and out-of-catalog
// categories replaced with the default label. Pure function of its input.
//
// A payload that cannot be parsed, or a note missing cleaned_text or
// category, fails with ErrMalformedResponse. An out-of-catalog label is
// recovered rather than fatal; the substitution is reported through the
// returned ErrUnknownCategory so callers can log it.
func ValidateContent(content string, catalog categories.Catalog) ([]Note, error) {
	parsed, err := parseNotes(content)
	if err != nil {
		return nil, err
	}

	if len(parsed) == 0 {
		return nil, fmt.Errorf("%w: empty result set", ErrMalformedResponse)
	}

	var substituted error
	notes := make([]Note, 0, len(parsed))

	for i, raw := range parsed {
		if raw.CleanedText == nil || *raw.CleanedText == "" {
			return nil, fmt.Errorf("%w: note %d missing cleaned_text", ErrMalformedResponse, i)
		}
		if raw.Category == nil || *raw.Category == "" {
			return nil, fmt.Errorf("%w: note %d missing category", ErrMalformedResponse, i)
		}

		note := Note{
			CleanedText:        *raw.CleanedText,
			Category:           *raw.Category,
			ConfidenceScore:    clampConfidence(raw.ConfidenceScore),
			ClarifyingQuestion: normalizeQuestion(raw.ClarifyingQuestion),
		}

		if !catalog.Contains(note.Category) {
			substituted = fmt.Errorf("%w: %q", ErrUnknownCategory, note.Category)
			note.Category = categories.Default
		}

		notes = append(notes, note)
	}

	return notes, substituted
}

func parseNotes(content string) ([]rawNote, error) {
	if parsed, err := formatting.Parse[[]rawNote](content); err == nil {
		return parsed, nil
	}

	// The model occasionally returns a bare object instead of an array.
	single, err := formatting.Parse[rawNote](content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedResponse, truncate(content, 200))
	}
	return []rawNote{single}, nil
}

func clampConfidence(score *float64) float64 {
	if score == nil {
		return defaultConfidence
	}
	if *score < 0 {
		return 0
	}
	if *score > 1 {
		return 1
	}
	return *score
}

func normalizeQuestion(q *string) *string {
	if q == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*q)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
