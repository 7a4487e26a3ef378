// Package exports renders approved notes as markdown or CSV documents and
// archives generated exports to blob storage.
package exports

import (
	"encoding/csv"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/majikthise911/aes-note-taking-app/internal/notes"
)

// Format identifies an export document format.
type Format string

// Supported export formats.
const (
	FormatMarkdown Format = "markdown"
	FormatCSV      Format = "csv"
)

// ParseFormat validates a string as a known export format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatMarkdown:
		return FormatMarkdown, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", ErrInvalidFormat
	}
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv"
	}
	return "text/markdown"
}

// Extension returns the file extension for the format.
func (f Format) Extension() string {
	if f == FormatCSV {
		return "csv"
	}
	return "md"
}

// GenerateMarkdown renders notes grouped by category as a markdown document
// suitable for pasting into external note tools.
func GenerateMarkdown(items []notes.Note, categoryFilter string, now time.Time) string {
	var b strings.Builder

	filter := categoryFilter
	if filter == "" {
		filter = "All"
	}

	fmt.Fprintf(&b, "# Notes by Category Export\n\n")
	fmt.Fprintf(&b, "**Category Filter:** %s\n\n", filter)
	fmt.Fprintf(&b, "**Total Notes:** %d\n\n", len(items))
	fmt.Fprintf(&b, "**Exported:** %s\n\n", now.Format("2006-01-02 15:04:05"))
	b.WriteString("---\n\n")

	grouped := make(map[string][]notes.Note)
	for _, n := range items {
		category := "Uncategorized"
		if n.Category != nil {
			category = *n.Category
		}
		grouped[category] = append(grouped[category], n)
	}

	names := make([]string, 0, len(grouped))
	for name := range grouped {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		group := grouped[name]
		fmt.Fprintf(&b, "## %s\n\n", name)
		fmt.Fprintf(&b, "*%d notes*\n\n", len(group))

		for _, n := range group {
			if n.Timestamp != "" {
				fmt.Fprintf(&b, "**%s %s**\n\n", n.Date, n.Timestamp)
			} else {
				fmt.Fprintf(&b, "**%s**\n\n", n.Date)
			}

			text := n.RawText
			if n.CleanedText != nil {
				text = *n.CleanedText
			}
			fmt.Fprintf(&b, "%s\n\n", text)
			b.WriteString("---\n\n")
		}
	}

	return b.String()
}

// GenerateCSV renders notes as a CSV document with a header row.
func GenerateCSV(items []notes.Note) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)

	header := []string{
		"id", "date", "timestamp", "category",
		"cleaned_text", "confidence_score", "approval_status",
	}
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}

	for _, n := range items {
		category := ""
		if n.Category != nil {
			category = *n.Category
		}
		text := n.RawText
		if n.CleanedText != nil {
			text = *n.CleanedText
		}

		record := []string{
			n.ID.String(),
			n.Date,
			n.Timestamp,
			category,
			text,
			fmt.Sprintf("%.2f", n.ConfidenceScore),
			string(n.ApprovalStatus),
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("write csv record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}

	return b.String(), nil
}
