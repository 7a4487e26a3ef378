// Package actionitems provides the read-time projection that buckets
// approved "Action Items" notes into technical sub-domains using a
// priority-ordered keyword table, extracting assignees where the note
// leads with a recognized owner pattern. Stored notes are never mutated.
package actionitems

import (
	"regexp"
	"strings"

	"github.com/majikthise911/aes-note-taking-app/internal/notes"
)

// assigneePattern recognizes a leading owner token followed by an action
// marker: short initialisms ("AES to ..."), known short names, or a
// capitalized name pair ("John Smith must ...").
var assigneePattern = regexp.MustCompile(
	`^\s*([A-Z]{2,4}|Pre|[A-Z][a-z]+(?: [A-Z][a-z]+)?)\s+(?:to|needs to|must)\b`,
)

// Item is a grouped action item: the underlying note plus the extracted
// assignee, if any.
type Item struct {
	Note     notes.Note `json:"note"`
	Assignee *string    `json:"assignee,omitempty"`
}

// Group is a named bucket with the items assigned to it, in input order.
type Group struct {
	Bucket string `json:"bucket"`
	Items  []Item `json:"items"`
}

// GroupNotes partitions action-item notes into technical buckets. Each note
// is assigned to the first bucket in priority order whose keyword set
// matches its text; unmatched notes land in Other. Empty buckets are
// omitted from the result.
func GroupNotes(items []notes.Note) []Group {
	grouped := make(map[string][]Item)

	for _, n := range items {
		text := noteText(n)
		bucket := matchBucket(text)
		grouped[bucket] = append(grouped[bucket], Item{
			Note:     n,
			Assignee: ExtractAssignee(text),
		})
	}

	result := make([]Group, 0, len(grouped))
	for _, name := range BucketNames() {
		if items, ok := grouped[name]; ok {
			result = append(result, Group{Bucket: name, Items: items})
		}
	}

	return result
}

// ExtractAssignee returns the leading owner token when text starts with a
// recognized assignment pattern, nil otherwise.
func ExtractAssignee(text string) *string {
	match := assigneePattern.FindStringSubmatch(text)
	if match == nil {
		return nil
	}
	return &match[1]
}

func matchBucket(text string) string {
	lowered := strings.ToLower(text)

	for _, rule := range bucketRules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(lowered, keyword) {
				return rule.Name
			}
		}
	}

	return Other
}

func noteText(n notes.Note) string {
	if n.CleanedText != nil {
		return *n.CleanedText
	}
	return n.RawText
}
