package classifier

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/majikthise911/aes-note-taking-app/internal/categories"
)

const instructions = `You are a professional note-taking assistant. Your task is to:
1. Clean the provided raw notes for grammar, structure, and clarity
2. Categorize each note under ONE of the predefined categories
3. Preserve the original meaning and technical details
4. Format the cleaned text with proper bullet points and structure
5. Assign a confidence score (0.0-1.0) for your categorization
6. Generate a clarifying question if confidence is below 0.8
7. Return valid JSON format

Predefined categories: %s

The "Action Items" category is ONLY for discrete, assignable tasks with a
specific owner (e.g. "AES to", "JC needs to", "Team must") and a clear action
verb. General information, status updates, or observations without an assigned
task belong in the appropriate technical category instead.

Notes from the same meeting, call, or discussion stay together as one note,
even when they span multiple technical topics; choose the primary category.
Split into multiple notes only for clearly separate meetings or explicit
separators. Prefer 1-3 comprehensive notes per submission over many fragments.

Provide clarifying_question only when confidence is below 0.8, otherwise null.

Return format (JSON array):
[
  {
    "cleaned_text": "Properly formatted note with bullet points and structure",
    "category": "Primary Category Name",
    "confidence_score": 0.85,
    "clarifying_question": null
  }
]`

// Message is a single chat message in a classification request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is the wire payload sent to the chat-completions endpoint.
type Request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

// ComposeRequest builds the classification request for the given raw text and
// catalog. Identical input and catalog always produce identical content, so
// the response cache can key on it. The model name is supplied by the client
// at send time and excluded from the cache key.
func ComposeRequest(rawText string, catalog categories.Catalog, model string) Request {
	system := fmt.Sprintf(instructions, strings.Join(catalog.Labels(), ", "))

	return Request{
		Model: model,
		Messages: []Message{
			{Role: "system", Content: system},
			{Role: "user", Content: "Raw Notes:\n" + rawText},
		},
		Temperature: 0.3,
	}
}

// RequestKey derives the cache key for a raw text and catalog pair.
// Semantically equivalent input yields the same key regardless of model
// or sampling configuration.
func RequestKey(rawText string, catalog categories.Catalog) string {
	h := sha256.New()
	h.Write([]byte(rawText))
	h.Write([]byte{0})
	for _, label := range catalog.Labels() {
		h.Write([]byte(label))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
