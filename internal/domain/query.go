package domain

import (
	"fmt"
	"strings"
)

// Query is the immutable per-request input: the question text plus an
// optional user-selected backend preference. Created per request and
// discarded after the response; nothing is retained across requests.
type Query struct {
	// Text is the natural-language development question.
	Text string `json:"text"`

	// PreferredBackend optionally names the backend to try first.
	// Recognized values: "deterministic", "local", "remote", "ollama",
	// "huggingface", "gemini". Empty selects the configured default.
	PreferredBackend string `json:"preferred_backend,omitempty"`
}

// Validate rejects queries no backend can meaningfully act on. An empty or
// whitespace-only question is the only condition surfaced to callers as an
// error.
func (q Query) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("%w: empty query text", ErrInvalidQuery)
	}
	return nil
}
