package backend

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/codexr/codexr/internal/domain"
)

// answerWire is the JSON shape model backends are prompted to emit.
// Unknown extra fields are ignored for forward compatibility.
type answerWire struct {
	SubTasks      []string `json:"subtasks"`
	CodeSnippet   string   `json:"code_snippet"`
	BestPractices []string `json:"best_practices"`
	Difficulty    string   `json:"difficulty"`
	DocLinks      []string `json:"documentation_links"`
	EstimatedTime string   `json:"estimated_time"`
}

// ParseAnswer extracts a StructuredAnswer candidate from raw model output.
// Attempts, in order: direct unmarshal, fenced ```json block extraction,
// then the first-brace-to-last-brace window. The returned candidate may
// still fail schema validation; returns ErrUnparsableAnswer when no JSON
// object can be recovered at all.
func ParseAnswer(content string, category domain.Category) (*domain.StructuredAnswer, error) {
	for _, candidate := range jsonCandidates(content) {
		var wire answerWire
		if err := json.Unmarshal([]byte(candidate), &wire); err != nil {
			continue
		}
		return wire.toAnswer(category), nil
	}
	return nil, fmt.Errorf("%w: no JSON object found in %d bytes of output",
		ErrUnparsableAnswer, len(content))
}

// jsonCandidates yields successive slices of content likely to hold the
// answer object.
func jsonCandidates(content string) []string {
	var candidates []string

	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "{") {
		candidates = append(candidates, trimmed)
	}

	if fenced := extractFencedJSON(trimmed); fenced != "" {
		candidates = append(candidates, fenced)
	}

	// Widest window: first '{' through last '}'.
	if start, end := strings.Index(trimmed, "{"), strings.LastIndex(trimmed, "}"); start >= 0 && end > start {
		candidates = append(candidates, trimmed[start:end+1])
	}

	return candidates
}

// extractFencedJSON returns the body of the first ```json fence, or "".
func extractFencedJSON(content string) string {
	const fence = "```"
	start := strings.Index(content, fence)
	if start < 0 {
		return ""
	}
	body := content[start+len(fence):]
	if after, ok := strings.CutPrefix(body, "json"); ok {
		body = after
	}
	end := strings.Index(body, fence)
	if end < 0 {
		return ""
	}
	return strings.TrimSpace(body[:end])
}

// toAnswer coerces the wire shape into the domain aggregate. Malformed doc
// links are dropped rather than failing the whole candidate; schema
// validation decides acceptance afterwards.
func (w *answerWire) toAnswer(category domain.Category) *domain.StructuredAnswer {
	answer := &domain.StructuredAnswer{
		Category: category,
		Difficulty: domain.DifficultyEstimate{
			Level:         coerceDifficulty(w.Difficulty),
			EstimatedTime: w.EstimatedTime,
		},
	}

	for _, step := range w.SubTasks {
		if strings.TrimSpace(step) == "" {
			continue
		}
		answer.SubTasks = append(answer.SubTasks, domain.SubTask{Title: step})
	}

	if strings.TrimSpace(w.CodeSnippet) != "" {
		answer.Snippet = &domain.CodeSnippet{
			Language: domain.SnippetLanguageFor(category),
			Code:     w.CodeSnippet,
		}
	}

	for _, practice := range w.BestPractices {
		if strings.TrimSpace(practice) != "" {
			answer.AddBestPractice(practice)
		}
	}

	links := make([]domain.DocLink, 0, len(w.DocLinks))
	for _, raw := range w.DocLinks {
		links = append(links, domain.DocLink{URL: raw, Source: "Model"})
	}
	answer.MergeDocLinks(links)

	return answer
}

// coerceDifficulty normalizes model-reported difficulty case-insensitively.
// Unknown values pass through lower-cased and fail validation downstream.
func coerceDifficulty(raw string) domain.Difficulty {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "easy":
		return domain.DifficultyEasy
	case "medium", "moderate":
		return domain.DifficultyMedium
	case "hard", "difficult":
		return domain.DifficultyHard
	default:
		return domain.Difficulty(strings.ToLower(strings.TrimSpace(raw)))
	}
}
