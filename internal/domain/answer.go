package domain

import (
	"fmt"
	"net/url"
)

// Category labels a query with the platform it targets. The label selects
// prompt templates, canned answers, and search enhancement terms; it is
// never persisted.
type Category string

const (
	// CategoryUnity covers Unity engine and XR Interaction Toolkit questions.
	CategoryUnity Category = "unity"

	// CategoryUnreal covers Unreal Engine VR/AR questions.
	CategoryUnreal Category = "unreal"

	// CategoryShader covers shader and material authoring questions.
	CategoryShader Category = "shader"

	// CategoryGeneral is the fallback when no platform keywords match.
	CategoryGeneral Category = "general"
)

// Valid reports whether the category is a member of the closed set.
func (c Category) Valid() bool {
	switch c {
	case CategoryUnity, CategoryUnreal, CategoryShader, CategoryGeneral:
		return true
	}
	return false
}

// SnippetLanguage tags a code snippet with its language. The set is closed
// and mirrors the target platforms.
type SnippetLanguage string

const (
	LangCSharp SnippetLanguage = "csharp" // Unity
	LangCPP    SnippetLanguage = "cpp"    // Unreal
	LangHLSL   SnippetLanguage = "hlsl"   // shaders
	LangText   SnippetLanguage = "text"   // generic answers
)

// SnippetLanguageFor maps a category to the snippet language its answers
// are expected to carry.
func SnippetLanguageFor(c Category) SnippetLanguage {
	switch c {
	case CategoryUnity:
		return LangCSharp
	case CategoryUnreal:
		return LangCPP
	case CategoryShader:
		return LangHLSL
	default:
		return LangText
	}
}

// Difficulty is the estimated effort level of an answer.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether the difficulty is a member of the closed set.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// AnswerSource records which backend actually produced an answer. The
// orchestrator substitutes the deterministic backend on failure without
// surfacing an error, so this is the only way callers can distinguish a
// real model answer from a fallback.
type AnswerSource string

const (
	SourceDeterministic AnswerSource = "deterministic"
	SourceOllama        AnswerSource = "ollama"
	SourceHuggingFace   AnswerSource = "huggingface"
	SourceGemini        AnswerSource = "gemini"
)

// SubTask is one ordered step of an answer. Sequence order is meaningful;
// it is the execution order presented to the user.
type SubTask struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`
}

// CodeSnippet is a ready-to-paste code body with its language tag. The body
// is expected to be plausible for the tag but is not mechanically verified.
type CodeSnippet struct {
	Language SnippetLanguage `json:"language" validate:"required"`
	Code     string          `json:"code" validate:"required"`
}

// DocLink is a grounding documentation reference. Links are an unordered
// set de-duplicated by URL.
type DocLink struct {
	Title   string `json:"title"`
	URL     string `json:"url" validate:"required"`
	Snippet string `json:"snippet,omitempty"`
	Source  string `json:"source,omitempty"` // e.g. "Unity Official", "GitHub"
}

// DifficultyEstimate pairs an effort level with a free-text time range.
type DifficultyEstimate struct {
	Level         Difficulty `json:"level" validate:"required"`
	EstimatedTime string     `json:"estimated_time" validate:"required"`
}

// StructuredAnswer is the aggregate returned to callers. Every instance
// handed out by the pipeline has already passed Validate; enrichment only
// appends to the DocLink set and cannot invalidate it.
type StructuredAnswer struct {
	Category      Category           `json:"category" validate:"required"`
	SubTasks      []SubTask          `json:"subtasks" validate:"required,min=1,dive"`
	Snippet       *CodeSnippet       `json:"code_snippet,omitempty"`
	BestPractices []string           `json:"best_practices,omitempty"`
	DocLinks      []DocLink          `json:"documentation_links,omitempty"`
	Difficulty    DifficultyEstimate `json:"difficulty" validate:"required"`
	Source        AnswerSource       `json:"source,omitempty"`
}

// Validate checks the answer against the schema contract. It returns nil
// for a conforming answer or a SchemaError naming the first missing or
// malformed field. Pure function of the receiver.
func (a *StructuredAnswer) Validate() error {
	if a == nil {
		return &SchemaError{Field: "answer", Reason: "nil answer"}
	}
	if err := validate.Struct(a); err != nil {
		return schemaErrorFrom(err)
	}
	if !a.Category.Valid() {
		return &SchemaError{Field: "category", Reason: fmt.Sprintf("unknown category %q", a.Category)}
	}
	if !a.Difficulty.Level.Valid() {
		return &SchemaError{Field: "difficulty.level", Reason: fmt.Sprintf("unknown level %q", a.Difficulty.Level)}
	}
	for i, link := range a.DocLinks {
		if !wellFormedURL(link.URL) {
			return &SchemaError{
				Field:  fmt.Sprintf("documentation_links[%d].url", i),
				Reason: fmt.Sprintf("malformed URL %q", link.URL),
			}
		}
	}
	return nil
}

// MergeDocLinks unions links into the answer's DocLink set, keyed by URL.
// Existing entries win; malformed URLs are dropped. Appending never
// invalidates an already-valid answer.
func (a *StructuredAnswer) MergeDocLinks(links []DocLink) {
	seen := make(map[string]struct{}, len(a.DocLinks)+len(links))
	for _, l := range a.DocLinks {
		seen[l.URL] = struct{}{}
	}
	for _, l := range links {
		if _, dup := seen[l.URL]; dup || !wellFormedURL(l.URL) {
			continue
		}
		seen[l.URL] = struct{}{}
		a.DocLinks = append(a.DocLinks, l)
	}
}

// AddBestPractice appends a practice unless the exact text is already
// present. Best practices carry set semantics.
func (a *StructuredAnswer) AddBestPractice(text string) {
	for _, p := range a.BestPractices {
		if p == text {
			return
		}
	}
	a.BestPractices = append(a.BestPractices, text)
}

// wellFormedURL reports whether s parses as an absolute http(s) URL.
func wellFormedURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
