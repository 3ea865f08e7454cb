// Package backend routes answer generation across interchangeable backends:
// a deterministic canned-answer backend, a locally hosted Ollama model, a
// Hugging Face hosted model, and a Gemini hosted model. All backends share
// one normalized request/response shape and one prompt contract so their
// raw output parses uniformly into a StructuredAnswer candidate.
package backend

import (
	"context"
	"net/http"
	"time"

	"github.com/codexr/codexr/internal/domain"
)

// Request is the normalized generation request handed to every backend.
type Request struct {
	// Query is the raw question text.
	Query string `json:"query"`

	// Category selects the prompt template and canned scenarios.
	Category domain.Category `json:"category"`

	// Model overrides the backend's configured model when non-empty.
	Model string `json:"model,omitempty"`

	// Generation parameters control model behavior.
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`

	// Timeout bounds the blocking call; zero means the caller's context
	// deadline applies alone.
	Timeout time.Duration `json:"timeout"`

	// TraceID correlates log lines across the request.
	TraceID string `json:"trace_id,omitempty"`
}

// Response is the normalized backend output before schema validation.
type Response struct {
	// Answer is the parsed candidate; it may still fail validation.
	Answer *domain.StructuredAnswer `json:"answer"`

	// Model is the model that produced the completion, when known.
	Model string `json:"model,omitempty"`

	// LatencyMs is the wall-clock duration of the backend call.
	LatencyMs int64 `json:"latency_ms"`

	// RawBody preserves the unparsed completion for debugging.
	RawBody []byte `json:"-"`
}

// Backend is one interchangeable answer-generation strategy. Generate
// either returns a candidate payload, which may still fail schema
// validation, or an error wrapping ErrBackendUnavailable or
// ErrBackendTimeout.
type Backend interface {
	// Name returns the canonical backend identifier used for routing.
	Name() string

	// Generate produces a structured answer candidate for the request.
	Generate(ctx context.Context, req *Request) (*Response, error)
}

// adapter abstracts provider-specific HTTP communication. HTTP-based
// backends implement Build/Parse and are executed by httpBackend.
type adapter interface {
	// Build constructs the provider-specific HTTP request.
	Build(ctx context.Context, req *Request) (*http.Request, error)

	// Parse extracts the raw completion text from the HTTP response.
	Parse(httpResp *http.Response) (string, string, error)

	// Name returns the canonical backend identifier.
	Name() string
}

// httpBackend executes an adapter over a shared HTTP client with
// per-request timeout, latency measurement, and output parsing.
type httpBackend struct {
	client  *http.Client
	adapter adapter
}

// newHTTPBackend wraps an adapter into a Backend. A nil client uses a
// dedicated default client; the adapter's per-request timeout still
// applies.
func newHTTPBackend(client *http.Client, a adapter) Backend {
	if client == nil {
		client = &http.Client{}
	}
	return &httpBackend{client: client, adapter: a}
}

func (b *httpBackend) Name() string { return b.adapter.Name() }

// Generate performs the HTTP round trip and parses the completion into a
// StructuredAnswer candidate.
func (b *httpBackend) Generate(ctx context.Context, req *Request) (*Response, error) {
	reqCtx := ctx
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	httpReq, err := b.adapter.Build(reqCtx, req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	httpResp, err := b.client.Do(httpReq)
	latency := time.Since(start)
	if err != nil {
		return nil, classifyTransportError(b.adapter.Name(), err)
	}
	defer func() {
		_ = httpResp.Body.Close()
	}()

	content, model, err := b.adapter.Parse(httpResp)
	if err != nil {
		return nil, err
	}

	answer, err := ParseAnswer(content, req.Category)
	if err != nil {
		return nil, err
	}

	return &Response{
		Answer:    answer,
		Model:     model,
		LatencyMs: latency.Milliseconds(),
		RawBody:   []byte(content),
	}, nil
}
