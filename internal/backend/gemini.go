package backend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/codexr/codexr/internal/configuration"
	"github.com/codexr/codexr/internal/domain"
)

// NameGemini identifies the Gemini hosted model backend.
const NameGemini = "gemini"

// Gemini generates answers through the Gemini API. Unlike the HTTP-adapter
// backends it rides on the official SDK, so errors are classified from the
// SDK's APIError rather than a raw status line.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates the Gemini backend. Requires a non-empty API key.
func NewGemini(ctx context.Context, cfg configuration.GeminiConfig) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key is required", ErrBackendUnavailable)
	}
	if cfg.Model == "" {
		cfg.Model = configuration.DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Gemini{client: client, model: cfg.Model}, nil
}

// Name returns the canonical backend identifier.
func (g *Gemini) Name() string { return NameGemini }

// Generate sends the shared prompt contract to Gemini and parses the
// completion into a StructuredAnswer candidate.
func (g *Gemini) Generate(ctx context.Context, req *Request) (*Response, error) {
	reqCtx := ctx
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	model := req.Model
	if model == "" {
		model = g.model
	}

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}
	if req.Temperature > 0 {
		config.Temperature = genai.Ptr(float32(req.Temperature))
	}
	if req.MaxTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxTokens)
	}

	contents := []*genai.Content{
		genai.NewContentFromText(domain.RenderPrompt(req.Query, req.Category), genai.RoleUser),
	}

	start := time.Now()
	result, err := g.client.Models.GenerateContent(reqCtx, model, contents, config)
	latency := time.Since(start)
	if err != nil {
		return nil, classifyGeminiError(err)
	}

	content := result.Text()
	if content == "" {
		return nil, fmt.Errorf("%w from %s", ErrEmptyCompletion, NameGemini)
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

// classifyGeminiError maps SDK failures onto the backend error taxonomy.
func classifyGeminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &BackendError{
			Backend:    NameGemini,
			StatusCode: apiErr.Code,
			Message:    apiErr.Message,
			Type:       classifyStatus(apiErr.Code),
		}
	}
	return classifyTransportError(NameGemini, err)
}
