package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/codexr/codexr/internal/configuration"
	"github.com/codexr/codexr/internal/domain"
)

// NameOllama identifies the locally hosted model backend.
const NameOllama = "ollama"

// ollamaAdapter talks to a local Ollama serving process via its
// /api/generate endpoint with non-streaming JSON completions.
type ollamaAdapter struct {
	config configuration.OllamaConfig
}

// NewOllama creates the local-model backend. Empty endpoint and model fall
// back to the standard local Ollama defaults.
func NewOllama(client *http.Client, cfg configuration.OllamaConfig) Backend {
	if cfg.Endpoint == "" {
		cfg.Endpoint = configuration.DefaultOllamaEndpoint
	}
	if cfg.Model == "" {
		cfg.Model = configuration.DefaultOllamaModel
	}
	return newHTTPBackend(client, &ollamaAdapter{config: cfg})
}

func (a *ollamaAdapter) Name() string { return NameOllama }

// Build constructs the Ollama generate request with the shared prompt
// contract.
func (a *ollamaAdapter) Build(ctx context.Context, req *Request) (*http.Request, error) {
	model := req.Model
	if model == "" {
		model = a.config.Model
	}

	body := map[string]any{
		"model":  model,
		"prompt": domain.RenderPrompt(req.Query, req.Category),
		"stream": false,
		"format": "json",
	}
	if req.Temperature > 0 || req.MaxTokens > 0 {
		options := map[string]any{}
		if req.Temperature > 0 {
			options["temperature"] = req.Temperature
		}
		if req.MaxTokens > 0 {
			options["num_predict"] = req.MaxTokens
		}
		body["options"] = options
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/api/generate", a.config.Endpoint)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	return httpReq, nil
}

// Parse extracts the completion text from Ollama's response envelope.
func (a *ollamaAdapter) Parse(httpResp *http.Response) (string, string, error) {
	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", "", fmt.Errorf("failed to read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return "", "", &BackendError{
			Backend:    NameOllama,
			StatusCode: httpResp.StatusCode,
			Message:    string(body),
			Type:       classifyStatus(httpResp.StatusCode),
		}
	}

	var resp struct {
		Model    string `json:"model"`
		Response string `json:"response"`
		Done     bool   `json:"done"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", "", &BackendError{
			Backend: NameOllama,
			Message: fmt.Sprintf("failed to parse response: %v", err),
			Type:    ErrorTypeInvalidResponse,
		}
	}
	if resp.Response == "" {
		return "", "", fmt.Errorf("%w from %s", ErrEmptyCompletion, NameOllama)
	}

	return resp.Response, resp.Model, nil
}
