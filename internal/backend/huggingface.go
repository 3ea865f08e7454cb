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

// NameHuggingFace identifies the remotely hosted model backend.
const NameHuggingFace = "huggingface"

// huggingFaceAdapter talks to the Hugging Face serverless inference API,
// authenticated with a bearer token. An empty token is allowed; the API
// answers with 401 and the orchestrator falls back.
type huggingFaceAdapter struct {
	config configuration.HuggingFaceConfig
}

// NewHuggingFace creates the remote-model backend with the production
// inference endpoint as default.
func NewHuggingFace(client *http.Client, cfg configuration.HuggingFaceConfig) Backend {
	if cfg.Endpoint == "" {
		cfg.Endpoint = configuration.DefaultHuggingFaceEndpoint
	}
	if cfg.Model == "" {
		cfg.Model = configuration.DefaultHuggingFaceModel
	}
	return newHTTPBackend(client, &huggingFaceAdapter{config: cfg})
}

func (a *huggingFaceAdapter) Name() string { return NameHuggingFace }

// Build constructs the inference request for the configured model.
func (a *huggingFaceAdapter) Build(ctx context.Context, req *Request) (*http.Request, error) {
	model := req.Model
	if model == "" {
		model = a.config.Model
	}

	parameters := map[string]any{
		"return_full_text": false,
	}
	if req.MaxTokens > 0 {
		parameters["max_new_tokens"] = req.MaxTokens
	}
	if req.Temperature > 0 {
		parameters["temperature"] = req.Temperature
	}

	body := map[string]any{
		"inputs":     domain.RenderPrompt(req.Query, req.Category),
		"parameters": parameters,
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s", a.config.Endpoint, model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if a.config.APIKey != "" {
		httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", a.config.APIKey))
	}

	return httpReq, nil
}

// Parse extracts the generated text from the inference API response.
func (a *huggingFaceAdapter) Parse(httpResp *http.Response) (string, string, error) {
	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", "", fmt.Errorf("failed to read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return "", "", parseHuggingFaceError(httpResp.StatusCode, body)
	}

	var resp []struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", "", &BackendError{
			Backend: NameHuggingFace,
			Message: fmt.Sprintf("failed to parse response: %v", err),
			Type:    ErrorTypeInvalidResponse,
		}
	}
	if len(resp) == 0 || resp[0].GeneratedText == "" {
		return "", "", fmt.Errorf("%w from %s", ErrEmptyCompletion, NameHuggingFace)
	}

	return resp[0].GeneratedText, a.config.Model, nil
}

// parseHuggingFaceError converts an error response into a BackendError,
// preferring the API's own error message when present.
func parseHuggingFaceError(statusCode int, body []byte) error {
	var errResp struct {
		Error string `json:"error"`
	}
	message := string(body)
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		message = errResp.Error
	}

	return &BackendError{
		Backend:    NameHuggingFace,
		StatusCode: statusCode,
		Message:    message,
		Type:       classifyStatus(statusCode),
	}
}
