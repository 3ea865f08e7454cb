package configuration

import "time"

// Default timeouts and limits.
const (
	// DefaultBackend is the generation backend used when neither the
	// config nor the query names one. The deterministic backend is also
	// the guaranteed fallback, so it doubles as the reliability floor.
	DefaultBackend = "deterministic"

	DefaultTimeout       = 30 * time.Second
	DefaultSearchTimeout = 5 * time.Second
	DefaultMaxDocLinks   = 5
)

// Default model backend settings.
const (
	DefaultOllamaEndpoint = "http://localhost:11434"
	DefaultOllamaModel    = "codellama:7b-code"

	DefaultHuggingFaceEndpoint = "https://api-inference.huggingface.co"
	DefaultHuggingFaceModel    = "bigcode/starcoder2-15b"
	DefaultHuggingFaceKeyEnv   = "HF_TOKEN"

	DefaultGeminiModel  = "gemini-2.0-flash"
	DefaultGeminiKeyEnv = "GEMINI_API_KEY"
)

// DefaultConfig returns a configuration suitable for running without any
// config file: deterministic backend, conservative timeouts, and the
// standard endpoints for the optional model backends.
func DefaultConfig() *Config {
	return &Config{
		Backend:       DefaultBackend,
		Timeout:       DefaultTimeout,
		SearchTimeout: DefaultSearchTimeout,
		MaxDocLinks:   DefaultMaxDocLinks,
		Ollama: OllamaConfig{
			Endpoint: DefaultOllamaEndpoint,
			Model:    DefaultOllamaModel,
		},
		HuggingFace: HuggingFaceConfig{
			Endpoint:  DefaultHuggingFaceEndpoint,
			Model:     DefaultHuggingFaceModel,
			APIKeyEnv: DefaultHuggingFaceKeyEnv,
		},
		Gemini: GeminiConfig{
			Model:     DefaultGeminiModel,
			APIKeyEnv: DefaultGeminiKeyEnv,
		},
	}
}
