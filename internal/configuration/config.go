// Package configuration defines the pipeline configuration surface.
// Configuration is supplied once at pipeline construction time; nothing is
// read from the environment after startup.
package configuration

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the full configuration for the answer pipeline: the default
// backend choice, per-backend settings, timeouts, and the enrichment cap.
type Config struct {
	// Backend names the default generation backend when a query carries
	// no preference: "deterministic", "local"/"ollama",
	// "remote"/"huggingface", or "gemini".
	Backend string `yaml:"backend" json:"backend"`

	// Timeout bounds each model backend call.
	Timeout time.Duration `yaml:"timeout_seconds" json:"timeout_seconds"`

	// SearchTimeout bounds the single search attempt.
	SearchTimeout time.Duration `yaml:"search_timeout_seconds" json:"search_timeout_seconds"`

	// MaxDocLinks caps the enrichment merge.
	MaxDocLinks int `yaml:"max_doc_links" json:"max_doc_links"`

	// Ollama configures the locally hosted model backend.
	Ollama OllamaConfig `yaml:"ollama" json:"ollama"`

	// HuggingFace configures the remotely hosted model backend.
	HuggingFace HuggingFaceConfig `yaml:"huggingface" json:"huggingface"`

	// Gemini configures the Gemini hosted model backend.
	Gemini GeminiConfig `yaml:"gemini" json:"gemini"`

	// HTTPClient is shared by HTTP-based backends and the enricher.
	// Nil means a default client; per-call timeouts still apply.
	HTTPClient *http.Client `yaml:"-" json:"-"`
}

// OllamaConfig holds settings for the local Ollama serving process.
type OllamaConfig struct {
	Endpoint string `yaml:"endpoint" json:"endpoint"`
	Model    string `yaml:"model" json:"model"`
}

// HuggingFaceConfig holds settings for the Hugging Face inference API.
// The credential is read from APIKeyEnv at load time and never serialized.
type HuggingFaceConfig struct {
	Endpoint  string `yaml:"endpoint" json:"endpoint"`
	Model     string `yaml:"model" json:"model"`
	APIKey    string `yaml:"-" json:"-"`
	APIKeyEnv string `yaml:"api_key_env" json:"api_key_env"`
}

// GeminiConfig holds settings for the Gemini API backend.
type GeminiConfig struct {
	Model     string `yaml:"model" json:"model"`
	APIKey    string `yaml:"-" json:"-"`
	APIKeyEnv string `yaml:"api_key_env" json:"api_key_env"`
}

// Load reads a YAML config file, fills unset fields from defaults, and
// resolves API-key environment variables. An empty path returns defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		var file fileConfig
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		file.apply(cfg)
	}

	resolveAPIKeys(cfg)
	return cfg, nil
}

// fileConfig mirrors Config with second-granularity integer timeouts, the
// shape the YAML file uses.
type fileConfig struct {
	Backend        string            `yaml:"backend"`
	TimeoutSeconds int               `yaml:"timeout_seconds"`
	SearchSeconds  int               `yaml:"search_timeout_seconds"`
	MaxDocLinks    int               `yaml:"max_doc_links"`
	Ollama         OllamaConfig      `yaml:"ollama"`
	HuggingFace    HuggingFaceConfig `yaml:"huggingface"`
	Gemini         GeminiConfig      `yaml:"gemini"`
}

// apply overlays non-zero file values onto cfg.
func (f *fileConfig) apply(cfg *Config) {
	if f.Backend != "" {
		cfg.Backend = f.Backend
	}
	if f.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(f.TimeoutSeconds) * time.Second
	}
	if f.SearchSeconds > 0 {
		cfg.SearchTimeout = time.Duration(f.SearchSeconds) * time.Second
	}
	if f.MaxDocLinks > 0 {
		cfg.MaxDocLinks = f.MaxDocLinks
	}
	if f.Ollama.Endpoint != "" {
		cfg.Ollama.Endpoint = f.Ollama.Endpoint
	}
	if f.Ollama.Model != "" {
		cfg.Ollama.Model = f.Ollama.Model
	}
	if f.HuggingFace.Endpoint != "" {
		cfg.HuggingFace.Endpoint = f.HuggingFace.Endpoint
	}
	if f.HuggingFace.Model != "" {
		cfg.HuggingFace.Model = f.HuggingFace.Model
	}
	if f.HuggingFace.APIKeyEnv != "" {
		cfg.HuggingFace.APIKeyEnv = f.HuggingFace.APIKeyEnv
	}
	if f.Gemini.Model != "" {
		cfg.Gemini.Model = f.Gemini.Model
	}
	if f.Gemini.APIKeyEnv != "" {
		cfg.Gemini.APIKeyEnv = f.Gemini.APIKeyEnv
	}
}

// resolveAPIKeys reads credentials from the configured environment
// variables. Missing variables leave the key empty; the backends report
// auth failures at call time, which the orchestrator absorbs via fallback.
func resolveAPIKeys(cfg *Config) {
	if cfg.HuggingFace.APIKey == "" && cfg.HuggingFace.APIKeyEnv != "" {
		cfg.HuggingFace.APIKey = os.Getenv(cfg.HuggingFace.APIKeyEnv)
	}
	if cfg.Gemini.APIKey == "" && cfg.Gemini.APIKeyEnv != "" {
		cfg.Gemini.APIKey = os.Getenv(cfg.Gemini.APIKeyEnv)
	}
}
