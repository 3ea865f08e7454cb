package backend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/codexr/codexr/internal/configuration"
)

// Backend name aliases accepted on the inbound contract. Callers select
// among {deterministic, local, remote}; the registry maps the generic
// names onto concrete backends.
const (
	AliasLocal  = "local"  // resolves to ollama
	AliasRemote = "remote" // resolves to huggingface
)

// Router holds the registered backends and selects one by name. It
// performs no special-casing beyond selection; the fallback policy lives
// in the orchestrator.
type Router interface {
	// Pick returns the backend registered under name, resolving the
	// generic local/remote aliases. Unknown names fail with
	// ErrUnknownBackend.
	Pick(name string) (Backend, error)

	// Fallback returns the deterministic backend, the guaranteed
	// reliability floor.
	Fallback() Backend
}

// NewRouter builds the backend registry from configuration. The
// deterministic backend is always registered; Ollama and Hugging Face are
// always constructible (they fail at call time when unreachable); Gemini
// is registered only when a credential is configured, since its SDK client
// cannot be built without one.
func NewRouter(ctx context.Context, cfg *configuration.Config, logger *slog.Logger) (Router, error) {
	if logger == nil {
		logger = slog.Default()
	}

	backends := map[string]Backend{
		NameDeterministic: NewDeterministic(),
		NameOllama:        NewOllama(cfg.HTTPClient, cfg.Ollama),
		NameHuggingFace:   NewHuggingFace(cfg.HTTPClient, cfg.HuggingFace),
	}

	if cfg.Gemini.APIKey != "" {
		gemini, err := NewGemini(ctx, cfg.Gemini)
		if err != nil {
			// A bad credential must not take down the pipeline; the
			// router simply leaves gemini unregistered.
			logger.Warn("gemini backend not registered", "error", err)
		} else {
			backends[NameGemini] = gemini
		}
	}

	return &router{backends: backends}, nil
}

// router implements Router over a name-keyed registry.
type router struct {
	backends map[string]Backend
}

// Pick selects the backend for the given name. Resolves generic aliases
// before the registry lookup.
func (r *router) Pick(name string) (Backend, error) {
	switch name {
	case AliasLocal:
		name = NameOllama
	case AliasRemote:
		name = NameHuggingFace
	}

	b, ok := r.backends[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, name)
	}
	return b, nil
}

// Fallback returns the deterministic backend.
func (r *router) Fallback() Backend {
	return r.backends[NameDeterministic]
}
