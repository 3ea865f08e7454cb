// Package pipeline composes classification, generation, validation,
// fallback, and enrichment into the single entry point external callers
// invoke. Each request flows one way and builds its own answer; no state
// survives between requests.
package pipeline

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/codexr/codexr/internal/backend"
	"github.com/codexr/codexr/internal/classify"
	"github.com/codexr/codexr/internal/configuration"
	"github.com/codexr/codexr/internal/domain"
	"github.com/codexr/codexr/internal/enrich"
)

// Searcher is the enrichment dependency. Implementations never return an
// error; failures degrade to an empty or fallback link list.
type Searcher interface {
	Search(ctx context.Context, query string, category domain.Category, max int) []domain.DocLink
}

// Pipeline is the query-to-structured-answer orchestrator. Construct with
// New; the zero value is not usable.
type Pipeline struct {
	classifier *classify.Classifier
	router     backend.Router
	searcher   Searcher
	cfg        *configuration.Config
	logger     *slog.Logger
}

// New wires a pipeline from configuration. The background context is only
// used for backend client construction, not for requests.
func New(ctx context.Context, cfg *configuration.Config, logger *slog.Logger) (*Pipeline, error) {
	if cfg == nil {
		cfg = configuration.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	router, err := backend.NewRouter(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		classifier: classify.New(),
		router:     router,
		searcher:   enrich.New(cfg, logger),
		cfg:        cfg,
		logger:     logger,
	}, nil
}

// NewWithDeps wires a pipeline from explicit dependencies, used by tests
// to substitute backends and searchers.
func NewWithDeps(cfg *configuration.Config, router backend.Router, searcher Searcher, logger *slog.Logger) *Pipeline {
	if cfg == nil {
		cfg = configuration.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		classifier: classify.New(),
		router:     router,
		searcher:   searcher,
		cfg:        cfg,
		logger:     logger,
	}
}

// Answer runs the full pipeline: classify, generate with validation and a
// single fallback hop, enrich, assemble. Generation and enrichment run
// concurrently and are joined before assembly; each is bounded by its own
// timeout. The only error ever returned is ErrInvalidQuery for empty
// input — once classification has succeeded the worst case is a
// deterministic, generic-but-valid answer.
func (p *Pipeline) Answer(ctx context.Context, query domain.Query) (*domain.StructuredAnswer, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	traceID := uuid.New().String()
	category := p.classifier.Classify(query.Text)
	p.logger.Info("query classified",
		"trace_id", traceID, "category", category, "preferred_backend", query.PreferredBackend)

	var (
		answer *domain.StructuredAnswer
		links  []domain.DocLink
	)

	// Enrichment depends only on the query text, never on the generated
	// answer, so the two calls are independent. Neither branch returns an
	// error: generation terminates in the deterministic fallback and the
	// searcher absorbs its own failures.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		answer = p.generate(gctx, query, category, traceID)
		return nil
	})
	g.Go(func() error {
		links = p.searcher.Search(gctx, query.Text, category, p.cfg.MaxDocLinks)
		return nil
	})
	_ = g.Wait()

	answer.MergeDocLinks(links)
	return answer, nil
}

// generate attempts the selected backend once and falls back to the
// deterministic backend when the attempt fails or its output does not
// validate. At most one non-deterministic attempt is made per request;
// the deterministic payload is defined to always validate, so this always
// returns a valid answer.
func (p *Pipeline) generate(ctx context.Context, query domain.Query, category domain.Category, traceID string) *domain.StructuredAnswer {
	req := &backend.Request{
		Query:    query.Text,
		Category: category,
		Timeout:  p.cfg.Timeout,
		TraceID:  traceID,
	}

	name := query.PreferredBackend
	if name == "" {
		name = p.cfg.Backend
	}

	if answer := p.tryBackend(ctx, name, req, traceID); answer != nil {
		return answer
	}

	fb := p.router.Fallback()
	resp, _ := fb.Generate(ctx, req)
	p.logger.Info("served deterministic fallback", "trace_id", traceID, "category", category)
	return resp.Answer
}

// tryBackend runs one generation attempt and validates the candidate.
// Returns nil when the attempt failed in any way; the cause is logged,
// never surfaced.
func (p *Pipeline) tryBackend(ctx context.Context, name string, req *backend.Request, traceID string) *domain.StructuredAnswer {
	b, err := p.router.Pick(name)
	if err != nil {
		p.logger.Warn("backend selection failed, falling back",
			"trace_id", traceID, "backend", name, "error", err)
		return nil
	}

	resp, err := b.Generate(ctx, req)
	if err != nil {
		p.logger.Warn("backend generation failed, falling back",
			"trace_id", traceID, "backend", b.Name(), "error", err)
		return nil
	}

	if err := resp.Answer.Validate(); err != nil {
		p.logger.Warn("backend answer failed validation, falling back",
			"trace_id", traceID, "backend", b.Name(), "error", err)
		return nil
	}

	answer := resp.Answer
	answer.Source = sourceFor(b.Name())
	p.logger.Info("answer generated",
		"trace_id", traceID, "backend", b.Name(), "model", resp.Model, "latency_ms", resp.LatencyMs)
	return answer
}

// sourceFor maps a backend name to the provenance marker carried on the
// answer.
func sourceFor(name string) domain.AnswerSource {
	switch name {
	case backend.NameOllama:
		return domain.SourceOllama
	case backend.NameHuggingFace:
		return domain.SourceHuggingFace
	case backend.NameGemini:
		return domain.SourceGemini
	default:
		return domain.SourceDeterministic
	}
}
