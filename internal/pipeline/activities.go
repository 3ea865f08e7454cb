package pipeline

import (
	"context"

	"github.com/codexr/codexr/internal/domain"
)

// Activity names registered with the Temporal worker. Workflow code
// references activities by these names.
const (
	ActivityGenerateAnswer = "GenerateAnswer"
	ActivityEnrichLinks    = "EnrichLinks"
)

// Activities exposes the pipeline's two blocking stages as Temporal
// activities. Classification stays in workflow code since it is pure and
// deterministic; only generation and enrichment perform I/O.
type Activities struct {
	pipeline *Pipeline
}

// NewActivities wraps a pipeline for activity registration.
func NewActivities(p *Pipeline) *Activities {
	return &Activities{pipeline: p}
}

// GenerateInput carries one generation request into the activity.
type GenerateInput struct {
	Query    domain.Query    `json:"query"`
	Category domain.Category `json:"category"`
	TraceID  string          `json:"trace_id"`
}

// GenerateAnswer runs one generation attempt with the pipeline's fallback
// policy. It never returns an application error: the deterministic
// fallback is the terminal case, so a returned error only ever reflects
// infrastructure failure.
func (a *Activities) GenerateAnswer(ctx context.Context, in GenerateInput) (*domain.StructuredAnswer, error) {
	return a.pipeline.generate(ctx, in.Query, in.Category, in.TraceID), nil
}

// EnrichInput carries one enrichment request into the activity.
type EnrichInput struct {
	Query    string          `json:"query"`
	Category domain.Category `json:"category"`
}

// EnrichLinks performs the best-effort documentation search. By contract
// it never fails; an empty slice is a legal result.
func (a *Activities) EnrichLinks(ctx context.Context, in EnrichInput) ([]domain.DocLink, error) {
	return a.pipeline.searcher.Search(ctx, in.Query, in.Category, a.pipeline.cfg.MaxDocLinks), nil
}
