// Package workflow provides a durable execution surface for the answer
// pipeline. The workflow mirrors the in-process orchestrator: classify in
// deterministic workflow code, then generation and enrichment as parallel
// activities joined before assembly.
package workflow

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/codexr/codexr/internal/classify"
	"github.com/codexr/codexr/internal/domain"
	"github.com/codexr/codexr/internal/pipeline"
)

// TaskQueue is the Temporal task queue answer workers poll.
const TaskQueue = "codexr-answers"

// Activity bounds. Generation gets a single attempt; its internal fallback
// to the deterministic backend is the retry policy.
const (
	generateTimeout = 60 * time.Second
	enrichTimeout   = 10 * time.Second
)

// AnswerWorkflow turns one query into a validated, enriched structured
// answer. Empty queries fail with a non-retryable InvalidQuery error, the
// only caller-visible failure; everything else terminates in the
// deterministic fallback inside the generation activity.
func AnswerWorkflow(ctx workflow.Context, query domain.Query) (*domain.StructuredAnswer, error) {
	const currentVersion = 1
	_ = workflow.GetVersion(ctx, "answer.v", workflow.DefaultVersion, currentVersion)

	if err := query.Validate(); err != nil {
		return nil, temporal.NewNonRetryableApplicationError(
			"invalid query",
			"InvalidQuery",
			err,
		)
	}

	// Classification is pure keyword matching, safe in workflow code.
	category := classify.New().Classify(query.Text)
	traceID := workflow.GetInfo(ctx).WorkflowExecution.RunID

	genCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: generateTimeout,
		RetryPolicy:         &temporal.RetryPolicy{MaximumAttempts: 1},
	})
	genFut := workflow.ExecuteActivity(genCtx, pipeline.ActivityGenerateAnswer, pipeline.GenerateInput{
		Query:    query,
		Category: category,
		TraceID:  traceID,
	})

	enrichCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: enrichTimeout,
		RetryPolicy:         &temporal.RetryPolicy{MaximumAttempts: 1},
	})
	enrichFut := workflow.ExecuteActivity(enrichCtx, pipeline.ActivityEnrichLinks, pipeline.EnrichInput{
		Query:    query.Text,
		Category: category,
	})

	var answer domain.StructuredAnswer
	if err := genFut.Get(ctx, &answer); err != nil {
		// Only infrastructure failure reaches here; the activity's own
		// fallback absorbs backend and validation errors.
		return nil, err
	}

	var links []domain.DocLink
	if err := enrichFut.Get(ctx, &links); err != nil {
		workflow.GetLogger(ctx).Warn("enrichment activity failed, continuing without links", "error", err)
	}

	answer.MergeDocLinks(links)
	return &answer, nil
}
