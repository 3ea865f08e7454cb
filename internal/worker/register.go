// Package worker exposes helpers to register the answer workflow and its
// activities with a Temporal worker.
package worker

import (
	"go.temporal.io/sdk/activity"
	sdkworker "go.temporal.io/sdk/worker"

	"github.com/codexr/codexr/internal/pipeline"
	"github.com/codexr/codexr/internal/workflow"
)

// RegisterAll registers the answer workflow and activities. Must be called
// once during worker initialization before the worker starts; registration
// is not thread-safe.
func RegisterAll(w sdkworker.Worker, acts *pipeline.Activities) {
	w.RegisterWorkflow(workflow.AnswerWorkflow)

	w.RegisterActivityWithOptions(acts.GenerateAnswer,
		activity.RegisterOptions{Name: pipeline.ActivityGenerateAnswer})
	w.RegisterActivityWithOptions(acts.EnrichLinks,
		activity.RegisterOptions{Name: pipeline.ActivityEnrichLinks})
}
