package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"

	"github.com/codexr/codexr/internal/domain"
	"github.com/codexr/codexr/internal/pipeline"
)

func testAnswer(category domain.Category) *domain.StructuredAnswer {
	return &domain.StructuredAnswer{
		Category: category,
		SubTasks: []domain.SubTask{{Title: "Set up the scene"}},
		Difficulty: domain.DifficultyEstimate{
			Level:         domain.DifficultyMedium,
			EstimatedTime: "1 hour",
		},
		Source: domain.SourceDeterministic,
	}
}

// newAnswerEnv wires a test environment with stubbed generation and
// enrichment activities registered under the production names.
func newAnswerEnv(
	t *testing.T,
	generate func(context.Context, pipeline.GenerateInput) (*domain.StructuredAnswer, error),
	enrich func(context.Context, pipeline.EnrichInput) ([]domain.DocLink, error),
) *testsuite.TestWorkflowEnvironment {
	t.Helper()

	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(AnswerWorkflow)
	env.RegisterActivityWithOptions(generate, activity.RegisterOptions{Name: pipeline.ActivityGenerateAnswer})
	env.RegisterActivityWithOptions(enrich, activity.RegisterOptions{Name: pipeline.ActivityEnrichLinks})
	return env
}

func TestAnswerWorkflow(t *testing.T) {
	var gotGenerate pipeline.GenerateInput
	var gotEnrich pipeline.EnrichInput

	env := newAnswerEnv(t,
		func(_ context.Context, in pipeline.GenerateInput) (*domain.StructuredAnswer, error) {
			gotGenerate = in
			return testAnswer(in.Category), nil
		},
		func(_ context.Context, in pipeline.EnrichInput) ([]domain.DocLink, error) {
			gotEnrich = in
			return []domain.DocLink{
				{Title: "XR Manual", URL: "https://docs.unity3d.com/Manual/XR.html", Source: "Unity Official"},
			}, nil
		},
	)

	env.ExecuteWorkflow(AnswerWorkflow, domain.Query{Text: "unity teleport setup"})

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var answer domain.StructuredAnswer
	require.NoError(t, env.GetWorkflowResult(&answer))

	assert.Equal(t, domain.CategoryUnity, gotGenerate.Category)
	assert.Equal(t, "unity teleport setup", gotGenerate.Query.Text)
	assert.NotEmpty(t, gotGenerate.TraceID)
	assert.Equal(t, domain.CategoryUnity, gotEnrich.Category)
	assert.Equal(t, "unity teleport setup", gotEnrich.Query)

	assert.Equal(t, domain.CategoryUnity, answer.Category)
	require.Len(t, answer.DocLinks, 1)
	assert.Equal(t, "https://docs.unity3d.com/Manual/XR.html", answer.DocLinks[0].URL)
}

func TestAnswerWorkflowEmptyQuery(t *testing.T) {
	env := newAnswerEnv(t,
		func(context.Context, pipeline.GenerateInput) (*domain.StructuredAnswer, error) {
			t.Error("generation must not run for an empty query")
			return nil, nil
		},
		func(context.Context, pipeline.EnrichInput) ([]domain.DocLink, error) {
			t.Error("enrichment must not run for an empty query")
			return nil, nil
		},
	)

	env.ExecuteWorkflow(AnswerWorkflow, domain.Query{Text: "   "})

	require.True(t, env.IsWorkflowCompleted())
	err := env.GetWorkflowError()
	require.Error(t, err)

	var appErr *temporal.ApplicationError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "InvalidQuery", appErr.Type())
	assert.True(t, appErr.NonRetryable())
}

func TestAnswerWorkflowContinuesWithoutLinks(t *testing.T) {
	env := newAnswerEnv(t,
		func(_ context.Context, in pipeline.GenerateInput) (*domain.StructuredAnswer, error) {
			return testAnswer(in.Category), nil
		},
		func(context.Context, pipeline.EnrichInput) ([]domain.DocLink, error) {
			return nil, errors.New("search exploded")
		},
	)

	env.ExecuteWorkflow(AnswerWorkflow, domain.Query{Text: "unreal replication"})

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var answer domain.StructuredAnswer
	require.NoError(t, env.GetWorkflowResult(&answer))
	assert.Equal(t, domain.CategoryUnreal, answer.Category)
	assert.Empty(t, answer.DocLinks)
}

func TestAnswerWorkflowGenerationInfraFailure(t *testing.T) {
	env := newAnswerEnv(t,
		func(context.Context, pipeline.GenerateInput) (*domain.StructuredAnswer, error) {
			return nil, errors.New("worker lost database")
		},
		func(context.Context, pipeline.EnrichInput) ([]domain.DocLink, error) {
			return nil, nil
		},
	)

	env.ExecuteWorkflow(AnswerWorkflow, domain.Query{Text: "unity question"})

	require.True(t, env.IsWorkflowCompleted())
	assert.Error(t, env.GetWorkflowError())
}
