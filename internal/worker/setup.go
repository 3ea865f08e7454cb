package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/codexr/codexr/internal/configuration"
	"github.com/codexr/codexr/internal/pipeline"
)

// InitializePipeline builds the answer pipeline a worker's activities wrap.
// Returns the pipeline for dependency injection rather than setting global
// state; call during worker startup.
func InitializePipeline(ctx context.Context, cfg *configuration.Config, logger *slog.Logger) (*pipeline.Pipeline, error) {
	if cfg == nil {
		cfg = configuration.DefaultConfig()
	}

	p, err := pipeline.New(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize pipeline: %w", err)
	}
	return p, nil
}
