package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.temporal.io/sdk/client"
	sdkworker "go.temporal.io/sdk/worker"

	"github.com/codexr/codexr/internal/configuration"
	"github.com/codexr/codexr/internal/pipeline"
	"github.com/codexr/codexr/internal/worker"
	"github.com/codexr/codexr/internal/workflow"
)

var temporalHost string

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run a Temporal worker serving the answer workflow",
	RunE:  runWorker,
}

func init() {
	workerCmd.Flags().StringVar(&temporalHost, "temporal-host", client.DefaultHostPort, "Temporal frontend host:port")
}

func runWorker(cmd *cobra.Command, _ []string) error {
	logger := newLogger()

	cfg, err := configuration.Load(configPath)
	if err != nil {
		return err
	}

	p, err := worker.InitializePipeline(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}

	c, err := client.Dial(client.Options{HostPort: temporalHost})
	if err != nil {
		return fmt.Errorf("failed to connect to temporal at %s: %w", temporalHost, err)
	}
	defer c.Close()

	w := sdkworker.New(c, workflow.TaskQueue, sdkworker.Options{})
	worker.RegisterAll(w, pipeline.NewActivities(p))

	logger.Info("worker starting", "task_queue", workflow.TaskQueue, "temporal_host", temporalHost)
	return w.Run(sdkworker.InterruptCh())
}
