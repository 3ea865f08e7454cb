// codexr is the CLI for the AR/VR coding assistant pipeline.
//
// Usage:
//
//	codexr ask "How do I add teleport locomotion in Unity VR?" [--backend local] [--json]
//	codexr worker [--temporal-host localhost:7233]
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "codexr",
	Short: "AR/VR coding assistant: structured answers for Unity, Unreal, and shader questions",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config file")
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(workerCmd)
	rootCmd.Version = version
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
