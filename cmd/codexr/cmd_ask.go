package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codexr/codexr/internal/configuration"
	"github.com/codexr/codexr/internal/domain"
	"github.com/codexr/codexr/internal/pipeline"
)

var (
	askBackend  string
	askMaxLinks int
	askJSON     bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask one AR/VR development question and print the structured answer",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askBackend, "backend", "", "backend to try first (deterministic|local|remote|gemini)")
	askCmd.Flags().IntVar(&askMaxLinks, "max-links", 0, "cap on enrichment documentation links")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "print the answer as JSON")
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := configuration.Load(configPath)
	if err != nil {
		return err
	}
	if askMaxLinks > 0 {
		cfg.MaxDocLinks = askMaxLinks
	}

	p, err := pipeline.New(cmd.Context(), cfg, newLogger())
	if err != nil {
		return err
	}

	answer, err := p.Answer(cmd.Context(), domain.Query{
		Text:             strings.Join(args, " "),
		PreferredBackend: askBackend,
	})
	if err != nil {
		return err
	}

	if askJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(answer)
	}

	printAnswer(answer)
	return nil
}

func printAnswer(a *domain.StructuredAnswer) {
	fmt.Printf("Category: %s (source: %s)\n", a.Category, a.Source)
	fmt.Printf("Difficulty: %s, estimated time %s\n\n", a.Difficulty.Level, a.Difficulty.EstimatedTime)

	fmt.Println("Steps:")
	for i, st := range a.SubTasks {
		fmt.Printf("  %d. %s\n", i+1, st.Title)
		if st.Description != "" {
			fmt.Printf("     %s\n", st.Description)
		}
	}

	if a.Snippet != nil {
		fmt.Printf("\nCode (%s):\n%s\n", a.Snippet.Language, a.Snippet.Code)
	}

	if len(a.BestPractices) > 0 {
		fmt.Println("\nBest practices:")
		for _, p := range a.BestPractices {
			fmt.Printf("  - %s\n", p)
		}
	}

	if len(a.DocLinks) > 0 {
		fmt.Println("\nDocumentation:")
		for _, l := range a.DocLinks {
			if l.Title != "" {
				fmt.Printf("  - %s: %s\n", l.Title, l.URL)
			} else {
				fmt.Printf("  - %s\n", l.URL)
			}
		}
	}
}
