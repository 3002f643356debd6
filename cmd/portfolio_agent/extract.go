package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio-builder/internal/llm"
	"github.com/jonathan/portfolio-builder/internal/observability"
	"github.com/jonathan/portfolio-builder/internal/pipeline"
	"github.com/jonathan/portfolio-builder/internal/prompts"
)

var (
	extractResume  string
	extractQuery   string
	extractLength  string
	extractOut     string
	extractAPIKey  string
	extractModel   string
	extractVerbose bool
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract portfolio data from a resume PDF",
	Long:  `Run the extraction pipeline once against a local resume PDF and print the normalized portfolio JSON.`,
	RunE:  runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractResume, "resume", "r", "", "Path to resume PDF (required)")
	extractCmd.Flags().StringVarP(&extractQuery, "query", "q", "", "Optional free-text guidance for the extraction")
	extractCmd.Flags().StringVarP(&extractLength, "length", "l", "medium", "Description length: short, medium, or descriptive")
	extractCmd.Flags().StringVarP(&extractOut, "out", "o", "", "Write portfolio JSON to this file instead of stdout")
	extractCmd.Flags().StringVar(&extractAPIKey, "api-key", "", "Gemini API key (defaults to GEMINI_API_KEY env var)")
	extractCmd.Flags().StringVar(&extractModel, "model", "", "Model override for the standard tier")
	extractCmd.Flags().BoolVarP(&extractVerbose, "verbose", "v", false, "Print an extraction summary")
	_ = extractCmd.MarkFlagRequired("resume")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(_ *cobra.Command, _ []string) error {
	apiKey := extractAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("an API key is required (--api-key or GEMINI_API_KEY)")
	}

	content, err := os.ReadFile(extractResume)
	if err != nil {
		return fmt.Errorf("failed to read resume file: %w", err)
	}

	ctx := context.Background()
	llmConfig := llm.DefaultConfig()
	if extractModel != "" {
		llmConfig = llmConfig.WithModel(llm.TierStandard, extractModel)
	}
	client, err := llm.NewClient(ctx, llmConfig, apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	opts := pipeline.RunOptions{
		FileBytes: content,
		Query:     extractQuery,
		Length:    prompts.Length(extractLength),
		Client:    client,
	}
	if extractVerbose {
		opts.OnProgress = func(event pipeline.ProgressEvent) {
			fmt.Fprintf(os.Stderr, "[%s] %s\n", event.State, event.Message)
		}
	}

	result, err := pipeline.Run(ctx, opts)
	if err != nil {
		return err
	}

	if extractVerbose {
		printer := observability.NewPrinter(os.Stderr)
		printer.PrintPortfolio(&result.Portfolio)
	}

	out, err := json.MarshalIndent(result.Portfolio, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal portfolio: %w", err)
	}

	if extractOut != "" {
		if err := os.WriteFile(extractOut, out, 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Printf("Wrote portfolio to %s\n", extractOut)
		return nil
	}

	fmt.Println(string(out))
	return nil
}
