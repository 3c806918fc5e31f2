package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-query/internal/classify"
	"github.com/jonathan/talent-query/internal/llm"
	"github.com/jonathan/talent-query/internal/orchestrator"
	"github.com/jonathan/talent-query/internal/types"
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Answer a question end to end: classify, generate, structure",
	Long:  "Classify the question, generate an answer over the chunk set with the configured LLM, and emit the structured output.",
	RunE:  runAsk,
}

var (
	askQuery       string
	askChunksFile  string
	askAPIKey      string
	askModel       string
	askOutFile     string
	askLLMClassify bool
)

func init() {
	askCmd.Flags().StringVarP(&askQuery, "query", "q", "", "Question text (required)")
	askCmd.Flags().StringVar(&askChunksFile, "chunks", "", "Path to JSON file with candidate chunks")
	askCmd.Flags().StringVar(&askAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	askCmd.Flags().StringVar(&askModel, "model", "", "Model override for the selected tier")
	askCmd.Flags().StringVarP(&askOutFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	askCmd.Flags().BoolVar(&askLLMClassify, "llm-classify", false, "Refine the rule-based query classification with the lite-tier model")
	_ = askCmd.MarkFlagRequired("query")

	rootCmd.AddCommand(askCmd)
}

func runAsk(_ *cobra.Command, _ []string) error {
	apiKey := askAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}

	chunks, err := loadChunks(askChunksFile)
	if err != nil {
		return err
	}

	ctx := context.Background()

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()

	qt, entity := classify.Classify(askQuery, nil, chunks)
	if askLLMClassify {
		refined, cerr := llm.ClassifyQuery(ctx, client, askQuery)
		if cerr != nil {
			fmt.Fprintf(os.Stderr, "Warning: model classification failed, keeping rule result: %v\n", cerr)
		} else {
			qt = refined
		}
	}
	tier := llm.TierForQueryType(qt)

	if askModel != "" {
		override, oerr := llm.NewClient(ctx, llm.DefaultConfig().WithModel(tier, askModel), apiKey)
		if oerr != nil {
			return fmt.Errorf("failed to create LLM client: %w", oerr)
		}
		defer override.Close()
		client = override
	}

	query := &types.Query{
		Text:        askQuery,
		Language:    classify.DetectLanguage(askQuery),
		BoundEntity: entity,
	}
	prompt := llm.BuildPrompt(query, qt, chunks, nil)

	raw, err := client.GenerateContent(ctx, prompt, tier)
	if err != nil {
		return fmt.Errorf("failed to generate answer: %w", err)
	}

	result := orchestrator.Process(orchestrator.Request{
		Raw:         raw,
		Chunks:      chunks,
		QueryText:   askQuery,
		QueryType:   qt,
		BoundEntity: entity,
	})

	return writeOutputJSON(result, askOutFile)
}
