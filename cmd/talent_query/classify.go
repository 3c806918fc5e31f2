package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-query/internal/classify"
	"github.com/jonathan/talent-query/internal/types"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify a recruiter question into a query type",
	Long:  "Classify a question against the fixed set of query types and report the bound candidate, if any.",
	RunE:  runClassify,
}

var (
	classifyQuery      string
	classifyChunksFile string
)

func init() {
	classifyCmd.Flags().StringVarP(&classifyQuery, "query", "q", "", "Question text (required)")
	classifyCmd.Flags().StringVar(&classifyChunksFile, "chunks", "", "Path to JSON file with candidate chunks")
	_ = classifyCmd.MarkFlagRequired("query")

	rootCmd.AddCommand(classifyCmd)
}

func runClassify(_ *cobra.Command, _ []string) error {
	chunks, err := loadChunks(classifyChunksFile)
	if err != nil {
		return err
	}

	qt, entity := classify.Classify(classifyQuery, nil, chunks)

	result := map[string]string{
		"query_type": string(qt),
		"language":   classify.DetectLanguage(classifyQuery),
	}
	if entity != "" {
		result["bound_entity"] = entity
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// loadChunks reads candidate chunks from a JSON file. An empty path yields an
// empty chunk set.
func loadChunks(path string) ([]types.Chunk, error) {
	if path == "" {
		return nil, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read chunks file: %w", err)
	}

	var chunks []types.Chunk
	if err := json.Unmarshal(content, &chunks); err != nil {
		return nil, fmt.Errorf("failed to parse chunks file: %w", err)
	}
	return chunks, nil
}
