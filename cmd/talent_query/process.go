package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/talent-query/internal/logger"
	"github.com/jonathan/talent-query/internal/orchestrator"
	"github.com/jonathan/talent-query/internal/render"
	"github.com/jonathan/talent-query/internal/schemas"
	"github.com/jonathan/talent-query/internal/types"
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Turn a raw LLM answer into structured output",
	Long:  "Process a raw generated answer (plus the chunks it was generated from) into the tagged structured output, with an optional schema validation pass.",
	RunE:  runProcess,
}

var (
	processRawFile    string
	processChunksFile string
	processQuery      string
	processType       string
	processValidate   bool
	processOutFile    string
	processText       bool
	processDir        string
	processWorkers    int
)

func init() {
	processCmd.Flags().StringVarP(&processRawFile, "raw", "r", "", "Path to raw generation text file")
	processCmd.Flags().StringVar(&processChunksFile, "chunks", "", "Path to JSON file with candidate chunks")
	processCmd.Flags().StringVarP(&processQuery, "query", "q", "", "Question text the answer responds to")
	processCmd.Flags().StringVarP(&processType, "type", "t", "", "Query type override (skips classification)")
	processCmd.Flags().BoolVar(&processValidate, "validate", false, "Validate the output against the contract schema")
	processCmd.Flags().StringVarP(&processOutFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	processCmd.Flags().BoolVar(&processText, "text", false, "Print the flattened text instead of JSON")
	processCmd.Flags().StringVar(&processDir, "dir", "", "Process every .txt file in a directory (batch mode)")
	processCmd.Flags().IntVar(&processWorkers, "workers", 4, "Concurrent workers in batch mode")

	rootCmd.AddCommand(processCmd)
}

func runProcess(_ *cobra.Command, _ []string) error {
	if processDir != "" {
		return runProcessBatch(processDir)
	}

	if processRawFile == "" && processQuery == "" {
		return fmt.Errorf("either --raw or --query is required")
	}

	var raw string
	if processRawFile != "" {
		content, err := os.ReadFile(processRawFile)
		if err != nil {
			return fmt.Errorf("failed to read raw file: %w", err)
		}
		raw = string(content)
	}

	chunks, err := loadChunks(processChunksFile)
	if err != nil {
		return err
	}

	qt := types.QueryType(processType)
	if processType != "" && !qt.Valid() {
		return fmt.Errorf("unknown query type: %s", processType)
	}

	result := orchestrator.Process(orchestrator.Request{
		Raw:       raw,
		Chunks:    chunks,
		QueryText: processQuery,
		QueryType: qt,
	})

	if processValidate {
		if err := schemas.ValidateOutput(result.Output, ""); err != nil {
			return fmt.Errorf("output failed schema validation: %w", err)
		}
	}

	if processText {
		printer := render.NewPrinter(os.Stdout)
		printer.PrintOutput(result.Output)
		fmt.Println(result.FormattedText)
		return nil
	}

	return writeOutputJSON(result, processOutFile)
}

// runProcessBatch processes every .txt file in dir concurrently. A sibling
// <name>.chunks.json file, when present, supplies the chunk set. Results land
// next to their inputs as <name>.out.json.
func runProcessBatch(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory: %w", err)
	}

	var g errgroup.Group
	g.SetLimit(processWorkers)

	processed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		processed++

		name := entry.Name()
		g.Go(func() error {
			rawPath := filepath.Join(dir, name)
			content, err := os.ReadFile(rawPath)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", name, err)
			}

			base := strings.TrimSuffix(name, ".txt")
			chunks, err := loadChunks(siblingChunksFile(dir, base))
			if err != nil {
				return err
			}

			result := orchestrator.Process(orchestrator.Request{
				Raw:       string(content),
				Chunks:    chunks,
				QueryText: processQuery,
				QueryType: types.QueryType(processType),
			})

			outPath := filepath.Join(dir, base+".out.json")
			if err := writeOutputJSON(result, outPath); err != nil {
				return err
			}

			logger.Info().
				Str("file", name).
				Str("query_type", string(result.QueryType)).
				Int("degraded_modules", len(result.Diagnostics)).
				Msg("processed")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if processed == 0 {
		return fmt.Errorf("no .txt files found in %s", dir)
	}
	logger.Info().Int("files", processed).Msg("batch complete")
	return nil
}

func siblingChunksFile(dir, base string) string {
	path := filepath.Join(dir, base+".chunks.json")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

func writeOutputJSON(result orchestrator.Result, outPath string) error {
	payload := map[string]any{
		"request_id":     result.RequestID,
		"query_type":     result.QueryType,
		"output":         result.Output,
		"formatted_text": result.FormattedText,
	}
	if len(result.Diagnostics) > 0 {
		payload["diagnostics"] = result.Diagnostics
	}

	jsonBytes, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	if outPath == "" {
		fmt.Println(string(jsonBytes))
		return nil
	}
	if err := os.WriteFile(outPath, jsonBytes, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
