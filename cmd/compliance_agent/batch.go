package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marcus/campaign-compliance/internal/engine"
	"github.com/marcus/campaign-compliance/internal/observability"
	"github.com/marcus/campaign-compliance/internal/types"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Evaluate a batch of messages against a shared submission context",
	Long: `Reads a JSON file with a "messages" array and an optional "context"
submission, evaluates every message independently, and prints the per-message
results followed by the aggregate summary.`,
	RunE: runBatch,
}

var (
	batchInput   string
	batchJSONOut bool
)

func init() {
	batchCmd.Flags().StringVarP(&batchInput, "input", "i", "", "Path to batch JSON file (required)")
	batchCmd.Flags().BoolVar(&batchJSONOut, "json", false, "Print the raw results JSON instead of the report")
	_ = batchCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(batchCmd)
}

// batchFile is the on-disk batch format, matching the API's batch endpoint.
type batchFile struct {
	Messages []string         `json:"messages"`
	Context  types.Submission `json:"context"`
}

func runBatch(_ *cobra.Command, _ []string) error {
	results, summary, err := evaluateBatchFile(batchInput)
	if err != nil {
		return err
	}

	if batchJSONOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"results": results,
			"summary": summary,
		})
	}

	printer := observability.NewPrinter(os.Stdout)
	for i := range results {
		printer.PrintResult(&results[i], engine.FinalRecommendationFor(results[i]))
	}
	printer.PrintSummary(&summary)

	return nil
}

// evaluateBatchFile loads a batch file and evaluates each message against
// the shared context, one submission per message.
func evaluateBatchFile(path string) ([]types.ComplianceResult, types.Summary, error) {
	var batch batchFile

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, types.Summary{}, fmt.Errorf("failed to read batch file: %w", err)
	}
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, types.Summary{}, fmt.Errorf("failed to parse batch JSON: %w", err)
	}
	if len(batch.Messages) == 0 {
		return nil, types.Summary{}, fmt.Errorf("batch file has no messages")
	}

	subs := make([]types.Submission, 0, len(batch.Messages))
	for i, message := range batch.Messages {
		sub := batch.Context
		sub.ID = fmt.Sprintf("message_%d", i+1)
		sub.SampleMessages = []string{message}
		subs = append(subs, sub)
	}

	results := engine.EvaluateBatch(subs)
	return results, engine.Summarize(results), nil
}
