package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marcus/campaign-compliance/internal/config"
	"github.com/marcus/campaign-compliance/internal/engine"
	"github.com/marcus/campaign-compliance/internal/fetch"
	"github.com/marcus/campaign-compliance/internal/observability"
	"github.com/marcus/campaign-compliance/internal/schemas"
	"github.com/marcus/campaign-compliance/internal/scraping"
	"github.com/marcus/campaign-compliance/internal/types"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Evaluate a campaign submission against the compliance rules",
	Long: `Reads a submission JSON file, optionally scrapes the brand website for
evidence, runs the full rule evaluation, and prints the compliance report.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: runCheck,
}

var (
	checkConfigPath string
	checkSubmission string
	checkWebsite    string
	checkUseBrowser bool
	checkVerbose    bool
	checkJSONOut    bool
)

func init() {
	checkCmd.Flags().StringVar(&checkConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	checkCmd.Flags().StringVarP(&checkSubmission, "submission", "s", "", "Path to submission JSON file")
	checkCmd.Flags().StringVarP(&checkWebsite, "website", "w", "", "Brand website URL (overrides the submission's brand_website)")
	checkCmd.Flags().BoolVar(&checkUseBrowser, "use-browser", false, "Use headless browser for JS-rendered sites (requires Chrome)")
	checkCmd.Flags().BoolVarP(&checkVerbose, "verbose", "v", false, "Print session events while evaluating")
	checkCmd.Flags().BoolVar(&checkJSONOut, "json", false, "Print the raw result JSON instead of the report")

	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadCheckConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Submission == "" {
		return fmt.Errorf("--submission is required (or set \"submission\" in the config file)")
	}

	sub, err := readSubmission(cfg.Submission)
	if err != nil {
		return err
	}
	if cfg.WebsiteURL != "" {
		sub.BrandWebsite = cfg.WebsiteURL
	}

	// A nil event log discards everything; only verbose runs emit events.
	var events *observability.EventLog
	if cfg.Verbose {
		events = observability.NewEventLog(os.Stderr)
	}

	opts := fetch.DefaultOptions()
	opts.UseBrowser = cfg.UseBrowser

	pkg, err := scraping.BuildPackage(ctx, sub, opts)
	if err != nil {
		events.WebsiteScraping("", sub.BrandWebsite, false, err)
		return fmt.Errorf("website scraping failed: %w", err)
	}
	if sub.BrandWebsite != "" {
		events.WebsiteScraping("", sub.BrandWebsite, true, nil)
	}

	result := engine.Evaluate(pkg.Submission)
	events.ComplianceResult("", &result)

	if checkJSONOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"submission_package": pkg,
			"compliance_result":  result,
			"recommendation":     engine.FinalRecommendationFor(result),
		})
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintResult(&result, engine.FinalRecommendationFor(result))

	if result.Status != types.StatusApprovable {
		os.Exit(1)
	}
	return nil
}

// loadCheckConfig merges the config file, environment, and CLI flags, with
// flags taking priority.
func loadCheckConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config

	if checkConfigPath != "" {
		loaded, err := config.Load(checkConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	if cmd.Flags().Changed("submission") {
		cfg.Submission = checkSubmission
	}
	if cmd.Flags().Changed("website") {
		cfg.WebsiteURL = checkWebsite
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = checkUseBrowser
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = checkVerbose
	}

	cfg.FromEnv()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// readSubmission loads and schema-validates a submission file.
func readSubmission(path string) (types.Submission, error) {
	var sub types.Submission

	data, err := os.ReadFile(path)
	if err != nil {
		return sub, fmt.Errorf("failed to read submission file: %w", err)
	}
	if err := schemas.ValidateSubmission(data); err != nil {
		return sub, fmt.Errorf("invalid submission: %w", err)
	}
	if err := json.Unmarshal(data, &sub); err != nil {
		return sub, fmt.Errorf("failed to parse submission JSON: %w", err)
	}
	if err := sub.Validate(); err != nil {
		return sub, fmt.Errorf("invalid submission: %w", err)
	}
	return sub, nil
}
