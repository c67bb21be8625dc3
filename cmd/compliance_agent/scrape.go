package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marcus/campaign-compliance/internal/fetch"
	"github.com/marcus/campaign-compliance/internal/scraping"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape a website and report its compliance signals",
	Long:  `Fetches a page, extracts its text and policy links, scans it for prohibited content patterns, and prints the findings as JSON.`,
	RunE:  runScrape,
}

var (
	scrapeURL        string
	scrapeUseBrowser bool
)

func init() {
	scrapeCmd.Flags().StringVarP(&scrapeURL, "url", "u", "", "URL to scrape (required)")
	scrapeCmd.Flags().BoolVar(&scrapeUseBrowser, "use-browser", false, "Use headless browser for JS-rendered sites (requires Chrome)")
	_ = scrapeCmd.MarkFlagRequired("url")

	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(_ *cobra.Command, _ []string) error {
	opts := fetch.DefaultOptions()
	opts.UseBrowser = scrapeUseBrowser

	site, err := scraping.ScrapeSite(context.Background(), scrapeURL, opts)
	if err != nil {
		return fmt.Errorf("scrape failed: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"website_data":        site,
		"compliance_analysis": scraping.AnalyzeSite(site),
	})
}
