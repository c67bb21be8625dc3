// Package main provides the entry point for the campaign compliance agent.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "compliance_agent",
	Short: "A2P 10DLC campaign compliance agent",
	Long:  "Evaluates messaging campaign submissions against carrier compliance rules: brand review, opt-in validation, message templates, URLs, and legal pages. Runs as a one-shot checker or as a REST API server.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
