package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marcus/campaign-compliance/internal/server"
)

var (
	servePort       int
	serveUseBrowser bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes the compliance pipeline as REST
endpoints: submission analysis, message checks, website scraping, chat, and
per-session history.

DATABASE_URL and GEMINI_API_KEY are optional; without them submissions are
evaluated but not stored, and the chat uses canned answers. JWT_SECRET is
required for the admin endpoints.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().BoolVar(&serveUseBrowser, "use-browser", false, "Use headless browser for JS-rendered sites (requires Chrome)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := server.Config{
		Port:        servePort,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		APIKey:      os.Getenv("GEMINI_API_KEY"),
		UseBrowser:  serveUseBrowser,
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
