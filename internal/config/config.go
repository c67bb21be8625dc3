// Package config provides configuration loading and validation for the
// compliance agent CLI and API server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the agent configuration, loadable from a JSON file. All fields
// are optional; missing values fall back to defaults or CLI flags.
type Config struct {
	// Inputs
	Submission string `json:"submission,omitempty"` // Path to submission JSON file
	WebsiteURL string `json:"website_url,omitempty"` // Brand website to scrape

	// Behavior
	UseBrowser bool `json:"use_browser,omitempty"` // Headless browser fallback for JS-heavy sites
	Verbose    bool `json:"verbose,omitempty"`     // Print detailed debug information

	// Services
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key for the compliance chat
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	ListenAddr  string `json:"listen_addr,omitempty"`  // API server bind address
}

// Load reads configuration from a JSON file. Relative paths resolve against
// the current directory.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv fills service settings from environment variables. File and flag
// values win over the environment.
func (c *Config) FromEnv() {
	if c.APIKey == "" {
		c.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if c.ListenAddr == "" {
		c.ListenAddr = os.Getenv("LISTEN_ADDR")
	}
}

// Validate checks that the configuration has usable values. Required fields
// are enforced later by CLI flag validation, not here.
func (c *Config) Validate() error {
	if c.Submission != "" {
		if _, err := os.Stat(c.Submission); os.IsNotExist(err) {
			return fmt.Errorf("config error: submission file not found: %s", c.Submission)
		}
	}
	return nil
}

