// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds the crawl settings. All fields are optional in the config
// file; missing values fall back to defaults or CLI flags.
type Config struct {
	// BaseURL is the portal listing page the crawl starts from.
	BaseURL string `json:"base_url,omitempty" validate:"omitempty,url"`

	// OutputCSV is where extracted records are streamed.
	OutputCSV string `json:"output_csv,omitempty"`

	// DownloadDir receives a copy of every resolved PDF.
	DownloadDir string `json:"download_dir,omitempty"`

	// Headless controls browser rendering mode. A pointer distinguishes an
	// explicit "headless": false in the file from an absent field.
	Headless *bool `json:"headless,omitempty"`

	// CutoffYear is the earliest publication year still collected; items at
	// or below it stop the historical crawl.
	CutoffYear int `json:"cutoff_year,omitempty" validate:"omitempty,gte=1900,lte=2100"`

	// NavTimeoutSec bounds one page load; FetchTimeoutSec bounds one PDF
	// candidate download.
	NavTimeoutSec   int `json:"nav_timeout_sec,omitempty" validate:"omitempty,gt=0"`
	FetchTimeoutSec int `json:"fetch_timeout_sec,omitempty" validate:"omitempty,gt=0"`

	// DailyLimit bounds the diario-mode scan.
	DailyLimit int `json:"daily_limit,omitempty" validate:"omitempty,gt=0"`
}

// Default returns the configuration used when no file or flags override it.
func Default() *Config {
	headless := true
	return &Config{
		OutputCSV:   "resultados_doe_pb.csv",
		DownloadDir: "downloads_doe_pb",
		Headless:    &headless,
	}
}

// Load reads a JSON config file. Returns an error if the file cannot be
// read or parsed.
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

// Validate checks field-level constraints using the validator tags.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// HeadlessOn reports the effective rendering mode; unset means headless.
func (c *Config) HeadlessOn() bool {
	return c.Headless == nil || *c.Headless
}

// NavTimeout returns the page-load bound, zero when unset (callers apply
// their own default).
func (c *Config) NavTimeout() time.Duration {
	return time.Duration(c.NavTimeoutSec) * time.Second
}

// FetchTimeout returns the candidate-download bound, zero when unset.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSec) * time.Second
}
