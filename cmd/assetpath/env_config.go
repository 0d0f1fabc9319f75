package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-assetpath/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without editing the site config.
type envConfig struct {
	// Tier 1 - Essential
	ConfigPath string // ASSETPATH_CONFIG: config file name or path
	OutputDir  string // ASSETPATH_OUTPUT_DIR: where pages are written
	Prefix     string // ASSETPATH_PREFIX: site prefix for rendered asset paths

	// Tier 2 - Extended
	Manifest  string // ASSETPATH_MANIFEST: manifest file name ("-" = none)
	Generated string // ASSETPATH_GENERATED: manifest date
	Addr      string // ASSETPATH_ADDR: serve listen address
	Workers   int    // ASSETPATH_WORKERS: parallel page builders
}

// knownEnvVars lists valid ASSETPATH_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	// Tier 1 - Essential
	"ASSETPATH_CONFIG":     true,
	"ASSETPATH_OUTPUT_DIR": true,
	"ASSETPATH_PREFIX":     true,
	// Tier 2 - Extended
	"ASSETPATH_MANIFEST":  true,
	"ASSETPATH_GENERATED": true,
	"ASSETPATH_ADDR":      true,
	"ASSETPATH_WORKERS":   true,
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized ASSETPATH_* values.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		// Tier 1
		ConfigPath: os.Getenv("ASSETPATH_CONFIG"),
		OutputDir:  os.Getenv("ASSETPATH_OUTPUT_DIR"),
		Prefix:     os.Getenv("ASSETPATH_PREFIX"),
		// Tier 2
		Manifest:  os.Getenv("ASSETPATH_MANIFEST"),
		Generated: os.Getenv("ASSETPATH_GENERATED"),
		Addr:      os.Getenv("ASSETPATH_ADDR"),
	}

	// Parse int for workers
	if workers := os.Getenv("ASSETPATH_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized ASSETPATH_* variables.
// Helps catch typos like ASSETPATH_OUTPUTDIR instead of ASSETPATH_OUTPUT_DIR.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "ASSETPATH_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values over the config file.
// Priority: CLI flags > env vars > config file > defaults
// (CLI flags are applied later by each command)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.OutputDir != "" {
		cfg.Site.OutputDir = env.OutputDir
	}
	if env.Prefix != "" {
		cfg.Site.Prefix = env.Prefix
	}
	if env.Manifest != "" {
		cfg.Site.Manifest = env.Manifest
	}
	if env.Generated != "" {
		cfg.Site.Generated = env.Generated
	}
	if env.Addr != "" {
		cfg.Serve.Addr = env.Addr
	}
}
