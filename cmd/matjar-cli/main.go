package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/matjarly/matjar/client"
)

// Build-time variables set via ldflags.
var (
	version   = "1.0.0"
	commit    = ""
	buildDate = ""
)

var (
	apiClient *client.Client
	flagURL   string
	flagFmt   string
)

const defaultServerURL = "http://localhost:3040"

func versionString() string {
	if commit != "" && buildDate != "" {
		return fmt.Sprintf("matjar version %s (commit: %s, built: %s)", version, commit, buildDate)
	}
	return fmt.Sprintf("matjar version %s-dev", version)
}

type configFile struct {
	// Flat format
	URL string `yaml:"url"`
	// Profile format
	Profiles      map[string]configProfile `yaml:"profiles"`
	ActiveProfile string                   `yaml:"active_profile"`
}

type configProfile struct {
	URL string `yaml:"url"`
}

func main() {
	rootCmd := &cobra.Command{
		Use:     "matjar",
		Short:   "Matjar CLI for the catalog enrichment and search service",
		Version: versionString(),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			resolveConfig()
			apiClient = client.New(flagURL)
		},
		SilenceUsage: true,
	}
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&flagURL, "url", defaultServerURL, "Matjar server URL (env: MATJAR_URL)")
	rootCmd.PersistentFlags().StringVar(&flagFmt, "format", "json", "Output format: json|table|quiet")

	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newEnrichCmd())
	rootCmd.AddCommand(newHealthCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func resolveConfig() {
	// Flag takes precedence, then env, then config file.
	if flagURL == defaultServerURL {
		if v := os.Getenv("MATJAR_URL"); v != "" {
			flagURL = v
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	cfgPath := filepath.Join(home, ".matjar", "config.yaml")
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		return
	}
	var cfg configFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return
	}
	// Resolve from profiles if available, fall back to flat format.
	resolvedURL := cfg.URL
	if cfg.Profiles != nil {
		profileName := cfg.ActiveProfile
		if profileName == "" {
			profileName = "default"
		}
		if p, ok := cfg.Profiles[profileName]; ok && p.URL != "" {
			resolvedURL = p.URL
		}
	}
	if flagURL == defaultServerURL && resolvedURL != "" {
		flagURL = resolvedURL
	}
}

func fatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
	os.Exit(1)
}
