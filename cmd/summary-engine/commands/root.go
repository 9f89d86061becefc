// Package commands implements the summary-engine CLI.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/spherical-ai/summary-engine/cmd/summary-engine/ui"
	"github.com/spherical-ai/summary-engine/internal/config"
	"github.com/spherical-ai/summary-engine/internal/observability"
)

var (
	cfgFile string
	verbose bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "summary-engine",
	Short: "Batch document summarization via a local generation backend",
	Long: `summary-engine turns a folder of PDF and text documents into concise
summaries by calling a locally running Ollama-compatible backend. Oversized
documents are split into sentence-aligned chunks and summarized
hierarchically; runs are resumable because a document is only processed
while its summary file is absent from the output folder.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		ui.Init(noColor, verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig loads configuration from the --config file (if given), the
// environment, and defaults.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Observability.LogLevel = "debug"
	}
	return cfg, nil
}

// buildLogger creates the structured logger from config.
func buildLogger(cfg *config.Config) *observability.Logger {
	return observability.NewLogger(observability.LogConfig{
		Level:       cfg.Observability.LogLevel,
		Format:      cfg.Observability.LogFormat,
		ServiceName: "summary-engine",
	})
}
