package commands

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/spherical-ai/summary-engine/cmd/summary-engine/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the generation backend is reachable and the model is installed",
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := buildLogger(cfg)

	generator, err := buildGenerator(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	spin := ui.NewSpinner(fmt.Sprintf("Checking %s...", cfg.Generation.BaseURL))
	spin.Start()
	available, err := generator.CheckAvailability(ctx)
	spin.Stop()

	if err != nil {
		return fmt.Errorf("generation backend at %s is not usable: %w", cfg.Generation.BaseURL, err)
	}
	if !available {
		ui.Warning("Backend is reachable but model %q is not installed", cfg.Generation.Model)
		return fmt.Errorf("model %q not found, install it with: ollama pull %s", cfg.Generation.Model, cfg.Generation.Model)
	}

	ui.Success("Backend reachable at %s, model %q installed", cfg.Generation.BaseURL, cfg.Generation.Model)
	return nil
}
