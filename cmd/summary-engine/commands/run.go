package commands

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/spherical-ai/summary-engine/cmd/summary-engine/ui"
	"github.com/spherical-ai/summary-engine/internal/batch"
	"github.com/spherical-ai/summary-engine/internal/extract"
)

var (
	runInputDir    string
	runOutputDir   string
	runConcurrency int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Summarize every document in the input folder",
	Long: `Run scans the input folder for PDF and text documents, skips any that
already have a summary in the output folder, and summarizes the rest.
Interrupting a run is safe: completed summaries are kept and the next run
picks up where this one left off.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runInputDir, "input", "i", "", "input folder (overrides config)")
	runCmd.Flags().StringVarP(&runOutputDir, "output", "o", "", "output folder (overrides config)")
	runCmd.Flags().IntVarP(&runConcurrency, "concurrency", "n", 0, "documents processed per wave (overrides config)")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if runInputDir != "" {
		cfg.Input.Dir = runInputDir
	}
	if runOutputDir != "" {
		cfg.Output.Dir = runOutputDir
	}
	if runConcurrency > 0 {
		cfg.Batch.Concurrency = runConcurrency
	}

	logger := buildLogger(cfg)

	generator, err := buildGenerator(cfg, logger)
	if err != nil {
		return err
	}
	engine, err := buildEngine(cfg, generator, logger)
	if err != nil {
		return err
	}

	runLog, err := batch.OpenRunLog(cfg.Output.LogFile)
	if err != nil {
		return fmt.Errorf("open processing log: %w", err)
	}
	defer runLog.Close()

	driver := batch.NewDriver(
		cfg.Input.Dir,
		cfg.Batch.Concurrency,
		extract.NewService(logger),
		engine,
		batch.NewStore(cfg.Output.Dir),
		runLog,
		logger,
	)

	ui.Section("Batch Summarization")
	ui.KeyValue("Input", cfg.Input.Dir)
	ui.KeyValue("Output", cfg.Output.Dir)
	ui.KeyValue("Model", cfg.Generation.Model)
	ui.KeyValue("Concurrency", fmt.Sprintf("%d", cfg.Batch.Concurrency))
	ui.Newline()

	// Interrupt stops the run between documents; anything mid-flight is
	// abandoned and retried from scratch on the next run.
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var mu sync.Mutex
	var bar *ui.ProgressBar
	driver.OnPlan(func(pending int) {
		if pending > 0 {
			bar = ui.NewProgressBar(int64(pending), "Summarizing")
		}
	})
	driver.OnOutcome(func(o batch.DocumentOutcome) {
		mu.Lock()
		defer mu.Unlock()
		switch {
		case o.Skipped:
			ui.Verbose("skipped %s (summary exists)", o.Document.Name)
		case o.Err != nil:
			ui.Error("%s: %v", o.Document.Name, o.Err)
		default:
			ui.Verbose("completed %s", o.Document.Name)
		}
		if bar != nil && !o.Skipped {
			bar.Add(1)
		}
	})

	stats, runErr := driver.Run(ctx)
	if bar != nil {
		bar.Finish()
	}

	ui.Newline()
	ui.Section("Run Summary")
	ui.KeyValue("Discovered", fmt.Sprintf("%d", stats.Discovered))
	ui.KeyValue("Skipped", fmt.Sprintf("%d", stats.Skipped))
	ui.KeyValue("Completed", fmt.Sprintf("%d", stats.Completed))
	ui.KeyValue("Failed", fmt.Sprintf("%d", stats.Failed))
	ui.KeyValue("Elapsed", ui.FormatDuration(stats.Elapsed))
	ui.Newline()

	switch {
	case errors.Is(runErr, context.Canceled):
		ui.Warning("Run interrupted; completed summaries are kept, rerun to finish the rest")
		return nil
	case runErr != nil:
		return fmt.Errorf("batch run aborted, rerun to resume: %w", runErr)
	case stats.Failed > 0:
		ui.Warning("%d document(s) failed; rerun to retry them", stats.Failed)
	default:
		ui.Success("All documents summarized")
	}
	return nil
}
