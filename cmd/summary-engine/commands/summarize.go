package commands

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/spherical-ai/summary-engine/cmd/summary-engine/ui"
	"github.com/spherical-ai/summary-engine/internal/domain"
	"github.com/spherical-ai/summary-engine/internal/extract"
)

var summarizeOutputPath string

var summarizeCmd = &cobra.Command{
	Use:   "summarize <file>",
	Short: "Summarize a single document",
	Long: `Summarize extracts the text of one PDF or text document, summarizes
it, and prints the result to stdout (or writes it to --output).`,
	Args: cobra.ExactArgs(1),
	RunE: runSummarize,
}

func init() {
	summarizeCmd.Flags().StringVarP(&summarizeOutputPath, "output", "o", "", "write the summary to this file instead of stdout")
	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	path := args[0]

	kind, ok := domain.KindForPath(path)
	if !ok {
		return fmt.Errorf("unsupported document type %q (expected .pdf or .txt)", filepath.Ext(path))
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
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

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	doc := domain.Document{
		Name: filepath.Base(path),
		Path: path,
		Kind: kind,
	}

	text, err := extract.NewService(logger).Extract(ctx, doc)
	if err != nil {
		return fmt.Errorf("extract %s: %w", doc.Name, err)
	}
	ui.Verbose("extracted %d characters from %s", len(text), doc.Name)

	spin := ui.NewSpinner(fmt.Sprintf("Summarizing %s...", doc.Name))
	spin.Start()
	summary, err := engine.SummarizeDocument(ctx, text)
	spin.Stop()
	if err != nil {
		return fmt.Errorf("summarize %s: %w", doc.Name, err)
	}

	if summarizeOutputPath == "" {
		fmt.Fprintln(os.Stdout, summary)
		return nil
	}

	if err := os.WriteFile(summarizeOutputPath, []byte(summary), 0644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	ui.Success("Summary written to %s", summarizeOutputPath)
	return nil
}
