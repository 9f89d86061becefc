package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spherical-ai/summary-engine/internal/domain"
	"github.com/spherical-ai/summary-engine/internal/observability"
)

// DocumentOutcome reports how one document fared, for callers that render
// per-document status (progress bars, CLI lines).
type DocumentOutcome struct {
	Document domain.Document
	Skipped  bool
	Err      error
}

// Driver discovers documents in the input folder, filters out those that
// already have a summary, and runs the summarizer over the rest. It holds
// no cross-run state: completion is re-derived from summary-file presence
// on every run.
type Driver struct {
	inputDir    string
	concurrency int
	extractor   domain.TextExtractor
	summarizer  domain.Summarizer
	store       *Store
	runLog      *RunLog
	logger      *observability.Logger

	// onPlan, when set, is invoked once after the pre-filter with the
	// number of documents that will actually be processed.
	onPlan func(pending int)

	// onOutcome, when set, is invoked once per filtered document as it
	// settles. Called from worker goroutines when concurrency > 1.
	onOutcome func(DocumentOutcome)
}

// NewDriver creates a batch driver. concurrency < 1 is treated as 1.
func NewDriver(inputDir string, concurrency int, extractor domain.TextExtractor, summarizer domain.Summarizer, store *Store, runLog *RunLog, logger *observability.Logger) *Driver {
	if concurrency < 1 {
		concurrency = 1
	}
	if logger == nil {
		logger = observability.DefaultLogger()
	}
	return &Driver{
		inputDir:    inputDir,
		concurrency: concurrency,
		extractor:   extractor,
		summarizer:  summarizer,
		store:       store,
		runLog:      runLog,
		logger:      logger.WithOperation("batch"),
	}
}

// OnPlan registers a callback invoked with the post-filter document count
// before processing starts.
func (d *Driver) OnPlan(fn func(pending int)) {
	d.onPlan = fn
}

// OnOutcome registers a callback invoked as each document settles.
func (d *Driver) OnOutcome(fn func(DocumentOutcome)) {
	d.onOutcome = fn
}

// Run executes one batch pass. Setup and discovery failures abort the run;
// per-document failures are logged and counted but never stop siblings.
// Cancellation is honored between documents and surfaced to in-flight
// generation calls through the context.
func (d *Driver) Run(ctx context.Context) (*domain.RunStats, error) {
	stats := &domain.RunStats{RunID: uuid.New().String()}
	start := time.Now()

	logger := d.logger.With().Str("run_id", stats.RunID).Logger()

	if err := d.store.EnsureDir(); err != nil {
		return stats, fmt.Errorf("prepare output directory: %w", err)
	}

	docs, err := d.discover()
	if err != nil {
		return stats, fmt.Errorf("discover documents: %w", err)
	}
	stats.Discovered = len(docs)

	// Resumability pre-filter: a document whose summary already exists is
	// skipped without extraction or generation work.
	pending := make([]domain.Document, 0, len(docs))
	for _, doc := range docs {
		if d.store.Exists(doc) {
			stats.Skipped++
			d.runLog.Printf("Skipping %s: summary already exists", doc.Name)
			d.emit(DocumentOutcome{Document: doc, Skipped: true})
			continue
		}
		pending = append(pending, doc)
	}

	if d.onPlan != nil {
		d.onPlan(len(pending))
	}

	logger.Info().
		Int("discovered", stats.Discovered).
		Int("skipped", stats.Skipped).
		Int("pending", len(pending)).
		Int("concurrency", d.concurrency).
		Msg("Starting batch run")
	d.runLog.Printf("Run started: %d documents discovered, %d already summarized, %d to process",
		stats.Discovered, stats.Skipped, len(pending))

	err = d.process(ctx, logger, pending, stats)

	stats.Elapsed = time.Since(start)
	logger.Info().
		Int("completed", stats.Completed).
		Int("failed", stats.Failed).
		Dur("elapsed", stats.Elapsed).
		Msg("Batch run finished")
	d.runLog.Printf("Run finished: %d completed, %d failed, elapsed %s",
		stats.Completed, stats.Failed, stats.Elapsed.Round(time.Second))

	return stats, err
}

// discover lists the input folder and keeps regular files whose extension
// maps to a recognized document kind, in name order.
func (d *Driver) discover() ([]domain.Document, error) {
	entries, err := os.ReadDir(d.inputDir)
	if err != nil {
		return nil, domain.IOError(fmt.Sprintf("failed to read input directory %s", d.inputDir), err)
	}

	var docs []domain.Document
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		kind, ok := domain.KindForPath(entry.Name())
		if !ok {
			continue
		}
		docs = append(docs, domain.Document{
			Name: entry.Name(),
			Path: filepath.Join(d.inputDir, entry.Name()),
			Kind: kind,
		})
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Name < docs[j].Name })
	return docs, nil
}

// process runs the pending documents either strictly in order or in
// consecutive waves of d.concurrency. Wave i+1 never starts before wave i
// has fully settled; this bounds simultaneous load on the generation
// backend rather than maximizing throughput.
func (d *Driver) process(ctx context.Context, logger *observability.Logger, pending []domain.Document, stats *domain.RunStats) error {
	var mu sync.Mutex

	settle := func(doc domain.Document, err error) {
		mu.Lock()
		if err != nil {
			stats.Failed++
		} else {
			stats.Completed++
		}
		mu.Unlock()
		d.emit(DocumentOutcome{Document: doc, Err: err})
	}

	if d.concurrency == 1 {
		for _, doc := range pending {
			if err := ctx.Err(); err != nil {
				return err
			}
			settle(doc, d.processDocument(ctx, logger, doc))
		}
		return nil
	}

	for start := 0; start < len(pending); start += d.concurrency {
		if err := ctx.Err(); err != nil {
			return err
		}

		end := start + d.concurrency
		if end > len(pending) {
			end = len(pending)
		}

		var wg sync.WaitGroup
		for _, doc := range pending[start:end] {
			wg.Add(1)
			go func(doc domain.Document) {
				defer wg.Done()
				settle(doc, d.processDocument(ctx, logger, doc))
			}(doc)
		}
		wg.Wait()
	}

	return nil
}

// processDocument is the per-document failure domain: extract, summarize,
// persist. Any error is logged here and returned for accounting; it never
// propagates beyond this document.
func (d *Driver) processDocument(ctx context.Context, logger *observability.Logger, doc domain.Document) error {
	docLogger := logger.With().Str("document", doc.Name).Logger()

	text, err := d.extractor.Extract(ctx, doc)
	if err != nil {
		docLogger.Warn().Err(err).Msg("Text extraction failed, document skipped")
		d.runLog.Printf("Failed %s: %v", doc.Name, err)
		return err
	}

	docLogger.Info().Int("chars", len(text)).Msg("Summarizing document")
	d.runLog.Printf("Processing %s (%d characters)", doc.Name, len(text))

	summary, err := d.summarizer.SummarizeDocument(ctx, text)
	if err != nil {
		docLogger.Warn().Err(err).Msg("Summarization failed, document skipped")
		d.runLog.Printf("Failed %s: %v", doc.Name, err)
		return err
	}

	if err := d.store.Write(doc, summary); err != nil {
		docLogger.Warn().Err(err).Msg("Failed to persist summary")
		d.runLog.Printf("Failed %s: %v", doc.Name, err)
		return err
	}

	docLogger.Info().Int("summary_chars", len(summary)).Msg("Summary written")
	d.runLog.Printf("Completed %s -> %s", doc.Name, doc.SummaryName())
	return nil
}

func (d *Driver) emit(outcome DocumentOutcome) {
	if d.onOutcome != nil {
		d.onOutcome(outcome)
	}
}
