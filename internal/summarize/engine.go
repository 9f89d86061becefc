package summarize

import (
	"context"
	"fmt"
	"strings"

	"github.com/spherical-ai/summary-engine/internal/domain"
	"github.com/spherical-ai/summary-engine/internal/llm"
	"github.com/spherical-ai/summary-engine/internal/observability"
)

// Options holds summarization settings.
type Options struct {
	ChunkingEnabled bool
	ChunkThreshold  int // characters above which the hierarchical path is taken
	ChunkUnits      int // per-chunk unit budget for the splitter
	MaxLength       int // soft cap on the final summary, in characters
	ChunkMaxLength  int // soft cap on intermediate chunk summaries, in characters
}

// Engine orchestrates single-shot and hierarchical summarization. It
// implements domain.Summarizer.
type Engine struct {
	generator domain.Generator
	prompts   llm.Prompts
	opts      Options
	splitter  *Splitter
	formatter *Formatter
	logger    *observability.Logger
}

// NewEngine creates a summarization engine.
func NewEngine(generator domain.Generator, prompts llm.Prompts, opts Options, logger *observability.Logger) *Engine {
	if logger == nil {
		logger = observability.DefaultLogger()
	}
	return &Engine{
		generator: generator,
		prompts:   prompts,
		opts:      opts,
		splitter:  NewSplitter(),
		formatter: NewFormatter(),
		logger:    logger.WithOperation("summarize"),
	}
}

// SummarizeDocument produces a finished, formatted summary of text. Text
// within the configured threshold is summarized with one generation call;
// anything larger is split into chunks, each chunk is summarized
// independently, and the concatenated chunk summaries are summarized once
// more into the final result.
func (e *Engine) SummarizeDocument(ctx context.Context, text string) (string, error) {
	if !e.opts.ChunkingEnabled || len(text) <= e.opts.ChunkThreshold {
		return e.summarizeSingle(ctx, text)
	}
	return e.summarizeHierarchical(ctx, text)
}

func (e *Engine) summarizeSingle(ctx context.Context, text string) (string, error) {
	e.logger.Debug().
		Int("document_chars", len(text)).
		Msg("Summarizing document in a single call")

	raw, err := e.generator.Generate(ctx, llm.Render(e.prompts.Document, text))
	if err != nil {
		return "", err
	}

	return e.finish(raw), nil
}

func (e *Engine) summarizeHierarchical(ctx context.Context, text string) (string, error) {
	chunks := e.splitter.Split(text, e.opts.ChunkUnits)

	e.logger.Info().
		Int("document_chars", len(text)).
		Int("chunks", len(chunks)).
		Msg("Document exceeds chunk threshold, summarizing hierarchically")

	// Chunk summaries stay lightly processed; the full formatting pass
	// runs once, on the recombined result.
	chunkSummaries := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		raw, err := e.generator.Generate(ctx, llm.Render(e.prompts.Chunk, chunk))
		if err != nil {
			return "", fmt.Errorf("summarize chunk %d/%d: %w", i+1, len(chunks), err)
		}
		chunkSummaries = append(chunkSummaries, strings.TrimSpace(raw))

		e.logger.Debug().
			Int("chunk", i+1).
			Int("chunk_chars", len(chunk)).
			Int("summary_chars", len(raw)).
			Msg("Chunk summarized")
	}

	combined := strings.Join(chunkSummaries, "\n\n")
	raw, err := e.generator.Generate(ctx, llm.Render(e.prompts.Final, combined))
	if err != nil {
		return "", fmt.Errorf("recombine %d chunk summaries: %w", len(chunks), err)
	}

	return e.finish(raw), nil
}

// finish applies the full formatting pass and reports soft-cap overruns.
// An oversized summary is logged, never rejected.
func (e *Engine) finish(raw string) string {
	summary := e.formatter.Format(raw)

	if e.opts.MaxLength > 0 && len(summary) > e.opts.MaxLength {
		e.logger.Warn().
			Int("summary_chars", len(summary)).
			Int("max_length", e.opts.MaxLength).
			Msg("Summary exceeds configured length target")
	}

	return summary
}
