package summarize

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spherical-ai/summary-engine/internal/domain"
	"github.com/spherical-ai/summary-engine/internal/llm"
	"github.com/spherical-ai/summary-engine/internal/observability"
)

func testLogger() *observability.Logger {
	return observability.NewLogger(observability.LogConfig{
		Level:       "error",
		Output:      io.Discard,
		ServiceName: "test",
	})
}

// fakeGenerator returns scripted responses and records every prompt.
type fakeGenerator struct {
	mu      sync.Mutex
	prompts []string
	respond func(call int, prompt string) (string, error)
}

func (g *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, prompt)
	return g.respond(len(g.prompts), prompt)
}

func (g *fakeGenerator) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.prompts)
}

func constantResponse(text string) func(int, string) (string, error) {
	return func(int, string) (string, error) { return text, nil }
}

func testOptions() Options {
	return Options{
		ChunkingEnabled: true,
		ChunkThreshold:  200,
		ChunkUnits:      25, // 100-character chunks
		MaxLength:       3000,
		ChunkMaxLength:  1000,
	}
}

func newTestEngine(gen domain.Generator, opts Options) *Engine {
	return NewEngine(gen, llm.DefaultPrompts(opts.MaxLength, opts.ChunkMaxLength), opts, testLogger())
}

func TestEngine_SingleShot_BelowThreshold(t *testing.T) {
	gen := &fakeGenerator{respond: constantResponse("- Point one covered.\n- Point two covered.")}
	engine := newTestEngine(gen, testOptions())

	text := "A short document that fits comfortably within the threshold."
	summary, err := engine.SummarizeDocument(context.Background(), text)
	require.NoError(t, err)

	assert.Equal(t, 1, gen.calls(), "single-chunk path uses exactly one generation call")
	assert.Contains(t, gen.prompts[0], text, "prompt carries the document text")
	assert.NotContains(t, gen.prompts[0], llm.PromptPlaceholder)

	// The raw response goes through the full formatting pass.
	assert.NotContains(t, summary, "- ")
	assert.Contains(t, summary, "Point one covered")
}

func TestEngine_SingleShot_ChunkingDisabled(t *testing.T) {
	gen := &fakeGenerator{respond: constantResponse("A plain summary.")}
	opts := testOptions()
	opts.ChunkingEnabled = false
	engine := newTestEngine(gen, opts)

	// Far beyond the threshold, but chunking is off.
	text := strings.Repeat("Go is neat. ", 100)
	_, err := engine.SummarizeDocument(context.Background(), text)
	require.NoError(t, err)

	assert.Equal(t, 1, gen.calls())
}

func TestEngine_SingleShot_AtThresholdBoundary(t *testing.T) {
	gen := &fakeGenerator{respond: constantResponse("A plain summary.")}
	opts := testOptions()
	engine := newTestEngine(gen, opts)

	text := strings.Repeat("a", opts.ChunkThreshold) // exactly at the threshold
	_, err := engine.SummarizeDocument(context.Background(), text)
	require.NoError(t, err)

	assert.Equal(t, 1, gen.calls())
}

func TestEngine_Hierarchical_CallPattern(t *testing.T) {
	text := strings.Repeat("Go is neat. ", 40) // 480 chars -> 5 chunks of ~96

	gen := &fakeGenerator{
		respond: func(call int, prompt string) (string, error) {
			if call <= 5 {
				return fmt.Sprintf("  - chunk summary %d  ", call), nil
			}
			return "**Final** recombined summary of everything.", nil
		},
	}
	engine := newTestEngine(gen, testOptions())

	summary, err := engine.SummarizeDocument(context.Background(), text)
	require.NoError(t, err)

	// N chunk calls plus one final call.
	require.Equal(t, 6, gen.calls())

	// Each chunk prompt carries its own chunk, in document order.
	chunks := NewSplitter().Split(text, testOptions().ChunkUnits)
	require.Len(t, chunks, 5)
	for i, chunk := range chunks {
		assert.Contains(t, gen.prompts[i], chunk, "chunk prompt %d", i)
	}

	// The final prompt carries the chunk summaries joined by blank lines,
	// trimmed but otherwise unformatted: bullet markers survive until the
	// final formatting pass.
	finalPrompt := gen.prompts[5]
	assert.Contains(t, finalPrompt, "- chunk summary 1\n\n- chunk summary 2")
	assert.NotContains(t, finalPrompt, "  - chunk summary 1", "chunk summaries are whitespace-trimmed")

	// Only the final response is fully formatted.
	assert.NotContains(t, summary, "**")
	assert.Contains(t, summary, "Final recombined summary")
}

func TestEngine_Hierarchical_ChunkErrorStopsRun(t *testing.T) {
	gen := &fakeGenerator{
		respond: func(call int, prompt string) (string, error) {
			if call == 2 {
				return "", domain.RequestTimeoutError("generation call timed out", nil)
			}
			return "chunk summary", nil
		},
	}
	engine := newTestEngine(gen, testOptions())

	text := strings.Repeat("Go is neat. ", 40)
	_, err := engine.SummarizeDocument(context.Background(), text)

	require.Error(t, err)
	assert.True(t, domain.IsType(err, domain.ErrorTypeRequestTimeout), "error kind survives wrapping: %v", err)
	assert.Equal(t, 2, gen.calls(), "no further calls after a chunk failure")
}

func TestEngine_Hierarchical_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	gen := &fakeGenerator{
		respond: func(call int, prompt string) (string, error) {
			cancel() // cancel after the first in-flight chunk call
			return "chunk summary", nil
		},
	}
	engine := newTestEngine(gen, testOptions())

	text := strings.Repeat("Go is neat. ", 40)
	_, err := engine.SummarizeDocument(ctx, text)

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, gen.calls())
}

func TestEngine_SoftCapOverageIsNotAnError(t *testing.T) {
	long := strings.Repeat("This summary runs long. ", 30)
	gen := &fakeGenerator{respond: constantResponse(long)}

	opts := testOptions()
	opts.MaxLength = 50
	engine := newTestEngine(gen, opts)

	summary, err := engine.SummarizeDocument(context.Background(), "tiny input")
	require.NoError(t, err)
	assert.Greater(t, len(summary), opts.MaxLength, "oversized summary is returned, not truncated")
}

func TestEngine_WorkedScenario(t *testing.T) {
	// 850k characters, 400k threshold, 100k-unit budget: exactly 3 chunk
	// calls plus 1 final call.
	text := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 18889)

	gen := &fakeGenerator{respond: constantResponse("A compact summary of the section.")}
	engine := newTestEngine(gen, Options{
		ChunkingEnabled: true,
		ChunkThreshold:  400000,
		ChunkUnits:      100000,
		MaxLength:       3000,
		ChunkMaxLength:  1000,
	})

	_, err := engine.SummarizeDocument(context.Background(), text)
	require.NoError(t, err)
	assert.Equal(t, 4, gen.calls())
}
