package commands

import (
	"fmt"

	"github.com/spherical-ai/summary-engine/internal/config"
	"github.com/spherical-ai/summary-engine/internal/llm"
	"github.com/spherical-ai/summary-engine/internal/observability"
	"github.com/spherical-ai/summary-engine/internal/summarize"
)

// buildGenerator creates the generation client from config.
func buildGenerator(cfg *config.Config, logger *observability.Logger) (*llm.Client, error) {
	client, err := llm.NewClient(llm.Config{
		BaseURL:           cfg.Generation.BaseURL,
		Model:             cfg.Generation.Model,
		Timeout:           cfg.Generation.Timeout,
		Temperature:       cfg.Generation.Temperature,
		TopP:              cfg.Generation.TopP,
		MaxResponseLength: cfg.Summary.MaxLength,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("create generation client: %w", err)
	}
	return client, nil
}

// buildPrompts assembles the prompt templates: built-in defaults rendered
// with the configured length targets, with non-empty config entries taking
// precedence.
func buildPrompts(cfg *config.Config) (llm.Prompts, error) {
	prompts := llm.DefaultPrompts(cfg.Summary.MaxLength, cfg.Summary.ChunkMaxLength)
	if cfg.Prompts.Document != "" {
		prompts.Document = cfg.Prompts.Document
	}
	if cfg.Prompts.Chunk != "" {
		prompts.Chunk = cfg.Prompts.Chunk
	}
	if cfg.Prompts.Final != "" {
		prompts.Final = cfg.Prompts.Final
	}
	if err := prompts.Validate(); err != nil {
		return llm.Prompts{}, fmt.Errorf("validate prompt templates: %w", err)
	}
	return prompts, nil
}

// buildEngine creates the summarization engine from config.
func buildEngine(cfg *config.Config, generator *llm.Client, logger *observability.Logger) (*summarize.Engine, error) {
	prompts, err := buildPrompts(cfg)
	if err != nil {
		return nil, err
	}
	return summarize.NewEngine(generator, prompts, summarize.Options{
		ChunkingEnabled: cfg.Chunking.Enabled,
		ChunkThreshold:  cfg.Chunking.SizeThreshold,
		ChunkUnits:      cfg.Chunking.MaxUnits,
		MaxLength:       cfg.Summary.MaxLength,
		ChunkMaxLength:  cfg.Summary.ChunkMaxLength,
	}, logger), nil
}
