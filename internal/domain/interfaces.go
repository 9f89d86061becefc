package domain

import "context"

// TextExtractor defines the interface for obtaining a document's raw text
type TextExtractor interface {
	// Extract returns the full text of the document
	Extract(ctx context.Context, doc Document) (string, error)
}

// Generator defines the interface for the text-generation backend
type Generator interface {
	// Generate sends a prompt and returns the generated text
	Generate(ctx context.Context, prompt string) (string, error)
}

// Summarizer defines the interface for turning document text into a summary
type Summarizer interface {
	// SummarizeDocument produces a finished, formatted summary
	SummarizeDocument(ctx context.Context, text string) (string, error)
}
