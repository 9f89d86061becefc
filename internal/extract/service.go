// Package extract obtains raw text from source documents.
package extract

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spherical-ai/summary-engine/internal/domain"
	"github.com/spherical-ai/summary-engine/internal/observability"
)

// Service resolves a document's text by its kind. It implements
// domain.TextExtractor.
type Service struct {
	logger *observability.Logger
}

// NewService creates a new extraction service.
func NewService(logger *observability.Logger) *Service {
	if logger == nil {
		logger = observability.DefaultLogger()
	}
	return &Service{
		logger: logger.WithOperation("extract"),
	}
}

// Extract returns the full text of the document. A document that yields
// no text is an extraction error: there is nothing to summarize.
func (s *Service) Extract(ctx context.Context, doc domain.Document) (string, error) {
	var (
		text string
		err  error
	)

	switch doc.Kind {
	case domain.KindPDF:
		text, err = s.extractPDF(ctx, doc.Path)
	case domain.KindText:
		text, err = s.extractTextFile(doc.Path)
	default:
		return "", domain.ExtractionError(fmt.Sprintf("unsupported document kind %q", doc.Kind), nil)
	}
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		return "", domain.ExtractionError(fmt.Sprintf("no text extracted from %s", doc.Name), nil)
	}

	s.logger.Debug().
		Str("document", doc.Name).
		Str("kind", string(doc.Kind)).
		Int("chars", len(text)).
		Msg("Extracted document text")

	return text, nil
}

// extractTextFile reads a plain-text document.
func (s *Service) extractTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", domain.ExtractionError("failed to read text file", err)
	}

	if !utf8.Valid(data) {
		return "", domain.ExtractionError("text file is not valid UTF-8", nil)
	}

	return string(data), nil
}
