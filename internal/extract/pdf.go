package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"

	"github.com/spherical-ai/summary-engine/internal/domain"
)

// extractPDF pulls the text layer out of a PDF page by page.
func (s *Service) extractPDF(ctx context.Context, path string) (string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", domain.ExtractionError("failed to open PDF", err)
	}
	defer doc.Close()

	pageCount := doc.NumPage()
	if pageCount == 0 {
		return "", domain.ExtractionError("PDF has no pages", nil)
	}

	var text strings.Builder
	for pageNum := 0; pageNum < pageCount; pageNum++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		pageText, err := doc.Text(pageNum)
		if err != nil {
			return "", domain.ExtractionError(fmt.Sprintf("failed to extract text from page %d", pageNum+1), err)
		}

		if text.Len() > 0 {
			text.WriteString("\n")
		}
		text.WriteString(pageText)
	}

	return text.String(), nil
}
