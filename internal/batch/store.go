// Package batch drives summarization over a folder of documents with
// flat-file resumability.
package batch

import (
	"os"
	"path/filepath"

	"github.com/spherical-ai/summary-engine/internal/domain"
)

// Store persists summaries to the output folder. The presence of a
// summary file is the sole completion marker for its document: there is
// no separate state to keep consistent across runs.
type Store struct {
	dir string
}

// NewStore creates a result store over the given directory.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the output directory.
func (s *Store) Dir() string {
	return s.dir
}

// EnsureDir creates the output directory if it does not exist.
func (s *Store) EnsureDir() error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return domain.IOError("failed to create output directory", err)
	}
	return nil
}

// SummaryPath returns where the document's summary lives: the document's
// base name with the fixed summary extension, inside the output folder.
func (s *Store) SummaryPath(doc domain.Document) string {
	return filepath.Join(s.dir, doc.SummaryName())
}

// Exists reports whether a summary has already been written for the
// document.
func (s *Store) Exists(doc domain.Document) bool {
	info, err := os.Stat(s.SummaryPath(doc))
	return err == nil && !info.IsDir()
}

// Write persists the document's summary.
func (s *Store) Write(doc domain.Document, summary string) error {
	if err := os.WriteFile(s.SummaryPath(doc), []byte(summary), 0644); err != nil {
		return domain.IOError("failed to write summary", err)
	}
	return nil
}
