package domain

import (
	"path/filepath"
	"strings"
	"time"
)

// SummaryExtension is the fixed extension for persisted summaries,
// regardless of the source document kind.
const SummaryExtension = ".txt"

// DocumentKind identifies how a document's text is obtained.
type DocumentKind string

const (
	KindPDF  DocumentKind = "pdf"
	KindText DocumentKind = "text"
)

// kindsByExtension maps recognized file extensions (lowercase) to kinds.
var kindsByExtension = map[string]DocumentKind{
	".pdf": KindPDF,
	".txt": KindText,
}

// KindForPath returns the document kind for a file path based on its
// extension, matched case-insensitively. ok is false when the extension
// is not recognized.
func KindForPath(path string) (DocumentKind, bool) {
	kind, ok := kindsByExtension[strings.ToLower(filepath.Ext(path))]
	return kind, ok
}

// Document represents a source file discovered in the input folder.
// Extracted text is passed through the pipeline and not retained after
// the summary is persisted.
type Document struct {
	Name string // file name within the input folder
	Path string // full path to the source file
	Kind DocumentKind
}

// SummaryName returns the summary file name for the document: the base
// name with the original extension replaced by SummaryExtension.
func (d Document) SummaryName() string {
	base := strings.TrimSuffix(d.Name, filepath.Ext(d.Name))
	return base + SummaryExtension
}

// RunStats aggregates the outcome of a batch run.
type RunStats struct {
	RunID      string
	Discovered int
	Skipped    int
	Completed  int
	Failed     int
	Elapsed    time.Duration
}

// Processed returns the number of documents that went through the engine.
func (s *RunStats) Processed() int {
	return s.Completed + s.Failed
}
