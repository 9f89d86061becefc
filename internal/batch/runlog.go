package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// RunLog is the append-only processing log: one timestamped line per
// event, written for operators and never read back by the engine.
type RunLog struct {
	mu sync.Mutex
	f  *os.File
}

// OpenRunLog opens the processing log for appending, creating it and its
// parent directory as needed.
func OpenRunLog(path string) (*RunLog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open processing log: %w", err)
	}

	return &RunLog{f: f}, nil
}

// Printf appends one line to the log, prefixed with a bracketed ISO-8601
// timestamp. Safe for concurrent use; write failures are swallowed since
// the log is a side channel, never a source of truth.
func (l *RunLog) Printf(format string, args ...any) {
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format(time.RFC3339)
	fmt.Fprintf(l.f, "[%s] %s\n", timestamp, fmt.Sprintf(format, args...))
}

// Close closes the underlying file.
func (l *RunLog) Close() error {
	if l == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.f.Close()
}
