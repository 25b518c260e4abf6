package output

import (
	"fmt"
	"io"
	"sync"
)

// ProgressPrinter renders progress lines from the collector's progress hook.
// It prints every Nth completion and always on the final one, so short runs
// still end on an accurate line.
type ProgressPrinter struct {
	mu     sync.Mutex
	writer io.Writer
	every  int64
}

// NewProgressPrinter creates a printer that reports every `every` completed
// requests. An interval below 1 is coerced to 1.
func NewProgressPrinter(w io.Writer, every int) *ProgressPrinter {
	if w == nil {
		w = io.Discard
	}
	if every < 1 {
		every = 1
	}
	return &ProgressPrinter{writer: w, every: int64(every)}
}

// Update is the metrics.ProgressFunc consumer. Safe for concurrent use; the
// hook fires from whichever worker recorded the outcome.
func (p *ProgressPrinter) Update(completed, total int64) {
	if completed%p.every != 0 && completed != total {
		return
	}

	percent := 100.0
	if total > 0 {
		percent = float64(completed) / float64(total) * 100
	}

	p.mu.Lock()
	fmt.Fprintf(p.writer, "\rProgress: %.2f%% (%d/%d)", percent, completed, total)
	p.mu.Unlock()
}

// Finish terminates the progress line.
func (p *ProgressPrinter) Finish() {
	p.mu.Lock()
	fmt.Fprintln(p.writer)
	p.mu.Unlock()
}
