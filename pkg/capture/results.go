package capture

import (
	"sync"

	"github.com/vapvarun/docshot/pkg/annotate"
)

// Results accumulates capture outcomes and renderer commands for one
// session. It replaces process-global tracking: the Runner owns one
// Results value, resets it at session start, and every outcome is
// recorded through it.
type Results struct {
	mu       sync.Mutex
	success  []string
	failed   []string
	skipped  []string
	commands []annotate.BatchEntry
}

// NewResults returns an empty results accumulator.
func NewResults() *Results {
	return &Results{}
}

// Reset clears all recorded outcomes. Called at session start.
func (r *Results) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.success = nil
	r.failed = nil
	r.skipped = nil
	r.commands = nil
}

// RecordSuccess records a successfully captured filename.
func (r *Results) RecordSuccess(filename string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.success = append(r.success, filename)
}

// RecordFailed records a capture that failed after all retries.
func (r *Results) RecordFailed(filename string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failed = append(r.failed, filename)
}

// RecordSkipped records a capture skipped before any attempt, e.g. when
// its tab could not be clicked or it was filtered out.
func (r *Results) RecordSkipped(filename string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.skipped = append(r.skipped, filename)
}

// AddCommands records one image's renderer commands for the session
// batch file.
func (r *Results) AddCommands(entry annotate.BatchEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands = append(r.commands, entry)
}

// Success returns the captured filenames.
func (r *Results) Success() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.success...)
}

// Failed returns the failed filenames.
func (r *Results) Failed() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.failed...)
}

// Skipped returns the skipped filenames.
func (r *Results) Skipped() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.skipped...)
}

// BatchEntries returns the accumulated renderer commands.
func (r *Results) BatchEntries() []annotate.BatchEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]annotate.BatchEntry(nil), r.commands...)
}

// Total returns the number of captures attempted or skipped.
func (r *Results) Total() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.success) + len(r.failed) + len(r.skipped)
}
