// Package prof collects wall-clock timings for coarse-grained operations
// such as key generation and decoding runs. It is used by the measurement
// tooling, not by the library itself.
package prof

import (
	"sync"
	"time"
)

// Entry is one labelled duration.
type Entry struct {
	Label string
	Dur   time.Duration
}

var (
	mu     sync.Mutex
	record []Entry
)

// Track records the time elapsed since start under label. Intended for use
// with defer or around a single call site:
//
//	start := time.Now()
//	...
//	prof.Track(start, "keygen")
func Track(start time.Time, label string) {
	elapsed := time.Since(start)
	mu.Lock()
	record = append(record, Entry{Label: label, Dur: elapsed})
	mu.Unlock()
}

// SnapshotAndReset returns everything recorded so far and clears the log.
func SnapshotAndReset() []Entry {
	mu.Lock()
	defer mu.Unlock()
	out := make([]Entry, len(record))
	copy(out, record)
	record = nil
	return out
}
