package potatolog

import (
	"encoding/json"
	"fmt"
	"sync"
)

// LogEntry is a single log entry.
type LogEntry = map[string]any

// GlobalMemoryLogReaderWriter is the log the TUI's status bar reads from.
var GlobalMemoryLogReaderWriter = MemoryLogReaderWriter{Capacity: 1000}

// MemoryLogReaderWriter is an in-memory sink for zerolog's JSON output.
// It is safe for concurrent use.
type MemoryLogReaderWriter struct {
	// Capacity bounds the number of entries kept, dropping the oldest first.
	// Zero means unbounded.
	Capacity int

	mtx     sync.Mutex
	log     []LogEntry
	dropped int
}

// Write appends a log entry to the log.
func (w *MemoryLogReaderWriter) Write(p []byte) (int, error) {
	entry := LogEntry{}
	err := json.Unmarshal(p, &entry)
	if err != nil {
		return 0, fmt.Errorf("could not unmarshal log entry (err:%s) (input:'%s')", err.Error(), string(p))
	}

	w.mtx.Lock()
	defer w.mtx.Unlock()
	w.log = append(w.log, entry)
	if w.Capacity > 0 && len(w.log) > w.Capacity {
		excess := len(w.log) - w.Capacity
		w.log = append(w.log[:0:0], w.log[excess:]...)
		w.dropped += excess
	}
	return len(p), nil
}

// Dropped returns how many entries were dropped for capacity.
func (w *MemoryLogReaderWriter) Dropped() int {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	return w.dropped
}

// Get returns a copy of the log.
func (w *MemoryLogReaderWriter) Get() []LogEntry {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	result := make([]LogEntry, len(w.log))
	copy(result, w.log)
	return result
}

// Latest returns the most recent entry with one of the given levels, if any.
func (w *MemoryLogReaderWriter) Latest(levels ...string) (LogEntry, bool) {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	for i := len(w.log) - 1; i >= 0; i-- {
		for _, level := range levels {
			if w.log[i]["level"] == level {
				return w.log[i], true
			}
		}
	}
	return nil, false
}

// LogReader allows reading access to a log.
type LogReader interface {
	Get() []LogEntry
	Latest(levels ...string) (LogEntry, bool)
}
