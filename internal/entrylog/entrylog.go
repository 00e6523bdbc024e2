// Package entrylog keeps the bounded, newest-first log of analysis records.
package entrylog

import (
	"sync"

	"hydration-backend/internal/analysis"
)

// Capacity is the maximum number of retained entries; the oldest is evicted
// on overflow.
const Capacity = 8

// Log is an append-at-head, capacity-bounded collection of records. The
// running total is recomputed as a fresh sum on every mutation so rounding
// drift can never accumulate.
type Log struct {
	mu      sync.RWMutex
	entries []analysis.Record
	total   float64
}

// New constructs an empty log.
func New() *Log {
	return &Log{entries: make([]analysis.Record, 0, Capacity)}
}

// Register inserts the record at the head, evicting from the tail when the
// log is full, and recomputes the running total.
func (l *Log) Register(record analysis.Record) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append([]analysis.Record{record}, l.entries...)
	if len(l.entries) > Capacity {
		l.entries = l.entries[:Capacity]
	}
	l.total = sum(l.entries)
}

// Entries returns a newest-first snapshot of the current records.
func (l *Log) Entries() []analysis.Record {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]analysis.Record, len(l.entries))
	copy(out, l.entries)
	return out
}

// CurrentTotal returns the sum of water across all current entries.
func (l *Log) CurrentTotal() float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.total
}

// Len returns the number of retained entries.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

func sum(entries []analysis.Record) float64 {
	var total float64
	for _, entry := range entries {
		total += entry.WaterOz
	}
	return total
}
