// Package chatlog keeps the full ordered transcript of one advisory
// session. Entries are append-only; Reset is the only way to drop them.
package chatlog

import (
	"sync"
	"time"

	"github.com/omkarP-bit/Dreamers-AgriTech/internal/core"
)

type Log struct {
	mu      sync.RWMutex
	entries []core.Entry
}

func New() *Log {
	return &Log{}
}

// Append records an utterance. The timestamp is assigned here so entries are
// always ordered by insertion.
func (l *Log) Append(speaker, text string, metadata map[string]string) core.Entry {
	entry := core.Entry{
		Speaker:   speaker,
		Text:      text,
		Timestamp: time.Now().UTC(),
		Metadata:  metadata,
	}

	l.mu.Lock()
	l.entries = append(l.entries, entry)
	l.mu.Unlock()
	return entry
}

// Restore seeds the log with previously persisted entries, keeping their
// original timestamps.
func (l *Log) Restore(entries []core.Entry) {
	l.mu.Lock()
	l.entries = append(l.entries, entries...)
	l.mu.Unlock()
}

func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// All returns a copy of the transcript in insertion order.
func (l *Log) All() []core.Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]core.Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Tail returns the last n entries in insertion order. n <= 0 returns nil.
func (l *Log) Tail(n int) []core.Entry {
	if n <= 0 {
		return nil
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	start := len(l.entries) - n
	if start < 0 {
		start = 0
	}
	out := make([]core.Entry, len(l.entries)-start)
	copy(out, l.entries[start:])
	return out
}

func (l *Log) Reset() {
	l.mu.Lock()
	l.entries = nil
	l.mu.Unlock()
}
