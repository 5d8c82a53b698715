package events

import "sync"

// Record is an event with its position in the log. Sequence numbers start at
// one and never repeat.
type Record struct {
	Sequence uint64
	Event    Event
}

// Log is an append-only, sequence-numbered event log. It implements Emitter so
// it can be wired directly into the engine; entries are never retracted or
// mutated after emission.
type Log struct {
	mu      sync.RWMutex
	records []Record
}

// NewLog creates an empty event log.
func NewLog() *Log {
	return &Log{}
}

// Emit implements the Emitter interface.
func (l *Log) Emit(e Event) {
	if e == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, Record{
		Sequence: uint64(len(l.records) + 1),
		Event:    e,
	})
}

// Len returns the number of records in the log.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

// Since returns up to limit records with sequence numbers strictly greater
// than after, in emission order. A limit of zero or less returns all matching
// records.
func (l *Log) Since(after uint64, limit int) []Record {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if after >= uint64(len(l.records)) {
		return nil
	}
	tail := l.records[after:]
	if limit > 0 && limit < len(tail) {
		tail = tail[:limit]
	}
	out := make([]Record, len(tail))
	copy(out, tail)
	return out
}
