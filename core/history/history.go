// Package history keeps the in-memory log of successful conversions,
// most recent first. Entries are immutable once recorded: the log stores
// its own copy of the records and hands out copies.
package history

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gaurav-prasanna/qbformat/core"
)

// TimestampLayout is the hour:minute form shown next to each entry.
const TimestampLayout = "15:04"

// Entry is one recorded conversion.
type Entry struct {
	ID        string              `json:"id"`
	Label     string              `json:"label"`
	Data      []core.OutputRecord `json:"data"`
	Count     int                 `json:"count"`
	Timestamp string              `json:"timestamp"`

	Taxonomy    core.Taxonomy `json:"-"`
	SourceLabel string        `json:"-"`
	CreatedAt   time.Time     `json:"-"`
}

// Batch rebuilds the renderable batch of an entry.
func (e Entry) Batch() core.Batch {
	return core.Batch{
		Records:     cloneRecords(e.Data),
		SourceLabel: e.SourceLabel,
		Taxonomy:    e.Taxonomy,
		ConvertedAt: e.CreatedAt,
	}
}

// Log is a bounded, concurrency-safe history list.
type Log struct {
	mu      sync.RWMutex
	entries []Entry
	limit   int

	now   func() time.Time
	newID func() string
}

// Option configures a Log.
type Option func(*Log)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(l *Log) { l.now = now }
}

// WithIDs overrides the identifier generator.
func WithIDs(newID func() string) Option {
	return func(l *Log) { l.newID = newID }
}

// New creates a Log holding at most limit entries (0 means unlimited).
func New(limit int, opts ...Option) *Log {
	l := &Log{
		limit: limit,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Record prepends an entry for batch and returns it. The oldest entry
// is dropped once the limit is reached.
func (l *Log) Record(batch core.Batch) Entry {
	created := batch.ConvertedAt
	if created.IsZero() {
		created = l.now()
	}

	entry := Entry{
		ID:          l.newID(),
		Label:       batch.Label(),
		Data:        cloneRecords(batch.Records),
		Count:       len(batch.Records),
		Timestamp:   created.Format(TimestampLayout),
		Taxonomy:    batch.Taxonomy,
		SourceLabel: batch.SourceLabel,
		CreatedAt:   created,
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append([]Entry{entry}, l.entries...)
	if l.limit > 0 && len(l.entries) > l.limit {
		l.entries = l.entries[:l.limit]
	}
	return copyEntry(entry)
}

// List returns all entries, most recent first.
func (l *Log) List() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Entry, len(l.entries))
	for i, e := range l.entries {
		out[i] = copyEntry(e)
	}
	return out
}

// Get returns the entry with the given id.
func (l *Log) Get(id string) (Entry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, e := range l.entries {
		if e.ID == id {
			return copyEntry(e), true
		}
	}
	return Entry{}, false
}

// Len returns the number of entries.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Clear removes every entry.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}

func copyEntry(e Entry) Entry {
	e.Data = cloneRecords(e.Data)
	return e
}

func cloneRecords(records []core.OutputRecord) []core.OutputRecord {
	if records == nil {
		return nil
	}
	out := make([]core.OutputRecord, len(records))
	copy(out, records)
	return out
}
