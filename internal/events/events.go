package events

import (
	model "auction-engine/internal/models"
	"sync"
)

// Log is an append-only record of lifecycle transitions. Entries are never
// mutated or removed once appended.
type Log interface {
	Append(event model.Event)
	ByAuction(auctionID uint64) []model.Event
	All() []model.Event
}

// MemoryLog is a concurrency-safe in-memory Log.
type MemoryLog struct {
	mu      sync.RWMutex
	entries []model.Event
}

// NewMemoryLog creates an empty event log.
func NewMemoryLog() *MemoryLog {
	return &MemoryLog{}
}

// Append adds an event to the log.
func (l *MemoryLog) Append(event model.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, event)
}

// ByAuction returns the events for one auction in append order.
func (l *MemoryLog) ByAuction(auctionID uint64) []model.Event {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]model.Event, 0)
	for _, e := range l.entries {
		if e.AuctionID == auctionID {
			out = append(out, e)
		}
	}
	return out
}

// All returns a copy of the whole log in append order.
func (l *MemoryLog) All() []model.Event {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]model.Event(nil), l.entries...)
}
