package sink

import (
	"context"
	"sync"

	"payermatch/internal/core"
)

// MemorySink collects persisted records in memory. Used for dry runs and
// tests.
type MemorySink struct {
	mu      sync.Mutex
	records []core.Record
}

// NewMemorySink creates an empty in-memory sink
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Persist stores a copy of the record
func (s *MemorySink) Persist(ctx context.Context, record core.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record.Clone())
	return nil
}

// Records returns copies of every persisted record in arrival order.
func (s *MemorySink) Records() []core.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]core.Record, len(s.records))
	for i, r := range s.records {
		out[i] = r.Clone()
	}
	return out
}
