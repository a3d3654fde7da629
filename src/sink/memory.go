package sink

import (
	"context"
	"sync"

	"github.com/strikepick/strikepick/src/models"
)

// MemorySink collects audit rows in memory. Used by tests and dry runs.
type MemorySink struct {
	mu      sync.Mutex
	records []*models.SelectionRecord
}

func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Write(ctx context.Context, record *models.SelectionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, record)
	return nil
}

func (s *MemorySink) Records() []*models.SelectionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*models.SelectionRecord, len(s.records))
	copy(out, s.records)
	return out
}

func (s *MemorySink) Close() error {
	return nil
}
