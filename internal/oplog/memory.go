package oplog

import (
	"sync"
	"time"
)

// MemoryRepository is an in-memory Repository for tests.
type MemoryRepository struct {
	mu      sync.Mutex
	entries []Entry
	nextID  int64
}

// NewMemoryRepository returns an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{nextID: 1}
}

func (r *MemoryRepository) Save(entry *Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	entry.ID = r.nextID
	r.nextID++
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *MemoryRepository) List(limit int) ([]Entry, error) {
	return r.list(limit, func(Entry) bool { return true })
}

func (r *MemoryRepository) ListByOperation(operation string, limit int) ([]Entry, error) {
	return r.list(limit, func(e Entry) bool { return e.Operation == operation })
}

func (r *MemoryRepository) list(limit int, keep func(Entry) bool) ([]Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Entry
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if keep(r.entries[i]) {
			out = append(out, r.entries[i])
		}
	}
	return out, nil
}

func (r *MemoryRepository) Prune(olderThan time.Duration) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := time.Now().UTC().Add(-olderThan)
	kept := r.entries[:0]
	var removed int64
	for _, e := range r.entries {
		if e.Timestamp.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	r.entries = kept
	return removed, nil
}

func (r *MemoryRepository) Close() error { return nil }
