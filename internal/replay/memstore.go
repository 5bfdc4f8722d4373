package replay

import (
	"sort"
	"sync"

	"github.com/memetcircus/whisper-core/internal/domain"
)

// MemStore is an in-memory Store for tests and ephemeral callers.
type MemStore struct {
	mu      sync.Mutex
	entries map[domain.MessageID]Entry
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{entries: make(map[domain.MessageID]Entry)}
}

func (s *MemStore) Has(id domain.MessageID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[id]
	return ok, nil
}

func (s *MemStore) Put(e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[e.MessageID] = e
	return nil
}

func (s *MemStore) Len() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries), nil
}

func (s *MemStore) PurgeBefore(receivedBefore int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, e := range s.entries {
		if e.ReceivedAt < receivedBefore {
			delete(s.entries, id)
			removed++
		}
	}
	return removed, nil
}

func (s *MemStore) EvictOldest(n int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n <= 0 || len(s.entries) == 0 {
		return 0, nil
	}
	all := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ReceivedAt < all[j].ReceivedAt })
	if n > len(all) {
		n = len(all)
	}
	for _, e := range all[:n] {
		delete(s.entries, e.MessageID)
	}
	return n, nil
}

func (s *MemStore) Close() error { return nil }

var _ Store = (*MemStore)(nil)
