package tour

import (
	"context"
	"sync"
)

// Store exposes the tour collection to services.
type Store interface {
	List(ctx context.Context) ([]Tour, error)
	FindByID(ctx context.Context, id int) (Tour, bool, error)
	Count(ctx context.Context) (int, error)
	// Create assigns the next id, appends the tour and persists the collection.
	Create(ctx context.Context, fields *Fields) (Tour, error)
}

// MemoryStore implements Store with an in-memory slice and no persistence.
type MemoryStore struct {
	mu    sync.RWMutex
	items []Tour
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied tours.
func NewMemoryStore(items []Tour) *MemoryStore {
	return &MemoryStore{items: append([]Tour(nil), items...)}
}

func (s *MemoryStore) List(_ context.Context) ([]Tour, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Tour(nil), s.items...), nil
}

func (s *MemoryStore) FindByID(_ context.Context, id int) (Tour, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := Find(s.items, id)
	return t, ok, nil
}

func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items), nil
}

func (s *MemoryStore) Create(_ context.Context, fields *Fields) (Tour, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	created, err := Merge(fields, func() (int, error) { return NextID(s.items) })
	if err != nil {
		return Tour{}, err
	}
	s.items = append(s.items, created)
	return created, nil
}

// Find scans tours for the first record with the given id.
func Find(tours []Tour, id int) (Tour, bool) {
	for _, item := range tours {
		if item.ID == id {
			return item, true
		}
	}
	return Tour{}, false
}
