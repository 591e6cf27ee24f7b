package storage

import (
	"context"
	"sync"

	"github.com/johnquangdev/meeting-capture/internal/domain/entities"
	"github.com/johnquangdev/meeting-capture/internal/domain/gateways"
)

// MemoryNotesStore keeps pages in memory; used in mock mode
type MemoryNotesStore struct {
	mu    sync.RWMutex
	pages map[string]gateways.NotesPage
}

var _ gateways.NotesStore = (*MemoryNotesStore)(nil)

// NewMemoryNotesStore creates a new in-memory notes store
func NewMemoryNotesStore() *MemoryNotesStore {
	return &MemoryNotesStore{pages: make(map[string]gateways.NotesPage)}
}

// PutPage stores or replaces the page for key
func (s *MemoryNotesStore) PutPage(ctx context.Context, key string, page gateways.NotesPage) (*entities.PageRef, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	objectName := ObjectName(page, key)

	s.mu.Lock()
	s.pages[objectName] = page
	s.mu.Unlock()

	return &entities.PageRef{Key: objectName, URL: "memory://" + objectName}, nil
}

// Get returns a stored page by object name
func (s *MemoryNotesStore) Get(objectName string) (gateways.NotesPage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.pages[objectName]
	return p, ok
}

// Len returns the number of stored pages
func (s *MemoryNotesStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pages)
}
