package cache

import (
	"context"
	"sort"
	"sync"

	"github.com/johnquangdev/meeting-capture/internal/domain/entities"
	"github.com/johnquangdev/meeting-capture/internal/domain/gateways"
)

// MemoryContextStore is the in-process context store used in mock mode
type MemoryContextStore struct {
	mu     sync.RWMutex
	scopes map[string]map[string]gateways.ContextEntry
}

var (
	_ gateways.ContextStore  = (*MemoryContextStore)(nil)
	_ gateways.ContextReader = (*MemoryContextStore)(nil)
)

// NewMemoryContextStore creates a new in-memory context store
func NewMemoryContextStore() *MemoryContextStore {
	return &MemoryContextStore{
		scopes: make(map[string]map[string]gateways.ContextEntry),
	}
}

// PutDecision stores the entry unless key is already present
func (ms *MemoryContextStore) PutDecision(ctx context.Context, key string, entry gateways.ContextEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	scopeKey := DecisionsKey(entry.Scope)
	items, ok := ms.scopes[scopeKey]
	if !ok {
		items = make(map[string]gateways.ContextEntry)
		ms.scopes[scopeKey] = items
	}
	if _, exists := items[key]; !exists {
		items[key] = entry
	}
	return nil
}

// ListDecisions returns the decisions recorded in a scope, oldest first
func (ms *MemoryContextStore) ListDecisions(ctx context.Context, scope entities.Scope) ([]gateways.ContextEntry, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	items := ms.scopes[DecisionsKey(scope)]
	entries := make([]gateways.ContextEntry, 0, len(items))
	for _, e := range items {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].RecordedAt.Before(entries[j].RecordedAt)
	})
	return entries, nil
}
