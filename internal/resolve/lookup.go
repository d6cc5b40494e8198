package resolve

import (
	"context"
	"maps"
	"sync"
)

// KeyLookup finds the current id of an issue in the destination system by
// its issue key. ok is false when no such issue exists.
type KeyLookup interface {
	IssueIDByKey(ctx context.Context, key string) (id string, ok bool, err error)
}

// KeyLookupFunc adapts a function to the KeyLookup interface.
type KeyLookupFunc func(ctx context.Context, key string) (string, bool, error)

// IssueIDByKey calls f(ctx, key).
func (f KeyLookupFunc) IssueIDByKey(ctx context.Context, key string) (string, bool, error) {
	return f(ctx, key)
}

// KeyIndex is an in-memory KeyLookup. It is safe for concurrent use.
type KeyIndex struct {
	mu    sync.RWMutex
	byKey map[string]string
}

// NewKeyIndex creates an index from a key → id map. The map is copied.
func NewKeyIndex(entries map[string]string) *KeyIndex {
	idx := &KeyIndex{byKey: make(map[string]string, len(entries))}
	maps.Copy(idx.byKey, entries)

	return idx
}

// Put records that the issue with key has the given id.
func (idx *KeyIndex) Put(key, id string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.byKey[key] = id
}

// IssueIDByKey implements KeyLookup.
func (idx *KeyIndex) IssueIDByKey(_ context.Context, key string) (string, bool, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	id, ok := idx.byKey[key]
	if !ok || id == "" {
		return "", false, nil
	}

	return id, true, nil
}
