package importrun

import (
	"context"
	"strconv"
	"sync"

	"projimport/internal/entity"
)

// Persister stores New Records and assigns their new ids.
type Persister interface {
	Persist(ctx context.Context, kind entity.Kind, rec any) (newID string, err error)
}

// MemoryPersister keeps records in memory and assigns sequential ids. It is
// safe for concurrent use.
type MemoryPersister struct {
	mu      sync.Mutex
	next    int64
	records map[entity.Kind][]any
}

// NewMemoryPersister creates a persister whose first id is firstID.
func NewMemoryPersister(firstID int64) *MemoryPersister {
	return &MemoryPersister{next: firstID, records: make(map[entity.Kind][]any)}
}

// Persist implements Persister.
func (m *MemoryPersister) Persist(_ context.Context, kind entity.Kind, rec any) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.next
	m.next++
	m.records[kind] = append(m.records[kind], rec)

	return strconv.FormatInt(id, 10), nil
}

// Records returns the records persisted for kind, in persist order.
func (m *MemoryPersister) Records(kind entity.Kind) []any {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]any(nil), m.records[kind]...)
}
