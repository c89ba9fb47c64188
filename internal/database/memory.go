package database

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-process DocumentStore. Documents keep insertion order.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string][]Document
	failWith    error
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string][]Document)}
}

// Put stores data under id in the collection, replacing any existing document
// with that ID. An empty id gets a generated one. The assigned ID is returned.
func (m *MemoryStore) Put(collection, id string, data map[string]interface{}) string {
	if id == "" {
		id = uuid.New().String()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	docs := m.collections[collection]
	for i := range docs {
		if docs[i].ID == id {
			docs[i].Data = copyFields(data)
			return id
		}
	}
	m.collections[collection] = append(docs, Document{ID: id, Data: copyFields(data)})
	return id
}

// FailWith makes every subsequent read return err. A nil err clears it.
func (m *MemoryStore) FailWith(err error) {
	m.mu.Lock()
	m.failWith = err
	m.mu.Unlock()
}

// GetAll returns copies of all documents in the collection.
func (m *MemoryStore) GetAll(ctx context.Context, collection string) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.failWith != nil {
		return nil, m.failWith
	}

	docs := make([]Document, 0, len(m.collections[collection]))
	for _, d := range m.collections[collection] {
		docs = append(docs, Document{ID: d.ID, Data: copyFields(d.Data)})
	}
	return docs, nil
}

// Get returns a copy of the document with the given ID.
func (m *MemoryStore) Get(ctx context.Context, collection, id string) (*Document, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.failWith != nil {
		return nil, false, m.failWith
	}

	for _, d := range m.collections[collection] {
		if d.ID == id {
			return &Document{ID: d.ID, Data: copyFields(d.Data)}, true, nil
		}
	}
	return nil, false, nil
}

func copyFields(data map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}
