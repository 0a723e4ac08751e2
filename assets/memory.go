package assets

import (
	"context"
	"io"
	"sync"
)

// MemoryStore keeps uploads in process. Used with assets.Driver=memory for
// local runs and in tests.
type MemoryStore struct {
	BaseURL string

	mu      sync.Mutex
	objects map[string][]byte
}

func NewMemoryStore(baseURL string) *MemoryStore {
	return &MemoryStore{BaseURL: baseURL, objects: make(map[string][]byte)}
}

func (m *MemoryStore) Upload(_ context.Context, folder, filename, _ string, body io.Reader, _ int64) (*Asset, error) {
	key, err := objectKey(folder, filename)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return &Asset{URL: m.BaseURL + "/" + key, ID: key}, nil
}

func (m *MemoryStore) Delete(_ context.Context, assetID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.objects[assetID]; !ok {
		return ErrAssetNotFound
	}
	delete(m.objects, assetID)
	return nil
}

func (m *MemoryStore) Has(assetID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[assetID]
	return ok
}

func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}
