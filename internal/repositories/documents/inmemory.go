package documents

import (
	"context"
	"sync"

	dnderr "github.com/KirkDiggler/dnd-creation-engine/internal/errors"
)

// InMemoryRepository keeps cached documents in process memory
type InMemoryRepository struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewInMemoryRepository creates an empty in-memory document cache
func NewInMemoryRepository() Repository {
	return &InMemoryRepository{
		docs: make(map[string][]byte),
	}
}

func (r *InMemoryRepository) Get(ctx context.Context, path string) ([]byte, error) {
	if path == "" {
		return nil, dnderr.InvalidArgument("path is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	data, exists := r.docs[path]
	if !exists {
		return nil, dnderr.NotFoundf("document '%s' not cached", path).
			WithMeta("path", path)
	}

	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (r *InMemoryRepository) Set(ctx context.Context, path string, data []byte) error {
	if path == "" {
		return dnderr.InvalidArgument("path is required")
	}

	stored := make([]byte, len(data))
	copy(stored, data)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[path] = stored

	return nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.docs, path)
	return nil
}
