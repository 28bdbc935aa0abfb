package documents

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"

	dnderr "github.com/KirkDiggler/dnd-creation-engine/internal/errors"
)

// MemorySource serves documents held in memory. Directories are implied by
// the stored paths.
type MemorySource struct {
	mu    sync.RWMutex
	files map[string][]byte
	fail  error
}

// NewMemorySource creates an empty in-memory source
func NewMemorySource() *MemorySource {
	return &MemorySource{files: make(map[string][]byte)}
}

// Put stores raw bytes at a path
func (s *MemorySource) Put(path string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[strings.Trim(path, "/")] = data
}

// PutJSON marshals v and stores it at a path
func (s *MemorySource) PutJSON(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return dnderr.Wrap(err, "failed to encode document")
	}
	s.Put(path, data)
	return nil
}

// Remove deletes a stored path
func (s *MemorySource) Remove(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, strings.Trim(path, "/"))
}

// FailWith makes every call return err until it is reset with nil
func (s *MemorySource) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = err
}

func (s *MemorySource) List(ctx context.Context, dir string) ([]DirectoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.fail != nil {
		return nil, s.fail
	}

	prefix := strings.Trim(dir, "/")
	if prefix != "" {
		prefix += "/"
	}

	seen := make(map[string]bool)
	var entries []DirectoryEntry
	for p := range s.files {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		rest := strings.TrimPrefix(p, prefix)
		name, _, nested := strings.Cut(rest, "/")
		if seen[name] {
			continue
		}
		seen[name] = true

		typ := EntryFile
		if nested {
			typ = EntryDir
		}
		entries = append(entries, DirectoryEntry{Type: typ, Name: name, Path: prefix + name})
	}
	if len(entries) == 0 {
		return nil, dnderr.NotFoundf("directory '%s' not found", dir).WithMeta("path", dir)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

func (s *MemorySource) Fetch(ctx context.Context, path string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.fail != nil {
		return nil, s.fail
	}

	data, ok := s.files[strings.Trim(path, "/")]
	if !ok {
		return nil, dnderr.NotFoundf("document '%s' not found", path).WithMeta("path", path)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}
