package documents

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	dnderr "github.com/KirkDiggler/dnd-creation-engine/internal/errors"
)

type filesystemSource struct {
	root string
}

// NewFilesystem creates a source reading a local checkout of the content repository
func NewFilesystem(root string) Source {
	if root == "" {
		root = "."
	}
	return &filesystemSource{root: root}
}

func (s *filesystemSource) resolve(p string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(strings.Trim(p, "/")))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) || filepath.IsAbs(clean) {
		return "", dnderr.InvalidArgumentf("path '%s' escapes the data directory", p)
	}
	return filepath.Join(s.root, clean), nil
}

func (s *filesystemSource) List(ctx context.Context, dir string) ([]DirectoryEntry, error) {
	full, err := s.resolve(dir)
	if err != nil {
		return nil, err
	}

	items, err := os.ReadDir(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, dnderr.NotFoundf("directory '%s' not found", dir).WithMeta("path", dir)
		}
		return nil, dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to list directory").
			WithMeta("path", dir)
	}

	entries := make([]DirectoryEntry, 0, len(items))
	for _, item := range items {
		typ := EntryFile
		if item.IsDir() {
			typ = EntryDir
		}
		entries = append(entries, DirectoryEntry{
			Type: typ,
			Name: item.Name(),
			Path: joinPath(dir, item.Name()),
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

func (s *filesystemSource) Fetch(ctx context.Context, p string) ([]byte, error) {
	full, err := s.resolve(p)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, dnderr.NotFoundf("document '%s' not found", p).WithMeta("path", p)
		}
		return nil, dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to read document").
			WithMeta("path", p)
	}
	return data, nil
}
