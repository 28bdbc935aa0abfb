package documents

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	dnderr "github.com/KirkDiggler/dnd-creation-engine/internal/errors"
)

// DiskRepository mirrors fetched documents under a local directory, using the
// repository path as the relative file path
type DiskRepository struct {
	dir string
}

// NewDisk creates a document cache rooted at dir
func NewDisk(dir string) Repository {
	return &DiskRepository{dir: dir}
}

func (r *DiskRepository) resolve(path string) (string, error) {
	if path == "" {
		return "", dnderr.InvalidArgument("path is required")
	}
	clean := filepath.Clean(filepath.FromSlash(strings.TrimPrefix(path, "/")))
	if clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) || filepath.IsAbs(clean) {
		return "", dnderr.InvalidArgumentf("path '%s' escapes the cache directory", path)
	}
	return filepath.Join(r.dir, clean), nil
}

func (r *DiskRepository) Get(ctx context.Context, path string) ([]byte, error) {
	file, err := r.resolve(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, dnderr.NotFoundf("document '%s' not cached", path).
				WithMeta("path", path)
		}
		return nil, dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to read cached document").
			WithMeta("path", path)
	}
	return data, nil
}

func (r *DiskRepository) Set(ctx context.Context, path string, data []byte) error {
	file, err := r.resolve(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to create cache directory").
			WithMeta("path", path)
	}
	if err := os.WriteFile(file, data, 0o644); err != nil {
		return dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to write cached document").
			WithMeta("path", path)
	}
	return nil
}

func (r *DiskRepository) Delete(ctx context.Context, path string) error {
	file, err := r.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to delete cached document").
			WithMeta("path", path)
	}
	return nil
}
