package documents

//go:generate mockgen -destination=mock/mock_repository.go -package=mockdocuments -source=interface.go

import (
	"context"
)

// Repository is the persistent cache of fetched documents, keyed by their
// repository path. It survives process restarts (disk, Redis) and is read
// when the upstream source cannot be reached.
type Repository interface {
	// Get returns the cached bytes for a path; a miss is a not-found error
	Get(ctx context.Context, path string) ([]byte, error)

	// Set stores the bytes for a path, replacing any previous entry
	Set(ctx context.Context, path string, data []byte) error

	// Delete removes the entry for a path. Deleting a missing entry is not an error.
	Delete(ctx context.Context, path string) error
}
