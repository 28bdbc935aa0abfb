package documents

//go:generate mockgen -destination=mock/mock_client.go -package=mockdocuments . Client,Source,TreeResolver

import (
	"context"

	"github.com/KirkDiggler/dnd-creation-engine/internal/domain/feature"
)

// Entry types returned by a directory listing
const (
	EntryFile = "file"
	EntryDir  = "dir"
)

// DirectoryEntry is one item of a directory listing
type DirectoryEntry struct {
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
	Path string `json:"path,omitempty"`
}

// IsJSONFile reports whether the entry is a .json file
func (e DirectoryEntry) IsJSONFile() bool {
	return e.Type == EntryFile && hasJSONExt(e.Name, e.Path)
}

// Predicate selects documents of a collection
type Predicate func(doc map[string]any) bool

// Source is an upstream that serves raw document bytes by repository path
type Source interface {
	// List returns the entries of a directory; a missing directory is a not-found error
	List(ctx context.Context, dir string) ([]DirectoryEntry, error)

	// Fetch returns the raw bytes of a file; a missing file is a not-found error
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// Client is the document store consumed by the creation engine
type Client interface {
	// ListFiles lists a directory of the content repository
	ListFiles(ctx context.Context, dir string) ([]DirectoryEntry, error)

	// FetchJSON returns a parsed document. Missing documents fail with a
	// not-found error, distinct from transport failures.
	FetchJSON(ctx context.Context, path string) (map[string]any, error)

	// FetchRaw returns the bytes of any file, such as a top-level JSON array
	FetchRaw(ctx context.Context, path string) ([]byte, error)

	// QueryCollection returns the documents of a collection accepted by the predicate
	QueryCollection(ctx context.Context, collection string, predicate Predicate) ([]map[string]any, error)

	// InitIndex builds the id to path index over the scan folders
	InitIndex(ctx context.Context) error

	// FindPath resolves a feature id to its repository path
	FindPath(ctx context.Context, id string) (string, error)

	// LoadFeature loads and extracts the feature document for an id
	LoadFeature(ctx context.Context, id string) (*feature.Feature, error)
}

// TreeResolver is an optional capability of a Client that resolves the whole
// feature graph itself. A nil result means the caller should walk the graph.
type TreeResolver interface {
	ResolveFeatureTree(ctx context.Context, seeds []string) ([]*feature.Feature, error)
}
