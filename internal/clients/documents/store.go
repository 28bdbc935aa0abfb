package documents

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/KirkDiggler/dnd-creation-engine/internal/domain/feature"
	dnderr "github.com/KirkDiggler/dnd-creation-engine/internal/errors"
	cacherepo "github.com/KirkDiggler/dnd-creation-engine/internal/repositories/documents"
	"github.com/KirkDiggler/dnd-creation-engine/internal/values"
)

// DefaultScanFolders are indexed by InitIndex when none are configured
var DefaultScanFolders = []string{"classes", "features", "spells", "races", "backgrounds", "items"}

// Extra folders probed by FindPath after the scan folders
var probeFolders = []string{"data", "content"}

// StoreConfig configures a document store
type StoreConfig struct {
	Source Source

	// Cache persists fetched documents and serves them when Source fails. Optional.
	Cache cacherepo.Repository

	ScanFolders []string
	Logger      *zap.Logger
}

// Store is the long-lived document store. It owns every cache the engine
// relies on: parsed documents by path, the id to path index, and loaded
// collections. All methods are safe for concurrent use.
type Store struct {
	source      Source
	cache       cacherepo.Repository
	scanFolders []string
	logger      *zap.Logger

	mu          sync.RWMutex
	parsed      map[string]map[string]any
	index       map[string]string
	indexReady  bool
	collections map[string][]map[string]any

	fetches     singleflight.Group
	collectLoad singleflight.Group
	indexLoad   singleflight.Group
}

// NewStore creates a document store over a source
func NewStore(cfg *StoreConfig) (*Store, error) {
	if cfg == nil || cfg.Source == nil {
		return nil, dnderr.InvalidArgument("document source is required")
	}

	s := &Store{
		source:      cfg.Source,
		cache:       cfg.Cache,
		scanFolders: cfg.ScanFolders,
		logger:      cfg.Logger,
		parsed:      make(map[string]map[string]any),
		index:       make(map[string]string),
		collections: make(map[string][]map[string]any),
	}
	if len(s.scanFolders) == 0 {
		s.scanFolders = DefaultScanFolders
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s, nil
}

func (s *Store) ListFiles(ctx context.Context, dir string) ([]DirectoryEntry, error) {
	return s.source.List(ctx, dir)
}

// FetchJSON returns a deep copy of the parsed document at path. Concurrent
// fetches of one path share a single upstream request.
func (s *Store) FetchJSON(ctx context.Context, path string) (map[string]any, error) {
	if path == "" {
		return nil, dnderr.InvalidArgument("path is required")
	}

	s.mu.RLock()
	doc, ok := s.parsed[path]
	s.mu.RUnlock()
	if ok {
		fetchesTotal.WithLabelValues(outcomeMemory).Inc()
		return values.CloneMap(doc), nil
	}

	v, err, _ := s.fetches.Do(path, func() (any, error) {
		return s.load(ctx, path)
	})
	if err != nil {
		return nil, err
	}
	return values.CloneMap(v.(map[string]any)), nil
}

func (s *Store) load(ctx context.Context, path string) (map[string]any, error) {
	data, srcErr := s.source.Fetch(ctx, path)
	if srcErr == nil {
		doc, err := parseDocument(path, data)
		if err != nil {
			fetchesTotal.WithLabelValues(outcomeError).Inc()
			return nil, err
		}
		s.remember(path, doc)
		s.writeThrough(ctx, path, data)
		fetchesTotal.WithLabelValues(outcomeSource).Inc()
		return doc, nil
	}

	if doc, ok := s.fromCache(ctx, path); ok {
		s.logger.Warn("source fetch failed, served from cache",
			zap.String("path", path),
			zap.Error(srcErr),
		)
		s.remember(path, doc)
		fetchesTotal.WithLabelValues(outcomeCache).Inc()
		return doc, nil
	}

	if dnderr.IsNotFound(srcErr) {
		fetchesTotal.WithLabelValues(outcomeNotFound).Inc()
	} else {
		fetchesTotal.WithLabelValues(outcomeError).Inc()
	}
	return nil, srcErr
}

// FetchRaw returns the bytes of a file without parsing or caching them in
// memory. The persistent cache is written through and serves as fallback.
func (s *Store) FetchRaw(ctx context.Context, path string) ([]byte, error) {
	if path == "" {
		return nil, dnderr.InvalidArgument("path is required")
	}

	data, srcErr := s.source.Fetch(ctx, path)
	if srcErr == nil {
		s.writeThrough(ctx, path, data)
		return data, nil
	}
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, path); err == nil {
			s.logger.Warn("source fetch failed, served from cache",
				zap.String("path", path),
				zap.Error(srcErr),
			)
			return cached, nil
		}
	}
	return nil, srcErr
}

func parseDocument(path string, data []byte) (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeMalformed, "document is not valid JSON").
			WithMeta("path", path)
	}
	if doc == nil {
		return nil, dnderr.Malformedf("document '%s' is not an object", path).WithMeta("path", path)
	}
	return doc, nil
}

func (s *Store) remember(path string, doc map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parsed[path] = doc
}

func (s *Store) writeThrough(ctx context.Context, path string, data []byte) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, path, data); err != nil {
		s.logger.Warn("failed to persist document",
			zap.String("path", path),
			zap.Error(err),
		)
	}
}

func (s *Store) fromCache(ctx context.Context, path string) (map[string]any, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, err := s.cache.Get(ctx, path)
	if err != nil {
		if !dnderr.IsNotFound(err) {
			s.logger.Warn("document cache read failed", zap.String("path", path), zap.Error(err))
		}
		return nil, false
	}
	doc, err := parseDocument(path, data)
	if err != nil {
		s.logger.Warn("cached document is corrupt", zap.String("path", path), zap.Error(err))
		return nil, false
	}
	return doc, true
}

// InitIndex maps every .json file of the scan folders to its path. Folders
// that cannot be listed are logged and skipped. The index is only marked
// ready once at least one folder was listed, so a failed build is retried
// on the next lookup.
func (s *Store) InitIndex(ctx context.Context) error {
	_, err, _ := s.indexLoad.Do("index", func() (any, error) {
		found := make(map[string]string)
		listed := 0
		for _, folder := range s.scanFolders {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			entries, err := s.source.List(ctx, folder)
			if err != nil {
				s.logger.Debug("scan folder unavailable",
					zap.String("folder", folder),
					zap.Error(err),
				)
				continue
			}
			listed++
			for _, e := range entries {
				if !e.IsJSONFile() {
					continue
				}
				found[idFromName(e.Name)] = entryPath(folder, e)
			}
		}

		s.mu.Lock()
		for id, p := range found {
			s.index[id] = p
		}
		if listed > 0 {
			s.indexReady = true
		}
		size := len(s.index)
		s.mu.Unlock()

		indexSize.Set(float64(size))
		if listed == 0 {
			s.logger.Warn("no scan folder could be listed", zap.Int("folders", len(s.scanFolders)))
			return nil, nil
		}
		s.logger.Info("document index built", zap.Int("entries", size))
		return nil, nil
	})
	return err
}

// FindPath resolves an id through the index, then by probing
// "<folder>/<id>.json" under the scan folders, "data" and "content".
func (s *Store) FindPath(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", dnderr.InvalidArgument("id is required")
	}

	s.mu.RLock()
	ready := s.indexReady
	s.mu.RUnlock()
	if !ready {
		if err := s.InitIndex(ctx); err != nil {
			return "", err
		}
	}

	s.mu.RLock()
	p, ok := s.index[id]
	s.mu.RUnlock()
	if ok {
		return p, nil
	}

	folders := append(append([]string{}, s.scanFolders...), probeFolders...)
	for _, folder := range folders {
		candidate := joinPath(folder, id+jsonExt)
		if _, err := s.FetchJSON(ctx, candidate); err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			continue
		}
		s.mu.Lock()
		s.index[id] = candidate
		s.mu.Unlock()
		return candidate, nil
	}

	return "", dnderr.NotFoundf("no document for id '%s'", id).WithMeta("id", id)
}

// LoadFeature resolves and loads the feature document for an id
func (s *Store) LoadFeature(ctx context.Context, id string) (*feature.Feature, error) {
	p, err := s.FindPath(ctx, id)
	if err != nil {
		return nil, err
	}
	doc, err := s.FetchJSON(ctx, p)
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to load feature %s", id).WithMeta("id", id)
	}
	return feature.FromDocument(id, doc), nil
}

// QueryCollection loads every .json document of a collection once, then
// filters the cached list. Documents without an id take their file name.
// A nil predicate accepts everything.
func (s *Store) QueryCollection(ctx context.Context, collection string, predicate Predicate) ([]map[string]any, error) {
	docs, err := s.collection(ctx, collection)
	if err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(docs))
	for _, doc := range docs {
		if predicate == nil || s.accept(collection, predicate, doc) {
			out = append(out, values.CloneMap(doc))
		}
	}
	return out, nil
}

func (s *Store) accept(collection string, predicate Predicate, doc map[string]any) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("collection predicate panicked",
				zap.String("collection", collection),
				zap.Any("panic", r),
			)
			ok = false
		}
	}()
	return predicate(doc)
}

func (s *Store) collection(ctx context.Context, collection string) ([]map[string]any, error) {
	if collection == "" {
		return nil, dnderr.InvalidArgument("collection is required")
	}

	s.mu.RLock()
	docs, ok := s.collections[collection]
	s.mu.RUnlock()
	if ok {
		return docs, nil
	}

	v, err, _ := s.collectLoad.Do(collection, func() (any, error) {
		entries, err := s.source.List(ctx, collection)
		if err != nil {
			collectionLoadsTotal.WithLabelValues("error").Inc()
			return nil, dnderr.Wrapf(err, "failed to list collection %s", collection).
				WithMeta("collection", collection)
		}

		loaded := make([]map[string]any, 0, len(entries))
		for _, e := range entries {
			if e.Type != EntryFile {
				continue
			}
			p := entryPath(collection, e)
			if p == "" || !hasJSONExt(p) {
				continue
			}
			doc, err := s.FetchJSON(ctx, p)
			if err != nil {
				s.logger.Warn("unable to load collection entry",
					zap.String("collection", collection),
					zap.String("path", p),
					zap.Error(err),
				)
				continue
			}
			if _, ok := doc["id"]; !ok || doc["id"] == nil {
				doc["id"] = idFromName(p)
			}
			loaded = append(loaded, doc)
		}

		s.mu.Lock()
		s.collections[collection] = loaded
		s.mu.Unlock()
		collectionLoadsTotal.WithLabelValues("ok").Inc()
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]map[string]any), nil
}

// Reset drops every in-process cache. The persistent cache is kept.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parsed = make(map[string]map[string]any)
	s.index = make(map[string]string)
	s.indexReady = false
	s.collections = make(map[string][]map[string]any)
}

var _ Client = (*Store)(nil)
