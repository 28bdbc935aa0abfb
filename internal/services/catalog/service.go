package catalog

//go:generate mockgen -destination=mock/mock_service.go -package=mockcatalog -source=service.go

import (
	"context"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/KirkDiggler/dnd-creation-engine/internal/clients/documents"
	dnderr "github.com/KirkDiggler/dnd-creation-engine/internal/errors"
	"github.com/KirkDiggler/dnd-creation-engine/internal/values"
)

// Kind names a listable catalog
type Kind string

const (
	KindClasses     Kind = "classes"
	KindRaces       Kind = "races"
	KindBackgrounds Kind = "backgrounds"
	KindSpells      Kind = "spells"
)

// Kinds lists every catalog that can be served
var Kinds = []Kind{KindClasses, KindRaces, KindBackgrounds, KindSpells}

// ParseKind validates a catalog name
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", dnderr.InvalidArgumentf("unknown catalog '%s'", s).WithMeta("catalog", s)
}

const (
	defaultConcurrency = 8
	indexFile          = "index.json"
)

var (
	nameFields        = []string{"name", "label", "title"}
	indexNameFields   = []string{"label", "name", "title", "text"}
	indexIDFields     = []string{"id", "slug", "uid", "key", "value", "name"}
	descriptionFields = []string{"description", "desc", "summary", "flavor", "flavor_text", "text"}
	imageFields       = []string{"image", "img", "icon", "art", "avatar", "illustration", "picture", "thumbnail"}
	effectLabelFields = []string{"effect_label", "effectLabel", "effect", "summary", "tagline", "mecanique.effect_label", "mecanique.effectLabel"}

	separators = regexp.MustCompile(`[_\-\s]+`)
)

// Entry is one simplified catalog item
type Entry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	EffectLabel string `json:"effectLabel,omitempty"`
}

// Service lists catalogs for display
type Service interface {
	// List returns the entries of a catalog. Upstream failures are logged and
	// yield an empty list.
	List(ctx context.Context, kind Kind) ([]*Entry, error)
}

type service struct {
	documents   documents.Client
	locale      language.Tag
	concurrency int
	logger      *zap.Logger
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Documents   documents.Client
	Locale      string
	Concurrency int
	Logger      *zap.Logger
}

// NewService creates a catalog service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Documents == nil {
		panic("documents client is required")
	}

	svc := &service{
		documents:   cfg.Documents,
		concurrency: cfg.Concurrency,
		logger:      cfg.Logger,
		locale:      language.French,
	}
	if svc.concurrency <= 0 {
		svc.concurrency = defaultConcurrency
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	if cfg.Locale != "" {
		if tag, err := language.Parse(cfg.Locale); err == nil {
			svc.locale = tag
		}
	}
	return svc
}

func (s *service) List(ctx context.Context, kind Kind) ([]*Entry, error) {
	if _, err := ParseKind(string(kind)); err != nil {
		return nil, err
	}
	log := s.logger.With(zap.String("catalog", string(kind)))

	var indexErr error
	data, err := s.documents.FetchRaw(ctx, path.Join(string(kind), indexFile))
	if err == nil {
		if entries := s.fromIndex(data); len(entries) > 0 {
			return s.enrich(ctx, kind, entries), nil
		}
	} else {
		indexErr = err
	}

	listing, err := s.documents.ListFiles(ctx, string(kind))
	if err != nil {
		log.Error("unable to load catalog",
			zap.NamedError("index_error", indexErr),
			zap.NamedError("list_error", err),
		)
		return []*Entry{}, nil
	}
	if entries := s.fromListing(listing); len(entries) > 0 {
		return s.enrich(ctx, kind, entries), nil
	}

	if indexErr != nil {
		log.Warn("catalog index not found and listing is empty", zap.Error(indexErr))
	}
	return []*Entry{}, nil
}

// fromIndex reads an index.json: an array of ids or objects, optionally
// wrapped as {"entries": [...]} or {"items": [...]}. A repeated id keeps its
// first position and its last definition.
func (s *service) fromIndex(data []byte) []*Entry {
	root := gjson.ParseBytes(data)
	if root.IsObject() {
		if entries := root.Get("entries"); entries.IsArray() {
			root = entries
		} else {
			root = root.Get("items")
		}
	}
	if !root.IsArray() {
		return nil
	}

	var out []*Entry
	pos := make(map[string]int)
	for i, item := range root.Array() {
		e := s.indexEntry(item, i)
		if e == nil {
			continue
		}
		if at, ok := pos[e.ID]; ok {
			out[at] = e
			continue
		}
		pos[e.ID] = len(out)
		out = append(out, e)
	}
	return out
}

func (s *service) indexEntry(item gjson.Result, idx int) *Entry {
	switch item.Type {
	case gjson.String, gjson.Number, gjson.True, gjson.False:
		id := slug(item.String())
		if id == "" {
			return nil
		}
		return &Entry{ID: id, Name: s.humanize(id)}
	case gjson.JSON:
		record, ok := values.AsMap(item.Value())
		if !ok {
			return nil
		}
		id := ""
		for _, f := range indexIDFields {
			if v, ok := values.String(record[f]); ok {
				if id = slug(v); id != "" {
					break
				}
			}
		}
		if id == "" {
			id = "entry_" + strconv.Itoa(idx)
		}
		e := &Entry{ID: id}
		e.Name = pickString(record, indexNameFields)
		if e.Name == "" {
			e.Name = s.humanize(id)
		}
		e.Description = pickString(record, descriptionFields)
		e.Image = pickString(record, imageFields)
		e.EffectLabel = pickString(record, effectLabelFields)
		return e
	}
	return nil
}

func (s *service) fromListing(listing []documents.DirectoryEntry) []*Entry {
	var out []*Entry
	seen := make(map[string]bool)
	for _, item := range listing {
		if !item.IsJSONFile() {
			continue
		}
		name := item.Name
		if name == "" {
			name = path.Base(item.Path)
		}
		if name == indexFile {
			continue
		}
		id := slug(name)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, &Entry{ID: id, Name: s.humanize(id)})
	}
	return out
}

// enrich fills missing fields from each entry's own document, fetching a
// bounded number of documents at a time. Entries whose document cannot be
// loaded are returned as they are.
func (s *service) enrich(ctx context.Context, kind Kind, entries []*Entry) []*Entry {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, e := range entries {
		if !s.needsDetails(e) {
			continue
		}
		g.Go(func() error {
			p := path.Join(string(kind), e.ID+".json")
			doc, err := s.documents.FetchJSON(gctx, p)
			if err != nil {
				s.logger.Debug("unable to load catalog entry details",
					zap.String("path", p),
					zap.Error(err),
				)
				return nil
			}
			if v := pickString(doc, nameFields); v != "" {
				e.Name = v
			}
			if v := pickString(doc, descriptionFields); v != "" {
				e.Description = v
			}
			if v := pickString(doc, imageFields); v != "" {
				e.Image = v
			}
			if v := pickString(doc, effectLabelFields); v != "" {
				e.EffectLabel = v
			}
			return nil
		})
	}
	_ = g.Wait()

	return entries
}

func (s *service) needsDetails(e *Entry) bool {
	return e.Description == "" || e.EffectLabel == "" || e.Image == "" ||
		e.Name == "" || e.Name == s.humanize(e.ID)
}

// humanize turns an id into a display label: "main_de-mage" gives "Main De Mage"
func (s *service) humanize(id string) string {
	normalized := strings.TrimSpace(separators.ReplaceAllString(id, " "))
	if normalized == "" {
		return id
	}
	return cases.Title(s.locale).String(normalized)
}

// slug strips a .json extension and any directory from an id or file name
func slug(v string) string {
	v = strings.TrimSpace(v)
	if strings.HasSuffix(strings.ToLower(v), ".json") {
		v = v[:len(v)-len(".json")]
	}
	if i := strings.LastIndex(v, "/"); i >= 0 {
		v = v[i+1:]
	}
	return strings.TrimSpace(v)
}

func pickString(doc map[string]any, fields []string) string {
	for _, f := range fields {
		v, ok := values.Get(doc, f)
		if !ok {
			continue
		}
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
