package choices

//go:generate mockgen -destination=mock/mock_service.go -package=mockchoices -source=service.go

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/KirkDiggler/dnd-creation-engine/internal/clients/documents"
	"github.com/KirkDiggler/dnd-creation-engine/internal/domain/effect"
	"github.com/KirkDiggler/dnd-creation-engine/internal/values"
)

// DefaultLocale orders option labels when none is configured
const DefaultLocale = "fr"

// Outcome is the classification of one choice effect against the
// caller's chosen options
type Outcome struct {
	Descriptor *effect.ChoiceDescriptor

	// Resolved is set when the selection already answers the choice
	Resolved bool
	Values   []string

	// Effects are the immediate effects synthesized from a resolved answer
	Effects []*effect.Effect
}

// Service decides whether choices are answered and computes dynamic option sets
type Service interface {
	// Classify matches a choice effect against chosenOptions. Unanswered
	// choices come back with their auto_from options resolved.
	Classify(ctx context.Context, e *effect.Effect, chosen map[string]any) *Outcome

	// ResolveOptions replaces the options of a descriptor carrying auto_from
	// with the matching collection entries. Failures leave it untouched.
	ResolveOptions(ctx context.Context, d *effect.ChoiceDescriptor)
}

type service struct {
	documents documents.Client
	locale    language.Tag
	logger    *zap.Logger

	mu    sync.RWMutex
	cache map[string][]effect.OptionLabel
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Documents documents.Client
	Locale    string
	Logger    *zap.Logger
}

// NewService creates a choice resolver. Resolved auto_from option sets are
// cached for the life of the service.
func NewService(cfg *ServiceConfig) Service {
	if cfg.Documents == nil {
		panic("documents client is required")
	}

	svc := &service{
		documents: cfg.Documents,
		logger:    cfg.Logger,
		cache:     make(map[string][]effect.OptionLabel),
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}

	locale := cfg.Locale
	if locale == "" {
		locale = DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		svc.logger.Warn("invalid label locale, using default",
			zap.String("locale", locale),
			zap.Error(err),
		)
		tag = language.French
	}
	svc.locale = tag

	return svc
}

func (s *service) Classify(ctx context.Context, e *effect.Effect, chosen map[string]any) *Outcome {
	d := effect.ExtractChoiceDescriptor(e)
	if d == nil {
		return nil
	}

	out := &Outcome{Descriptor: d}
	if answer := MatchChosen(d, chosen); len(answer) > 0 {
		out.Resolved = true
		out.Values = answer
		out.Effects = Synthesize(d, e, answer)
		return out
	}

	if d.AutoFrom != nil {
		s.ResolveOptions(ctx, d)
	}
	return out
}

// MatchChosen returns the answer recorded for a choice, or nil. The keys are
// tried in order and the first non-empty value wins: ui_id, featureId,
// raw.ui_id, raw.payload.ui_id, raw.id.
func MatchChosen(d *effect.ChoiceDescriptor, chosen map[string]any) []string {
	if d == nil || len(chosen) == 0 {
		return nil
	}

	for _, key := range answerKeys(d) {
		if key == "" {
			continue
		}
		v, ok := chosen[key]
		if !ok || values.Empty(v) {
			continue
		}
		if answer := answerValues(v); len(answer) > 0 {
			return answer
		}
	}
	return nil
}

func answerKeys(d *effect.ChoiceDescriptor) []string {
	keys := []string{d.UIID, d.FeatureID}
	if d.Raw == nil {
		return keys
	}
	raw := d.Raw.Raw
	for _, p := range []string{"ui_id", "payload.ui_id", "id"} {
		if s, ok := values.FirstString(raw, p); ok {
			keys = append(keys, s)
		}
	}
	return keys
}

// answerValues normalizes a chosen value to option ids. Objects contribute
// their id or value field.
func answerValues(v any) []string {
	items, ok := values.AsSlice(v)
	if !ok {
		items = []any{v}
	}

	var out []string
	seen := make(map[string]struct{})
	for _, item := range items {
		var id string
		if obj, ok := values.AsMap(item); ok {
			id, _ = values.FirstString(obj, "id", "value")
		} else {
			id, _ = values.String(item)
		}
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (s *service) ResolveOptions(ctx context.Context, d *effect.ChoiceDescriptor) {
	if d == nil || d.AutoFrom == nil || d.AutoFrom.Collection == "" {
		return
	}
	af := d.AutoFrom
	log := s.logger.With(
		zap.String("ui_id", d.UIID),
		zap.String("collection", af.Collection),
	)

	key, err := cacheKey(af)
	if err != nil {
		log.Warn("unable to build auto_from cache key", zap.Error(err))
		return
	}

	s.mu.RLock()
	options, ok := s.cache[key]
	s.mu.RUnlock()

	if !ok {
		docs, err := s.documents.QueryCollection(ctx, af.Collection, buildPredicate(af.Filters))
		if err != nil {
			log.Warn("auto_from query failed, keeping static options", zap.Error(err))
			return
		}
		options = s.toOptions(docs, af)

		s.mu.Lock()
		s.cache[key] = options
		s.mu.Unlock()
	}

	d.From = make([]string, len(options))
	d.FromLabels = make([]effect.OptionLabel, len(options))
	for i, o := range options {
		d.From[i] = o.ID
		d.FromLabels[i] = o
	}
}

func (s *service) toOptions(docs []map[string]any, af *effect.AutoFrom) []effect.OptionLabel {
	seen := make(map[string]struct{}, len(docs))
	options := make([]effect.OptionLabel, 0, len(docs))
	for _, doc := range docs {
		o, ok := optionFromDocument(doc, af.IDFields, af.LabelFields)
		if !ok {
			continue
		}
		if _, dup := seen[o.ID]; dup {
			continue
		}
		seen[o.ID] = struct{}{}
		options = append(options, o)
	}

	// Collators keep scratch buffers, so each sort gets its own
	c := collate.New(s.locale, collate.IgnoreCase)
	sort.SliceStable(options, func(i, j int) bool {
		return c.CompareString(options[i].Label, options[j].Label) < 0
	})

	if af.Limit > 0 && len(options) > af.Limit {
		options = options[:af.Limit]
	}
	return options
}

func cacheKey(af *effect.AutoFrom) (string, error) {
	filters, err := json.Marshal(af.Filters)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s|%s|%d|%s|%s",
		af.Collection,
		filters,
		af.Limit,
		strings.Join(af.IDFields, ","),
		strings.Join(af.LabelFields, ","),
	), nil
}
